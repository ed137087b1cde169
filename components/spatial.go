package components

// Vec3 is a world-space position or direction.
type Vec3 struct {
	X, Y, Z float32
}

// Position is an entity's current world position. Mutated every frame.
type Position struct {
	Vec3
}

// Anchor holds the two precomputed poles an entity moves between.
// Sampled once at group construction; never mutated afterwards.
type Anchor struct {
	Chaos Vec3 // scattered pose
	Home  Vec3 // assembled pose on the tree
}

// Drift holds per-entity idle motion parameters, rolled at construction.
type Drift struct {
	Phase float32 // random phase offset, [0, 2pi)
	Spin  float32 // oscillation rate, radians per second
	Amp   float32 // wobble amplitude at full chaos, world units
}

// Sprite holds per-entity visual attributes.
type Sprite struct {
	R, G, B uint8
	Size    float32
	Glow    float32 // emissive intensity, advanced by the glow pass
}

// Member ties an entity to its group and its slot in the group's draw buffer.
type Member struct {
	Group Group
	Index int32
}

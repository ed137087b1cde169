package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arbor/components"
)

// Raylib draws instances into an open raylib window. Foliage renders as raw
// 3D points so tens of thousands stay cheap; the sparse groups render as small
// spheres so they read at distance.
type Raylib struct{}

func NewRaylib() *Raylib {
	return &Raylib{}
}

// Draw renders one frame between an rl.BeginMode3D / rl.EndMode3D pair.
// The caller owns BeginDrawing/EndDrawing.
func (r *Raylib) Draw(view View, instances []Instance) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: view.Eye.X, Y: view.Eye.Y, Z: view.Eye.Z},
		Target:     rl.Vector3{X: view.Target.X, Y: view.Target.Y, Z: view.Target.Z},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       view.FOVY,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	for i := range instances {
		inst := &instances[i]
		pos := rl.Vector3{X: inst.Pos.X, Y: inst.Pos.Y, Z: inst.Pos.Z}
		color := shade(inst.R, inst.G, inst.B, inst.Glow)

		if inst.Group == components.GroupFoliage {
			rl.DrawPoint3D(pos, color)
			continue
		}
		rl.DrawSphereEx(pos, inst.Size, 6, 6, color)
	}
	rl.EndMode3D()
}

func (r *Raylib) Close() {}

// shade scales a color by glow. Glow above 0.85 also blends toward white so
// sparkling lights visibly flash instead of just saturating.
func shade(cr, cg, cb uint8, glow float32) rl.Color {
	if glow < 0 {
		glow = 0
	} else if glow > 1 {
		glow = 1
	}

	r := float32(cr) * glow
	g := float32(cg) * glow
	b := float32(cb) * glow

	if glow > 0.85 {
		w := (glow - 0.85) / 0.15 * 120
		r += w
		g += w
		b += w
	}

	return rl.Color{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 255}
}

func clamp8(v float32) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

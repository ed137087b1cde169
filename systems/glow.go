package systems

import (
	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

// Glow advances the per-entity emissive intensity. Base brightness follows the
// group's progress scalar (so it lags or leads the geometric motion under its
// own rate), and lights and the topper sparkle with a phase-seeded pulse on
// top once the tree forms.
type Glow struct {
	filter  ecs.Filter3[components.Sprite, components.Drift, components.Member]
	effects bool
	t       float32
}

// NewGlow creates the glow pass. With effects disabled (low tier) the pulse is
// skipped and glow follows progress alone.
func NewGlow(w *ecs.World, effects bool) *Glow {
	return &Glow{
		filter:  *ecs.NewFilter3[components.Sprite, components.Drift, components.Member](w),
		effects: effects,
	}
}

// Update recomputes glow intensities for one frame.
func (s *Glow) Update(st *scene.State, dt float32) {
	s.t += dt

	query := s.filter.Query()
	for query.Next() {
		sprite, d, member := query.Get()

		p := st.Progress[member.Group]
		glow := 0.25 + 0.75*p

		if s.effects && sparkles(member.Group) {
			// Pulse amplitude grows with progress; dark in full chaos.
			pulse := 0.5 + 0.5*math32.Sin(s.t*2.2+d.Phase)
			glow = 0.2 + p*(0.3+0.5*pulse)
		}

		sprite.Glow = glow
	}
}

// sparkles reports whether a group gets the formed-state pulse.
func sparkles(g components.Group) bool {
	return g == components.GroupLights || g == components.GroupTopper
}

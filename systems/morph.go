// Package systems implements the per-frame numeric passes over the entity
// groups: morph damping, idle drift, and the glow pulse.
package systems

import (
	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

// GroupParams holds per-group convergence rates.
type GroupParams struct {
	DampRate     float32 // position convergence, 1/s
	ProgressRate float32 // visual progress scalar convergence, 1/s
}

// Morph advances every entity toward its active anchor with exponential
// damping, and advances each group's progress scalar toward the mode's pole.
//
// The damping factor is 1-exp(-rate*dt), so convergence speed is independent
// of frame rate and the remaining distance shrinks strictly monotonically for
// any dt > 0.
type Morph struct {
	filter ecs.Filter3[components.Position, components.Anchor, components.Member]
	params [components.GroupCount]GroupParams
}

// NewMorph creates the morph pass for the given world.
func NewMorph(w *ecs.World, params [components.GroupCount]GroupParams) *Morph {
	return &Morph{
		filter: *ecs.NewFilter3[components.Position, components.Anchor, components.Member](w),
		params: params,
	}
}

// Update runs one frame of morph damping. Reads the mode once; the gesture
// loop may flip it mid-frame and the next frame picks that up.
func (s *Morph) Update(st *scene.State, dt float32) {
	mode := st.Mode()
	pole := mode.Pole()

	// Precompute per-group damping factors for this dt.
	var k [components.GroupCount]float32
	for g := range s.params {
		k[g] = 1 - math32.Exp(-s.params[g].DampRate*dt)
	}

	// Progress tracks the pole under its own rate, clamped by construction:
	// a damped step from inside [0,1] toward a pole in {0,1} cannot leave it.
	for g := range st.Progress {
		kp := 1 - math32.Exp(-s.params[g].ProgressRate*dt)
		st.Progress[g] += (pole - st.Progress[g]) * kp
	}

	query := s.filter.Query()
	for query.Next() {
		pos, anchor, member := query.Get()

		target := &anchor.Chaos
		if mode == scene.ModeFormed {
			target = &anchor.Home
		}

		f := k[member.Group]
		pos.X += (target.X - pos.X) * f
		pos.Y += (target.Y - pos.Y) * f
		pos.Z += (target.Z - pos.Z) * f
	}
}

// Params returns the configured group params (read-only use).
func (s *Morph) Params() [components.GroupCount]GroupParams {
	return s.params
}

package systems

import (
	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

// noiseScale maps world units to noise-field coordinates.
const noiseScale = 0.045

// driftCutoff skips the pass for entities whose wobble has faded out.
const driftCutoff = 0.002

// Drift applies idle motion so the chaos cloud never sits still: a
// phase-seeded sinusoidal bob per entity plus a slow simplex flow field.
// Amplitude scales with (1 - progress), so the wobble fades as the tree forms
// and the formed shape holds.
type Drift struct {
	filter ecs.Filter3[components.Position, components.Drift, components.Member]
	noise  opensimplex.Noise32
	t      float32
}

// NewDrift creates the drift pass with a session-seeded flow field.
func NewDrift(w *ecs.World, seed int64) *Drift {
	return &Drift{
		filter: *ecs.NewFilter3[components.Position, components.Drift, components.Member](w),
		noise:  opensimplex.NewNormalized32(seed),
	}
}

// Update perturbs entity positions for one frame.
func (s *Drift) Update(st *scene.State, dt float32) {
	s.t += dt

	// Fade per group once, outside the entity loop.
	var fade [components.GroupCount]float32
	for g := range fade {
		fade[g] = 1 - st.Progress[g]
	}

	query := s.filter.Query()
	for query.Next() {
		pos, d, member := query.Get()

		amp := d.Amp * fade[member.Group]
		if amp < driftCutoff {
			continue
		}

		// Vertical bob from the entity's own oscillator.
		pos.Y += math32.Sin(s.t*d.Spin+d.Phase) * amp * dt

		// Horizontal push from the flow field: noise picks a heading.
		angle := s.noise.Eval3(pos.X*noiseScale, pos.Z*noiseScale, s.t*0.08) * 2 * math32.Pi
		pos.X += math32.Cos(angle) * amp * dt
		pos.Z += math32.Sin(angle) * amp * dt
	}
}

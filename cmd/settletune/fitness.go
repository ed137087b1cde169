package main

import (
	vrand "math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
	"github.com/pthm-cable/arbor/layout"
	"github.com/pthm-cable/arbor/scene"
	"github.com/pthm-cable/arbor/systems"
)

const (
	dt = 1.0 / 60.0

	// entitiesPerGroup keeps evaluation cheap; settle time is rate-driven,
	// not count-driven.
	entitiesPerGroup = 300

	// settleTol is the distance-to-home below which a particle counts as
	// settled, in world units.
	settleTol = 0.05

	// maxTicks caps a single evaluation run.
	maxTicks = 60 * 30
)

// FitnessEvaluator scores candidate damp rates against settle-time targets.
type FitnessEvaluator struct {
	targets [components.GroupCount]float64 // seconds
	seeds   []int64
	cfg     *config.Config

	lastSettle [components.GroupCount]float64
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(targets [components.GroupCount]float64, seeds []int64, cfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{targets: targets, seeds: seeds, cfg: cfg}
}

// Evaluate runs the morph with the candidate rates across all seeds and
// returns the summed squared settle-time error. Lower is better.
func (e *FitnessEvaluator) Evaluate(rates []float64) float64 {
	var total float64
	for _, seed := range e.seeds {
		settle := e.runOnce(rates, seed)
		for _, grp := range components.Groups() {
			err := settle[grp] - e.targets[grp]
			total += err * err
		}
		e.lastSettle = settle
	}
	return total / float64(len(e.seeds))
}

// LastSettle returns the per-group settle times of the most recent run.
func (e *FitnessEvaluator) LastSettle() [components.GroupCount]float64 {
	return e.lastSettle
}

// runOnce simulates the chaos-to-formed morph once and measures when each
// group's worst particle settles.
func (e *FitnessEvaluator) runOnce(rates []float64, seed int64) [components.GroupCount]float64 {
	world := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Anchor, components.Member](world)
	filter := ecs.NewFilter3[components.Position, components.Anchor, components.Member](world)

	src := vrand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)
	d := &e.cfg.Derived

	for _, grp := range components.Groups() {
		spec := layout.GroupSpec{
			Height:     d.TreeHeight32,
			Radius:     d.TreeRadius32,
			ChaosHalfX: d.ChaosHalfX,
			ChaosHalfY: d.ChaosHalfY,
		}
		if grp == components.GroupTopper {
			spec.Apex = true
			spec.ApexOffset = float32(e.cfg.Tree.TopperOffset)
			spec.ApexSpread = 0.8
		}

		points, err := layout.Generate(spec, entitiesPerGroup, src)
		if err != nil {
			continue
		}
		for i, pt := range points {
			pos := components.Position{Vec3: pt.Chaos}
			anchor := components.Anchor{Chaos: pt.Chaos, Home: pt.Home}
			member := components.Member{Group: grp, Index: int32(i)}
			mapper.NewEntity(&pos, &anchor, &member)
		}
	}

	var params [components.GroupCount]systems.GroupParams
	for _, grp := range components.Groups() {
		params[grp] = systems.GroupParams{
			DampRate:     float32(rates[grp]),
			ProgressRate: float32(e.cfg.Groups.ByGroup(grp).ProgressRate),
		}
	}
	morph := systems.NewMorph(world, params)

	st := scene.New(float32(e.cfg.Rotation.MaxRate))
	st.Switch(scene.ModeFormed)

	var settle [components.GroupCount]float64
	var done [components.GroupCount]bool

	for tick := 1; tick <= maxTicks; tick++ {
		morph.Update(st, dt)

		var worst [components.GroupCount]float32
		query := filter.Query()
		for query.Next() {
			pos, anchor, member := query.Get()
			dx := anchor.Home.X - pos.X
			dy := anchor.Home.Y - pos.Y
			dz := anchor.Home.Z - pos.Z
			dist := math32.Sqrt(dx*dx + dy*dy + dz*dz)
			if dist > worst[member.Group] {
				worst[member.Group] = dist
			}
		}

		allDone := true
		for _, grp := range components.Groups() {
			if done[grp] {
				continue
			}
			if worst[grp] < settleTol {
				done[grp] = true
				settle[grp] = float64(tick) * dt
			} else {
				allDone = false
			}
		}
		if allDone {
			return settle
		}
	}

	// Unsettled groups score the cap; the squared error punishes them hard.
	for _, grp := range components.Groups() {
		if !done[grp] {
			settle[grp] = float64(maxTicks) * dt
		}
	}
	return settle
}

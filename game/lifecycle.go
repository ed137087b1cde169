package game

import (
	"fmt"
	"log/slog"
	"math"
	vrand "math/rand/v2"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
	"github.com/pthm-cable/arbor/layout"
)

// Topper shards cluster within this radius of the apex point.
const topperSpread = 0.8

// buildGroups samples anchors for every group at the profile's counts and
// spawns the entities. Runs once at construction; mode switches never rebuild.
func (g *Game) buildGroups(cfg *config.Config, src vrand.Source) error {
	d := &cfg.Derived

	for _, grp := range components.Groups() {
		count := g.prof.Counts[grp]

		spec := layout.GroupSpec{
			Height:     d.TreeHeight32,
			Radius:     d.TreeRadius32,
			ChaosHalfX: d.ChaosHalfX,
			ChaosHalfY: d.ChaosHalfY,
		}
		if grp == components.GroupTopper {
			spec.Apex = true
			spec.ApexOffset = float32(cfg.Tree.TopperOffset)
			spec.ApexSpread = topperSpread
		}

		points, err := layout.Generate(spec, count, src)
		if err != nil {
			return fmt.Errorf("building group %s: %w", grp, err)
		}

		gc := cfg.Groups.ByGroup(grp)
		for i, pt := range points {
			g.spawnEntity(grp, int32(i), pt, gc)
		}

		slog.Debug("group built", "group", grp.String(), "count", count)
	}
	return nil
}

// spawnEntity creates one particle with rolled visual attributes. Entities
// start at their chaos anchor; the morph pass moves them from there.
func (g *Game) spawnEntity(grp components.Group, index int32, pt layout.Point, gc *config.GroupConfig) {
	pos := components.Position{Vec3: pt.Chaos}
	anchor := components.Anchor{Chaos: pt.Chaos, Home: pt.Home}

	drift := components.Drift{
		Phase: g.rng.Float32() * 2 * math.Pi,
		Spin:  g.rng.Float32() * float32(gc.SpinMax),
		Amp:   float32(gc.DriftAmp) * (0.5 + 0.5*g.rng.Float32()),
	}

	sprite := components.Sprite{
		R:    g.jitterChannel(gc.Color[0], gc.ColorJitter),
		G:    g.jitterChannel(gc.Color[1], gc.ColorJitter),
		B:    g.jitterChannel(gc.Color[2], gc.ColorJitter),
		Size: float32(gc.SizeMin) + g.rng.Float32()*float32(gc.SizeMax-gc.SizeMin),
		Glow: 0.25, // chaos-state base; the glow pass takes over from frame one
	}

	member := components.Member{Group: grp, Index: index}

	g.entityMapper.NewEntity(&pos, &anchor, &drift, &sprite, &member)
}

// jitterChannel perturbs one color channel by up to ±jitter, clamped.
func (g *Game) jitterChannel(base uint8, jitter int) uint8 {
	if jitter <= 0 {
		return base
	}
	v := int(base) + g.rng.Intn(2*jitter+1) - jitter
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v)
}

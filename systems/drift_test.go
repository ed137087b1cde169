package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

// buildDriftWorld spawns entities with drift parameters.
func buildDriftWorld(n int, amp float32) (*ecs.World, *ecs.Filter2[components.Position, components.Member]) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Drift, components.Member](w)

	for i := 0; i < n; i++ {
		fi := float32(i)
		pos := components.Position{Vec3: components.Vec3{X: fi, Y: fi * 0.5, Z: -fi}}
		d := components.Drift{Phase: fi * 0.7, Spin: 1.0 + fi*0.1, Amp: amp}
		member := components.Member{Group: components.GroupFoliage, Index: int32(i)}
		mapper.NewEntity(&pos, &d, &member)
	}

	filter := ecs.NewFilter2[components.Position, components.Member](w)
	return w, filter
}

func snapshot(filter *ecs.Filter2[components.Position, components.Member]) map[int32]components.Vec3 {
	out := make(map[int32]components.Vec3)
	query := filter.Query()
	for query.Next() {
		pos, member := query.Get()
		out[member.Index] = pos.Vec3
	}
	return out
}

func TestDriftMovesChaosEntities(t *testing.T) {
	w, filter := buildDriftWorld(8, 0.9)
	drift := NewDrift(w, 42)
	st := scene.New(2.5) // chaos, progress all zero

	before := snapshot(filter)
	for i := 0; i < 60; i++ {
		drift.Update(st, testDT)
	}
	after := snapshot(filter)

	moved := 0
	for idx, b := range before {
		if after[idx] != b {
			moved++
		}
	}
	if moved == 0 {
		t.Error("no entity moved; chaos state would be static")
	}
}

func TestDriftFadesWhenFormed(t *testing.T) {
	w, filter := buildDriftWorld(8, 0.9)
	drift := NewDrift(w, 42)
	st := scene.New(2.5)
	for g := range st.Progress {
		st.Progress[g] = 1 // fully formed
	}

	before := snapshot(filter)
	for i := 0; i < 60; i++ {
		drift.Update(st, testDT)
	}
	after := snapshot(filter)

	for idx, b := range before {
		if after[idx] != b {
			t.Fatalf("entity %d moved while fully formed", idx)
		}
	}
}

func TestGlowFollowsProgress(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Sprite, components.Drift, components.Member](w)

	sprite := components.Sprite{R: 255, G: 220, B: 120, Size: 0.1}
	d := components.Drift{Phase: 0.3, Spin: 1}
	member := components.Member{Group: components.GroupLights}
	mapper.NewEntity(&sprite, &d, &member)

	foliage := components.Sprite{R: 40, G: 120, B: 60, Size: 0.05}
	df := components.Drift{Phase: 1.1, Spin: 1}
	mf := components.Member{Group: components.GroupFoliage}
	mapper.NewEntity(&foliage, &df, &mf)

	glow := NewGlow(w, true)
	st := scene.New(2.5)

	filter := ecs.NewFilter2[components.Sprite, components.Member](w)

	// Full chaos: everything dim.
	glow.Update(st, testDT)
	query := filter.Query()
	for query.Next() {
		s, _ := query.Get()
		if s.Glow < 0 || s.Glow > 0.3 {
			t.Errorf("chaos glow %f outside dim range", s.Glow)
		}
	}

	// Fully formed: brighter everywhere, bounded by 1.
	for g := range st.Progress {
		st.Progress[g] = 1
	}
	for i := 0; i < 10; i++ {
		glow.Update(st, testDT)
	}
	query = filter.Query()
	for query.Next() {
		s, _ := query.Get()
		if s.Glow < 0.2 || s.Glow > 1.0 {
			t.Errorf("formed glow %f outside [0.2, 1.0]", s.Glow)
		}
	}
}

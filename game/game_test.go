package game

import (
	"testing"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
	"github.com/pthm-cable/arbor/profile"
	"github.com/pthm-cable/arbor/renderer"
	"github.com/pthm-cable/arbor/scene"
)

func newHeadlessGame(t *testing.T, opts Options) *Game {
	t.Helper()
	t.Setenv(profile.TierEnv, "low")
	config.MustInit("")

	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessLifecycle(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 7})

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 10 {
		t.Errorf("tick = %d, want 10", g.Tick())
	}

	hl := g.Renderer().(*renderer.Headless)
	if hl.Frames() != 10 {
		t.Errorf("frames = %d, want 10", hl.Frames())
	}

	cfg := config.Cfg()
	if got := hl.LastGroupCount(components.GroupFoliage); got != cfg.Groups.Foliage.CountLow {
		t.Errorf("foliage instances = %d, want low-tier count %d", got, cfg.Groups.Foliage.CountLow)
	}
	if got := hl.LastGroupCount(components.GroupTopper); got != cfg.Groups.Topper.CountLow {
		t.Errorf("topper instances = %d, want low-tier count %d", got, cfg.Groups.Topper.CountLow)
	}
}

func TestHeadlessConvergesToTree(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 7})

	g.Scene().Switch(scene.ModeFormed)
	for i := 0; i < 900; i++ {
		g.UpdateHeadless()
	}

	snap := g.sampleScene()
	for _, grp := range components.Groups() {
		for _, d := range snap.Dists[grp] {
			if d > 0.1 {
				t.Fatalf("group %s particle still %f from home after 15s", grp, d)
			}
		}
	}
	for _, grp := range components.Groups() {
		if p := snap.Progress[grp]; p < 0.99 {
			t.Errorf("group %s progress = %f, want near 1", grp, p)
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	run := func() []float64 {
		g := newHeadlessGame(t, Options{Seed: 99})
		for i := 0; i < 60; i++ {
			g.UpdateHeadless()
		}
		snap := g.sampleScene()
		return snap.Dists[components.GroupFoliage]
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("runs spawned different counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at particle %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHeadlessNeverBuildsGesturePipeline(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 1})

	if g.pipeline != nil {
		t.Error("headless run must not construct the gesture pipeline")
	}
	if g.gestureStatus.Status() != "disabled" {
		t.Errorf("gesture status = %q, want disabled", g.gestureStatus.Status())
	}
}

func TestStatsWindowFlushes(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 3, StatsWindowSec: 0.5})

	// Half a second at 60fps is 30 ticks.
	if g.collector.WindowDurationTicks() != 30 {
		t.Errorf("window ticks = %d, want 30", g.collector.WindowDurationTicks())
	}

	g.collector.RecordModeSwitch()
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	// The flush at tick 30 consumed the counter.
	stats := g.collector.Flush(g.Tick(), g.sampleScene())
	if stats.ModeSwitches != 0 {
		t.Error("mode switch counter should have been consumed by the window flush")
	}
}

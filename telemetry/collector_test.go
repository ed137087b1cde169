package telemetry

import (
	"sync"
	"testing"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

func TestCollectorWindowTiming(t *testing.T) {
	c := NewCollector(5.0, 1.0/60.0)

	if c.WindowDurationTicks() != 300 {
		t.Errorf("window ticks = %d, want 300", c.WindowDurationTicks())
	}
	if c.ShouldFlush(299) {
		t.Error("should not flush before the window elapses")
	}
	if !c.ShouldFlush(300) {
		t.Error("should flush once the window elapses")
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	c.RecordModeSwitch()
	c.RecordModeSwitch()
	c.RecordRotate()
	c.RecordIdleFrame()
	c.RecordLowConfidence()
	c.RecordRecognizerError()

	snap := Snapshot{Mode: scene.ModeFormed, Entities: 100}
	snap.Progress[components.GroupFoliage] = 0.75
	snap.Dists[components.GroupFoliage] = []float64{1, 2, 3}

	stats := c.Flush(60, snap)

	if stats.ModeSwitches != 2 || stats.RotateEvents != 1 {
		t.Errorf("counters = %d/%d, want 2/1", stats.ModeSwitches, stats.RotateEvents)
	}
	if stats.IdleFrames != 1 || stats.LowConfidence != 1 || stats.RecognizerErrors != 1 {
		t.Error("gesture counters not carried into stats")
	}
	if stats.Mode != "formed" {
		t.Errorf("mode = %q, want formed", stats.Mode)
	}
	if stats.FoliageProgress != 0.75 {
		t.Errorf("foliage progress = %v, want 0.75", stats.FoliageProgress)
	}
	if stats.FoliageDistMean != 2 {
		t.Errorf("foliage dist mean = %v, want 2", stats.FoliageDistMean)
	}

	// Next window starts clean.
	next := c.Flush(120, Snapshot{Mode: scene.ModeChaos})
	if next.ModeSwitches != 0 || next.RotateEvents != 0 {
		t.Error("counters not reset between windows")
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}

func TestCollectorConcurrentRecords(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.RecordRotate()
			}
		}()
	}
	wg.Wait()

	stats := c.Flush(60, Snapshot{})
	if stats.RotateEvents != 8000 {
		t.Errorf("rotate events = %d, want 8000", stats.RotateEvents)
	}
}

package telemetry

import (
	"sync/atomic"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

// Collector accumulates events within time windows and produces WindowStats.
// The gesture counters are atomic because the pipeline records them from its
// own goroutine; everything else is owned by the game loop.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	modeSwitches  atomic.Int64
	rotateEvents  atomic.Int64
	idleFrames    atomic.Int64
	lowConfidence atomic.Int64
	recErrors     atomic.Int64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// The following implement the gesture event sink.

func (c *Collector) RecordModeSwitch()      { c.modeSwitches.Add(1) }
func (c *Collector) RecordRotate()          { c.rotateEvents.Add(1) }
func (c *Collector) RecordIdleFrame()       { c.idleFrames.Add(1) }
func (c *Collector) RecordLowConfidence()   { c.lowConfidence.Add(1) }
func (c *Collector) RecordRecognizerError() { c.recErrors.Add(1) }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// Snapshot is the scene-side input to Flush, sampled at window end by the
// game loop.
type Snapshot struct {
	Mode     scene.Mode
	Entities int
	Progress [components.GroupCount]float32
	// Distance from each particle to its current target, per group. Sparse
	// groups may be nil.
	Dists [components.GroupCount][]float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	foliage := ComputeDistStats(snap.Dists[components.GroupFoliage])
	lights := ComputeDistStats(snap.Dists[components.GroupLights])
	topper := ComputeDistStats(snap.Dists[components.GroupTopper])

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Mode:     snap.Mode.String(),
		Entities: snap.Entities,

		ModeSwitches:     int(c.modeSwitches.Swap(0)),
		RotateEvents:     int(c.rotateEvents.Swap(0)),
		IdleFrames:       int(c.idleFrames.Swap(0)),
		LowConfidence:    int(c.lowConfidence.Swap(0)),
		RecognizerErrors: int(c.recErrors.Swap(0)),

		FoliageProgress:     float64(snap.Progress[components.GroupFoliage]),
		LightsProgress:      float64(snap.Progress[components.GroupLights]),
		OrnamentsProgress:   float64(snap.Progress[components.GroupOrnaments]),
		DecorationsProgress: float64(snap.Progress[components.GroupDecorations]),
		TopperProgress:      float64(snap.Progress[components.GroupTopper]),

		FoliageDistMean: foliage.Mean,
		FoliageDistP95:  foliage.P95,
		LightsDistMean:  lights.Mean,
		LightsDistP95:   lights.P95,
		TopperDistMean:  topper.Mean,
		TopperDistP95:   topper.P95,
	}

	c.windowStartTick = currentTick
	return stats
}

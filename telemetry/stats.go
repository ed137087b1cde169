// Package telemetry aggregates per-window scene and gesture statistics and
// writes them to structured logs and CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DistStats summarizes how far a group's particles sit from their targets.
type DistStats struct {
	Mean float64
	P50  float64
	P95  float64
}

// ComputeDistStats calculates mean and percentiles of target distances.
func ComputeDistStats(values []float64) DistStats {
	if len(values) == 0 {
		return DistStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return DistStats{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Mode     string `csv:"mode"`
	Entities int    `csv:"entities"`

	// Gesture pipeline events during the window
	ModeSwitches     int `csv:"mode_switches"`
	RotateEvents     int `csv:"rotate_events"`
	IdleFrames       int `csv:"idle_frames"`
	LowConfidence    int `csv:"low_confidence"`
	RecognizerErrors int `csv:"recognizer_errors"`

	// Per-group morph progress at window end
	FoliageProgress     float64 `csv:"foliage_progress"`
	LightsProgress      float64 `csv:"lights_progress"`
	OrnamentsProgress   float64 `csv:"ornaments_progress"`
	DecorationsProgress float64 `csv:"decorations_progress"`
	TopperProgress      float64 `csv:"topper_progress"`

	// Distance-to-target distribution, sampled at window end
	FoliageDistMean float64 `csv:"foliage_dist_mean"`
	FoliageDistP95  float64 `csv:"foliage_dist_p95"`
	LightsDistMean  float64 `csv:"lights_dist_mean"`
	LightsDistP95   float64 `csv:"lights_dist_p95"`
	TopperDistMean  float64 `csv:"topper_dist_mean"`
	TopperDistP95   float64 `csv:"topper_dist_p95"`
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"mode", s.Mode,
		"entities", s.Entities,
		"mode_switches", s.ModeSwitches,
		"rotate_events", s.RotateEvents,
		"idle_frames", s.IdleFrames,
		"low_confidence", s.LowConfidence,
		"recognizer_errors", s.RecognizerErrors,
		"foliage_progress", s.FoliageProgress,
		"lights_progress", s.LightsProgress,
		"topper_progress", s.TopperProgress,
		"foliage_dist_mean", s.FoliageDistMean,
		"foliage_dist_p95", s.FoliageDistP95,
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("mode", s.Mode),
		slog.Int("entities", s.Entities),
		slog.Int("mode_switches", s.ModeSwitches),
		slog.Int("rotate_events", s.RotateEvents),
		slog.Int("idle_frames", s.IdleFrames),
		slog.Int("low_confidence", s.LowConfidence),
		slog.Int("recognizer_errors", s.RecognizerErrors),
		slog.Float64("foliage_progress", s.FoliageProgress),
		slog.Float64("lights_progress", s.LightsProgress),
		slog.Float64("ornaments_progress", s.OrnamentsProgress),
		slog.Float64("decorations_progress", s.DecorationsProgress),
		slog.Float64("topper_progress", s.TopperProgress),
		slog.Float64("foliage_dist_mean", s.FoliageDistMean),
		slog.Float64("foliage_dist_p95", s.FoliageDistP95),
		slog.Float64("lights_dist_mean", s.LightsDistMean),
		slog.Float64("lights_dist_p95", s.LightsDistP95),
		slog.Float64("topper_dist_mean", s.TopperDistMean),
		slog.Float64("topper_dist_p95", s.TopperDistP95),
	)
}

package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := ComputeDistStats(values)

	if math.Abs(got.Mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", got.Mean)
	}
	if got.P50 != 5 {
		t.Errorf("p50 = %v, want 5", got.P50)
	}
	if got.P95 != 10 {
		t.Errorf("p95 = %v, want 10", got.P95)
	}
}

func TestComputeDistStatsUnsortedInput(t *testing.T) {
	shuffled := []float64{7, 1, 10, 4, 2, 9, 5, 3, 8, 6}
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	a := ComputeDistStats(shuffled)
	b := ComputeDistStats(sorted)
	if a != b {
		t.Errorf("order dependence: %+v vs %+v", a, b)
	}
	// input must not be mutated
	if shuffled[0] != 7 {
		t.Error("input slice was sorted in place")
	}
}

func TestComputeDistStatsEmpty(t *testing.T) {
	got := ComputeDistStats(nil)
	if got != (DistStats{}) {
		t.Errorf("empty input should return zeros, got %+v", got)
	}
}

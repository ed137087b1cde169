package layout

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testSpec() GroupSpec {
	return GroupSpec{
		Height:     22,
		Radius:     9,
		ChaosHalfX: 27,
		ChaosHalfY: 22,
	}
}

func TestGenerateConeContainment(t *testing.T) {
	const (
		height = float32(22)
		radius = float32(9)
		count  = 1000
		tol    = 1e-4
	)

	points, err := Generate(testSpec(), count, rand.NewPCG(7, 11))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(points) != count {
		t.Fatalf("expected %d points, got %d", count, len(points))
	}

	halfH := height / 2
	for i, p := range points {
		if p.Home.Y < -halfH-tol || p.Home.Y > halfH+tol {
			t.Fatalf("point %d: y=%f outside [-11, 11]", i, p.Home.Y)
		}
		horiz := math.Hypot(float64(p.Home.X), float64(p.Home.Z))
		normalizedY := (p.Home.Y + halfH) / height
		maxR := float64(radius * (1 - normalizedY))
		if horiz > maxR+tol {
			t.Fatalf("point %d: horizontal radius %f exceeds taper limit %f at y=%f",
				i, horiz, maxR, p.Home.Y)
		}
	}
}

func TestGenerateChaosExceedsTree(t *testing.T) {
	spec := testSpec()
	points, err := Generate(spec, 500, rand.NewPCG(1, 2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Every chaos sample stays inside the scatter box, and at least some land
	// outside the tree's bounding cylinder (the scatter is 3x wider).
	outside := 0
	for i, p := range points {
		if absf(p.Chaos.X) > spec.ChaosHalfX || absf(p.Chaos.Z) > spec.ChaosHalfX || absf(p.Chaos.Y) > spec.ChaosHalfY {
			t.Fatalf("point %d: chaos %v outside scatter box", i, p.Chaos)
		}
		if math.Hypot(float64(p.Chaos.X), float64(p.Chaos.Z)) > float64(spec.Radius) {
			outside++
		}
	}
	if outside == 0 {
		t.Error("no chaos samples landed outside the tree radius; dispersal would not read as expansion")
	}
}

func TestGenerateZeroCount(t *testing.T) {
	points, err := Generate(testSpec(), 0, rand.NewPCG(1, 2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected empty slice, got %d points", len(points))
	}
}

func TestGenerateRejectsInvalid(t *testing.T) {
	if _, err := Generate(testSpec(), -1, rand.NewPCG(1, 2)); err == nil {
		t.Error("negative count should fail")
	}

	bad := testSpec()
	bad.Height = 0
	if _, err := Generate(bad, 10, rand.NewPCG(1, 2)); err == nil {
		t.Error("zero height should fail")
	}

	tight := testSpec()
	tight.ChaosHalfX = 1
	if _, err := Generate(tight, 10, rand.NewPCG(1, 2)); err == nil {
		t.Error("scatter box smaller than tree should fail")
	}
}

func TestGenerateApexCluster(t *testing.T) {
	spec := testSpec()
	spec.Apex = true
	spec.ApexOffset = 1.2
	spec.ApexSpread = 0.5

	points, err := Generate(spec, 24, rand.NewPCG(3, 4))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	apexY := spec.Height/2 + spec.ApexOffset
	for i, p := range points {
		if absf(p.Home.Y-apexY) > spec.ApexSpread+1e-4 {
			t.Errorf("point %d: y=%f too far from apex %f", i, p.Home.Y, apexY)
		}
		if math.Hypot(float64(p.Home.X), float64(p.Home.Z)) > float64(spec.ApexSpread)+1e-4 {
			t.Errorf("point %d: too far from axis", i)
		}
	}
}

func TestGenerateDeterministicPerSource(t *testing.T) {
	a, err := Generate(testSpec(), 50, rand.NewPCG(9, 9))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(testSpec(), 50, rand.NewPCG(9, 9))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs across identical sources", i)
		}
	}

	c, _ := Generate(testSpec(), 50, rand.NewPCG(10, 10))
	if a[0] == c[0] {
		t.Error("different sources should produce different layouts")
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

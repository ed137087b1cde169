// Package layout precomputes the two position sets each entity morphs between:
// a volume scatter for the chaos pose and a conifer-shell sample for the
// assembled pose. Sampling happens once per group construction; mode switches
// never re-trigger it.
package layout

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/arbor/components"
)

// GroupSpec describes the sample volumes for one entity group.
type GroupSpec struct {
	Height float32 // full cone height
	Radius float32 // cone base radius

	// Scatter box half-extents. Must visually exceed the tree so the
	// disperse transition reads as expansion.
	ChaosHalfX float32
	ChaosHalfY float32

	// Apex pins home positions in a small cluster above the cone tip
	// instead of on the shell (topper group).
	Apex       bool
	ApexOffset float32
	ApexSpread float32
}

// Point is one entity's precomputed anchor pair.
type Point struct {
	Chaos components.Vec3
	Home  components.Vec3
}

// Generate samples count anchor pairs for the group. The source is consumed
// sequentially, so two calls with identical sources produce identical layouts.
// Fails fast on invalid specs; count 0 yields an empty slice.
func Generate(spec GroupSpec, count int, src rand.Source) ([]Point, error) {
	if count < 0 {
		return nil, fmt.Errorf("layout: negative entity count %d", count)
	}
	if spec.Height <= 0 || spec.Radius <= 0 {
		return nil, fmt.Errorf("layout: non-positive tree extent (height=%.2f radius=%.2f)",
			spec.Height, spec.Radius)
	}
	if spec.ChaosHalfX < spec.Radius || spec.ChaosHalfY < spec.Height/2 {
		return nil, fmt.Errorf("layout: scatter box (%.2f, %.2f) must exceed tree extent (%.2f, %.2f)",
			spec.ChaosHalfX, spec.ChaosHalfY, spec.Radius, spec.Height/2)
	}

	points := make([]Point, count)
	if count == 0 {
		return points, nil
	}

	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}
	angle := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}

	halfH := float64(spec.Height) / 2
	for i := range points {
		points[i].Chaos = sampleChaos(spec, &unit)
		if spec.Apex {
			points[i].Home = sampleApex(spec, &unit, &angle)
		} else {
			points[i].Home = sampleCone(halfH, float64(spec.Radius), &unit, &angle)
		}
	}
	return points, nil
}

// sampleChaos draws a uniform position inside the scatter box.
func sampleChaos(spec GroupSpec, unit *distuv.Uniform) components.Vec3 {
	return components.Vec3{
		X: float32((unit.Rand()*2 - 1) * float64(spec.ChaosHalfX)),
		Y: float32((unit.Rand()*2 - 1) * float64(spec.ChaosHalfY)),
		Z: float32((unit.Rand()*2 - 1) * float64(spec.ChaosHalfX)),
	}
}

// sampleCone draws a uniform position inside the conifer silhouette:
// height uniform over the cone, radius tapering linearly to zero at the apex,
// angle uniform, radial offset uniform within the shrunk radius.
func sampleCone(halfH, radius float64, unit, angle *distuv.Uniform) components.Vec3 {
	y := unit.Rand()*2*halfH - halfH
	normalizedY := (y + halfH) / (2 * halfH)
	rAtY := radius * (1 - normalizedY)
	theta := angle.Rand()
	r := unit.Rand() * rAtY

	return components.Vec3{
		X: float32(r * math.Cos(theta)),
		Y: float32(y),
		Z: float32(r * math.Sin(theta)),
	}
}

// sampleApex draws a position in a small cluster above the cone tip.
func sampleApex(spec GroupSpec, unit, angle *distuv.Uniform) components.Vec3 {
	spread := float64(spec.ApexSpread)
	theta := angle.Rand()
	r := unit.Rand() * spread
	return components.Vec3{
		X: float32(r * math.Cos(theta)),
		Y: float32(spec.Height)/2 + spec.ApexOffset + float32((unit.Rand()*2-1)*spread),
		Z: float32(r * math.Sin(theta)),
	}
}

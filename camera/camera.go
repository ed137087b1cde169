// Package camera provides the orbit camera that circles the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/scene"
)

// Framing is the orbit distance and eye height used for one scene mode.
type Framing struct {
	Radius float32
	Height float32
}

// Config holds the orbit parameters.
type Config struct {
	Chaos       Framing
	Formed      Framing
	AmbientRate float32 // yaw rate when no control signal is present, rad/s
	TweenSec    float32 // framing transition duration on mode change
}

// Orbit circles the world origin at a mode-dependent radius and height.
// Yaw advances by the scene's rotation rate, falling back to a slow ambient
// spin when no one is steering. Mode changes retarget radius and height
// through a tween instead of snapping.
type Orbit struct {
	cfg Config

	yaw    float32
	radius float32
	height float32

	lastMode scene.Mode
	tweenR   *gween.Tween
	tweenH   *gween.Tween
}

// Rates below this are treated as "nobody is steering".
const controlEpsilon = 1e-4

func New(cfg Config) *Orbit {
	return &Orbit{
		cfg:      cfg,
		radius:   cfg.Chaos.Radius,
		height:   cfg.Chaos.Height,
		lastMode: scene.ModeChaos,
	}
}

// Update advances yaw and framing by dt seconds.
func (o *Orbit) Update(st *scene.State, dt float32) {
	rate := st.Rotation()
	if math32.Abs(rate) < controlEpsilon {
		rate = o.cfg.AmbientRate
	}
	o.yaw += rate * dt
	const twoPi = 2 * math32.Pi
	for o.yaw >= twoPi {
		o.yaw -= twoPi
	}
	for o.yaw < 0 {
		o.yaw += twoPi
	}

	if mode := st.Mode(); mode != o.lastMode {
		o.lastMode = mode
		target := o.framingFor(mode)
		o.tweenR = gween.New(o.radius, target.Radius, o.cfg.TweenSec, ease.InOutQuad)
		o.tweenH = gween.New(o.height, target.Height, o.cfg.TweenSec, ease.InOutQuad)
	}

	if o.tweenR != nil {
		val, done := o.tweenR.Update(dt)
		o.radius = val
		if done {
			o.tweenR = nil
		}
	}
	if o.tweenH != nil {
		val, done := o.tweenH.Update(dt)
		o.height = val
		if done {
			o.tweenH = nil
		}
	}
}

// Position returns the eye position in world coordinates.
func (o *Orbit) Position() components.Vec3 {
	return components.Vec3{
		X: o.radius * math32.Sin(o.yaw),
		Y: o.height,
		Z: o.radius * math32.Cos(o.yaw),
	}
}

// Target returns the look-at point. The scene is built around the origin.
func (o *Orbit) Target() components.Vec3 {
	return components.Vec3{}
}

// Yaw returns the current orbit angle in radians, normalized to [0, 2π).
func (o *Orbit) Yaw() float32 {
	return o.yaw
}

// Radius returns the current orbit distance.
func (o *Orbit) Radius() float32 {
	return o.radius
}

func (o *Orbit) framingFor(mode scene.Mode) Framing {
	if mode == scene.ModeFormed {
		return o.cfg.Formed
	}
	return o.cfg.Chaos
}

package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/arbor/scene"
)

func testConfig() Config {
	return Config{
		Chaos:       Framing{Radius: 58, Height: 8},
		Formed:      Framing{Radius: 36, Height: 4},
		AmbientRate: 0.15,
		TweenSec:    2.5,
	}
}

const dt = float32(1.0 / 60.0)

func TestAmbientSpinWhenUnsteered(t *testing.T) {
	st := scene.New(2.5)
	o := New(testConfig())

	o.Update(st, dt)
	want := float32(0.15) * dt
	if got := o.Yaw(); math32.Abs(got-want) > 1e-6 {
		t.Errorf("yaw = %f, want ambient step %f", got, want)
	}
}

func TestExplicitRateOverridesAmbient(t *testing.T) {
	st := scene.New(2.5)
	st.SetRotation(-2.0)
	o := New(testConfig())

	o.Update(st, dt)
	want := float32(-2.0) * dt
	// negative rate wraps into [0, 2π)
	wantWrapped := want + 2*math32.Pi
	if got := o.Yaw(); math32.Abs(got-wantWrapped) > 1e-5 {
		t.Errorf("yaw = %f, want %f", got, wantWrapped)
	}
}

func TestYawStaysNormalized(t *testing.T) {
	st := scene.New(2.5)
	st.SetRotation(2.5)
	o := New(testConfig())

	for i := 0; i < 600; i++ {
		o.Update(st, dt)
	}
	if y := o.Yaw(); y < 0 || y >= 2*math32.Pi {
		t.Errorf("yaw %f outside [0, 2π)", y)
	}
}

func TestFramingTweensOnModeSwitch(t *testing.T) {
	st := scene.New(2.5)
	o := New(testConfig())

	if o.Radius() != 58 {
		t.Fatalf("initial radius = %f, want 58", o.Radius())
	}

	st.Switch(scene.ModeFormed)
	o.Update(st, dt)

	// One frame in: moving, but nowhere near the target yet.
	if r := o.Radius(); r >= 58 || r <= 36 {
		t.Errorf("radius after one frame = %f, want strictly between 36 and 58", r)
	}

	// Run well past the tween duration.
	for i := 0; i < 600; i++ {
		o.Update(st, dt)
	}
	if r := o.Radius(); math32.Abs(r-36) > 1e-3 {
		t.Errorf("settled radius = %f, want 36", r)
	}

	pos := o.Position()
	if math32.Abs(pos.Y-4) > 1e-3 {
		t.Errorf("settled height = %f, want 4", pos.Y)
	}
}

func TestSwitchBackRetargetsFromCurrent(t *testing.T) {
	st := scene.New(2.5)
	o := New(testConfig())

	st.Switch(scene.ModeFormed)
	for i := 0; i < 30; i++ {
		o.Update(st, dt)
	}
	mid := o.Radius()

	// Reverse mid-flight; the new tween starts from wherever we are.
	st.Switch(scene.ModeChaos)
	o.Update(st, dt)
	if r := o.Radius(); math32.Abs(r-mid) > 1.0 {
		t.Errorf("radius jumped from %f to %f on reversal", mid, r)
	}

	for i := 0; i < 600; i++ {
		o.Update(st, dt)
	}
	if r := o.Radius(); math32.Abs(r-58) > 1e-3 {
		t.Errorf("settled radius = %f, want 58", r)
	}
}

func TestPositionOnOrbitCircle(t *testing.T) {
	st := scene.New(2.5)
	o := New(testConfig())
	o.Update(st, dt)

	pos := o.Position()
	dist := math32.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
	if math32.Abs(dist-o.Radius()) > 1e-4 {
		t.Errorf("eye distance = %f, want radius %f", dist, o.Radius())
	}
	if tgt := o.Target(); tgt.X != 0 || tgt.Y != 0 || tgt.Z != 0 {
		t.Errorf("target = %+v, want origin", tgt)
	}
}

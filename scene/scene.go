// Package scene holds the single authoritative scene state shared by the
// render loop and the gesture pipeline.
//
// The cross-goroutine contract is last-write-wins on two scalar fields: the
// gesture loop writes mode and rotation rate through the event handlers, the
// render loop reads them every frame and tolerates momentary staleness. The
// per-group morph progress is derived state owned by the render loop alone.
package scene

import (
	"math"
	"sync/atomic"

	"github.com/pthm-cable/arbor/components"
)

// Mode is the interpolation target for every entity group.
type Mode uint32

const (
	ModeChaos Mode = iota
	ModeFormed
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeFormed {
		return "formed"
	}
	return "chaos"
}

// State is the scene state machine. Create with New; pass by pointer to both
// loops. Mutation happens only through Switch and SetRotation.
type State struct {
	mode     atomic.Uint32
	rotation atomic.Uint32 // float32 bits

	maxRate float32

	// Progress tracks each group's morph scalar in [0, 1], damped toward the
	// mode's pole by the render loop. Never written by the gesture loop.
	Progress [components.GroupCount]float32
}

// New returns a state in chaos mode with zero rotation.
// maxRate bounds SetRotation in both directions.
func New(maxRate float32) *State {
	return &State{maxRate: maxRate}
}

// Mode returns the current interpolation target.
func (s *State) Mode() Mode {
	return Mode(s.mode.Load())
}

// Switch sets the interpolation target. Idempotent: re-asserting the current
// mode changes nothing, so repeated triggers from the gesture loop are
// harmless.
func (s *State) Switch(m Mode) {
	s.mode.Store(uint32(m))
}

// Toggle flips between the two modes and returns the new one.
func (s *State) Toggle() Mode {
	m := ModeFormed
	if s.Mode() == ModeFormed {
		m = ModeChaos
	}
	s.Switch(m)
	return m
}

// Rotation returns the current explicit rotation rate in rad/s.
// Zero means no control signal; the camera falls back to ambient auto-rotation.
func (s *State) Rotation() float32 {
	return math.Float32frombits(s.rotation.Load())
}

// SetRotation sets the rotation rate, clamped to [-maxRate, maxRate].
func (s *State) SetRotation(rate float32) {
	if rate > s.maxRate {
		rate = s.maxRate
	} else if rate < -s.maxRate {
		rate = -s.maxRate
	}
	s.rotation.Store(math.Float32bits(rate))
}

// MaxRate returns the configured rotation bound.
func (s *State) MaxRate() float32 {
	return s.maxRate
}

// Pole returns the progress value the given mode converges toward.
func (m Mode) Pole() float32 {
	if m == ModeFormed {
		return 1
	}
	return 0
}

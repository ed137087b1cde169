package gesture

import "time"

// Config holds the pipeline tunables. The confidence cutoff and dead zone are
// deliberate tuning knobs, not contracts; defaults come from the scene config.
type Config struct {
	// Interval is the recognition tick period. One classification is in
	// flight at a time, so this also rate-limits the recognizer.
	Interval time.Duration

	// MinConfidence discards classifications below it (jitter guard).
	MinConfidence float32

	// DeadZone is the fraction of the half-frame around center that maps to
	// rotation rate 0 (hand-tremor guard).
	DeadZone float32

	// RotationGain is the rotation rate in rad/s when the hand sits at the
	// frame edge. The scene state clamps the final rate.
	RotationGain float32

	// FormLabel and ScatterLabel are the gesture labels that switch modes.
	FormLabel    string
	ScatterLabel string

	// DiagRing is the diagnostic ring capacity.
	DiagRing int
}

// DefaultConfig returns the pipeline defaults used when no scene config is
// loaded (tools, tests).
func DefaultConfig() Config {
	return Config{
		Interval:      66 * time.Millisecond,
		MinConfidence: 0.4,
		DeadZone:      0.08,
		RotationGain:  2.0,
		FormLabel:     "open_palm",
		ScatterLabel:  "closed_fist",
		DiagRing:      32,
	}
}

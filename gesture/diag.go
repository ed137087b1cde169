package gesture

import (
	"sync"
	"time"
)

// DiagEntry is one recorded recognition for the overlay.
type DiagEntry struct {
	Label      string
	Confidence float32
	Landmarks  []Point
	At         time.Time
}

// Diag is a small ring of recent recognitions. Recording is skipped entirely
// while disabled, which is the default.
type Diag struct {
	mu      sync.Mutex
	enabled bool
	entries []DiagEntry
	next    int
	filled  bool
}

// NewDiag creates a ring with the given capacity.
func NewDiag(capacity int) *Diag {
	if capacity < 1 {
		capacity = 16
	}
	return &Diag{entries: make([]DiagEntry, capacity)}
}

// SetEnabled toggles recording. Disabling clears the ring.
func (d *Diag) SetEnabled(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = on
	if !on {
		d.next = 0
		d.filled = false
	}
}

// Enabled reports whether the ring records.
func (d *Diag) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Record stores one recognition if enabled.
func (d *Diag) Record(label string, confidence float32, landmarks []Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return
	}
	// Copy landmarks; the caller's slice is reused across frames.
	lm := make([]Point, len(landmarks))
	copy(lm, landmarks)
	d.entries[d.next] = DiagEntry{Label: label, Confidence: confidence, Landmarks: lm, At: time.Now()}
	d.next = (d.next + 1) % len(d.entries)
	if d.next == 0 {
		d.filled = true
	}
}

// Latest returns the most recent entry, if any.
func (d *Diag) Latest() (DiagEntry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.filled && d.next == 0 {
		return DiagEntry{}, false
	}
	idx := (d.next - 1 + len(d.entries)) % len(d.entries)
	return d.entries[idx], true
}

package gesture

import (
	"context"
	"sync"
)

// MockCapture is an in-memory Capture for tests and camera-less runs.
type MockCapture struct {
	OpenErr error
	GrabErr error

	mu     sync.Mutex
	frames int
	closed bool
}

// Open returns OpenErr if set.
func (m *MockCapture) Open(ctx context.Context) error {
	return m.OpenErr
}

// Grab returns an empty frame or GrabErr.
func (m *MockCapture) Grab() (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GrabErr != nil {
		return nil, m.GrabErr
	}
	m.frames++
	return Frame{}, nil
}

// Frames returns how many frames were grabbed.
func (m *MockCapture) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Close marks the capture closed.
func (m *MockCapture) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockCapture) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockRecognizer replays scripted results. When the script runs out it
// reports an empty frame.
type MockRecognizer struct {
	InitErr error

	// OnClassify, when set, is invoked inside Classify before returning;
	// tests use it to cancel contexts mid-flight.
	OnClassify func()

	mu      sync.Mutex
	script  []Result
	cursor  int
	classed int
	closed  bool
}

// Script appends results to replay in order.
func (m *MockRecognizer) Script(results ...Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, results...)
}

// Init returns InitErr if set.
func (m *MockRecognizer) Init(ctx context.Context) error {
	return m.InitErr
}

// Classify pops the next scripted result.
func (m *MockRecognizer) Classify(frame Frame, timestampMS int64) (Result, error) {
	if m.OnClassify != nil {
		m.OnClassify()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classed++
	if m.cursor >= len(m.script) {
		return Result{}, nil
	}
	r := m.script[m.cursor]
	m.cursor++
	return r, nil
}

// Classifications returns how many classify calls were made.
func (m *MockRecognizer) Classifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.classed
}

// Close marks the recognizer closed.
func (m *MockRecognizer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Package gesture converts a video stream into discrete scene-control events.
//
// The pipeline runs on its own goroutine, decoupled from the render clock, and
// talks to the rest of the program only through the scene state handlers. It
// consumes two contracts: a Capture that yields frames and a Recognizer that
// classifies them.
package gesture

import "context"

// Frame is one JPEG-encoded video frame.
type Frame []byte

// Point is a normalized landmark position, [0,1] in both axes with the origin
// at the frame's top-left.
type Point struct {
	X, Y float32
}

// Classification is one recognized gesture on one hand.
type Classification struct {
	Label      string
	Confidence float32
}

// Result is the output of one recognition call. Gestures and Landmarks are
// index-aligned per detected hand; both empty means no hand in frame.
type Result struct {
	Gestures  []Classification
	Landmarks [][]Point
}

// Capture is the video source contract.
type Capture interface {
	// Open acquires the device. Fails with ErrPermissionDenied or
	// ErrDeviceUnavailable.
	Open(ctx context.Context) error

	// Grab returns the most recent frame.
	Grab() (Frame, error)

	Close() error
}

// Recognizer is the gesture model contract.
type Recognizer interface {
	// Init loads the model. Fails with ErrModelLoad on asset or backend
	// problems.
	Init(ctx context.Context) error

	// Classify runs recognition on one frame. An empty Result means no hand;
	// errors are per-frame and retryable.
	Classify(frame Frame, timestampMS int64) (Result, error)

	Close() error
}

// Events receives pipeline telemetry. All methods may be called from the
// pipeline goroutine.
type Events interface {
	RecordModeSwitch()
	RecordRotate()
	RecordLowConfidence()
	RecordIdleFrame()
	RecordRecognizerError()
}

// StatusSource exposes the pipeline status line for the HUD.
type StatusSource interface {
	Status() string
}

// Pipeline status strings.
const (
	StatusInitializing     = "initializing"
	StatusDownloadingModel = "downloading model"
	StatusRequestingCamera = "requesting camera"
	StatusReady            = "ready"
	StatusIdle             = "idle"
	StatusDisabled         = "disabled"
)

// Disabled is the status source used when the pipeline is never constructed
// (low capability tier).
type Disabled struct{}

// Status returns the fixed disabled string.
func (Disabled) Status() string { return StatusDisabled }

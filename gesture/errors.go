package gesture

import "errors"

var (
	// ErrPermissionDenied indicates camera access was refused.
	ErrPermissionDenied = errors.New("gesture: camera permission denied")

	// ErrDeviceUnavailable indicates no capture device could be opened.
	ErrDeviceUnavailable = errors.New("gesture: capture device unavailable")

	// ErrModelLoad indicates the recognition model could not be initialized.
	ErrModelLoad = errors.New("gesture: recognition model load failed")

	// ErrRecognition indicates a per-frame recognition failure. These are
	// swallowed at pipeline scope and retried on the next tick.
	ErrRecognition = errors.New("gesture: recognition failed")
)

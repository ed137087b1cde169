// Package vision provides the gocv-backed capture and recognition
// implementations behind the gesture pipeline interfaces. Everything here
// touches OpenCV; the rest of the gesture package stays device-free so it can
// be tested with mocks.
package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/pthm-cable/arbor/gesture"
)

// Webcam grabs JPEG frames from a local video device.
type Webcam struct {
	deviceID int
	cap      *gocv.VideoCapture
	mat      gocv.Mat
}

// NewWebcam prepares a capture for the given device index. The device itself
// is acquired in Open so failures surface through the pipeline status.
func NewWebcam(deviceID int) *Webcam {
	return &Webcam{deviceID: deviceID}
}

// Open acquires the video device.
func (w *Webcam) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cap, err := gocv.OpenVideoCapture(w.deviceID)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", gesture.ErrDeviceUnavailable, w.deviceID, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return fmt.Errorf("%w: device %d did not open", gesture.ErrPermissionDenied, w.deviceID)
	}
	w.cap = cap
	w.mat = gocv.NewMat()
	return nil
}

// Grab reads one frame and encodes it as JPEG.
func (w *Webcam) Grab() (gesture.Frame, error) {
	if w.cap == nil {
		return nil, gesture.ErrDeviceUnavailable
	}
	if ok := w.cap.Read(&w.mat); !ok || w.mat.Empty() {
		return nil, fmt.Errorf("%w: read failed", gesture.ErrDeviceUnavailable)
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, w.mat)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	frame := make(gesture.Frame, buf.Len())
	copy(frame, buf.GetBytes())
	return frame, nil
}

// Close releases the device.
func (w *Webcam) Close() error {
	if w.cap == nil {
		return nil
	}
	w.mat.Close()
	err := w.cap.Close()
	w.cap = nil
	return err
}

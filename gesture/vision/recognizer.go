package vision

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/pthm-cable/arbor/gesture"
)

// Labels the hand model was trained on, in output-channel order.
var handLabels = []string{"open_palm", "closed_fist", "pointing", "thumbs_up"}

// ModelConfig holds the ONNX hand model parameters.
type ModelConfig struct {
	ModelPath string
	InputSize int
	// ScoreThresh rejects raw detections before NMS. This is a coarse floor;
	// the pipeline applies its own per-event confidence gate on top.
	ScoreThresh float32
	NMSThresh   float32
}

// DefaultModelConfig returns the parameters the bundled model was exported with.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		ModelPath:   "models/hand_gesture.onnx",
		InputSize:   320,
		ScoreThresh: 0.25,
		NMSThresh:   0.45,
	}
}

// HandRecognizer classifies hand gestures with an ONNX detection model.
// Safe for one caller at a time per the pipeline contract; the mutex guards
// against a late Close racing an in-flight Classify.
type HandRecognizer struct {
	cfg ModelConfig
	mu  sync.Mutex
	net gocv.Net
	ok  bool
}

func NewHandRecognizer(cfg ModelConfig) *HandRecognizer {
	return &HandRecognizer{cfg: cfg}
}

// Init loads the model. Deferred out of the constructor so load time and load
// failures are reported through the pipeline status.
func (r *HandRecognizer) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(r.cfg.ModelPath); err != nil {
		return fmt.Errorf("%w: %s: %v", gesture.ErrModelLoad, r.cfg.ModelPath, err)
	}

	net := gocv.ReadNetFromONNX(r.cfg.ModelPath)
	if net.Empty() {
		return fmt.Errorf("%w: %s", gesture.ErrModelLoad, r.cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	r.mu.Lock()
	r.net = net
	r.ok = true
	r.mu.Unlock()
	return nil
}

// Classify runs one frame through the model. One detected hand maps to one
// gesture classification plus a small landmark set derived from its box.
func (r *HandRecognizer) Classify(frame gesture.Frame, timestampMS int64) (gesture.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ok {
		return gesture.Result{}, gesture.ErrModelLoad
	}

	img, err := gocv.IMDecode(frame, gocv.IMReadColor)
	if err != nil {
		return gesture.Result{}, fmt.Errorf("%w: decode: %v", gesture.ErrRecognition, err)
	}
	defer img.Close()
	if img.Empty() {
		return gesture.Result{}, fmt.Errorf("%w: empty frame", gesture.ErrRecognition)
	}

	imgW := float32(img.Cols())
	imgH := float32(img.Rows())

	size := image.Pt(r.cfg.InputSize, r.cfg.InputSize)
	blob := gocv.BlobFromImage(img, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	r.net.SetInput(blob, "")
	output := r.net.Forward("")
	defer output.Close()

	return r.parse(output, imgW, imgH), nil
}

// parse reads the detection tensor, shape [1, 4+len(handLabels), N]: per
// candidate a center-format box followed by per-gesture scores.
func (r *HandRecognizer) parse(output gocv.Mat, imgW, imgH float32) gesture.Result {
	rows := output.Cols() // candidates
	cols := output.Rows() // 4 box + gesture scores

	data, err := output.DataPtrFloat32()
	if err != nil {
		return gesture.Result{}
	}

	var boxes []image.Rectangle
	var confidences []float32
	var labelIdx []int

	for i := 0; i < rows; i++ {
		best := float32(0)
		bestClass := 0
		for c := 4; c < cols; c++ {
			if s := data[c*rows+i]; s > best {
				best = s
				bestClass = c - 4
			}
		}
		if best < r.cfg.ScoreThresh || bestClass >= len(handLabels) {
			continue
		}

		cx := data[0*rows+i]
		cy := data[1*rows+i]
		w := data[2*rows+i]
		h := data[3*rows+i]

		in := float32(r.cfg.InputSize)
		x1 := int((cx - w/2) * imgW / in)
		y1 := int((cy - h/2) * imgH / in)
		x2 := int((cx + w/2) * imgW / in)
		y2 := int((cy + h/2) * imgH / in)

		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		confidences = append(confidences, best)
		labelIdx = append(labelIdx, bestClass)
	}

	if len(boxes) == 0 {
		return gesture.Result{}
	}

	indices := gocv.NMSBoxes(boxes, confidences, r.cfg.ScoreThresh, r.cfg.NMSThresh)

	var res gesture.Result
	for _, idx := range indices {
		box := boxes[idx]
		res.Gestures = append(res.Gestures, gesture.Classification{
			Label:      handLabels[labelIdx[idx]],
			Confidence: confidences[idx],
		})
		res.Landmarks = append(res.Landmarks, boxLandmarks(box, imgW, imgH))
	}
	return res
}

// boxLandmarks derives a normalized landmark set from a detection box: the
// center first (the pipeline steers from landmark 0), then the four corners.
func boxLandmarks(box image.Rectangle, imgW, imgH float32) []gesture.Point {
	cx := float32(box.Min.X+box.Max.X) / 2 / imgW
	cy := float32(box.Min.Y+box.Max.Y) / 2 / imgH
	return []gesture.Point{
		{X: cx, Y: cy},
		{X: float32(box.Min.X) / imgW, Y: float32(box.Min.Y) / imgH},
		{X: float32(box.Max.X) / imgW, Y: float32(box.Min.Y) / imgH},
		{X: float32(box.Min.X) / imgW, Y: float32(box.Max.Y) / imgH},
		{X: float32(box.Max.X) / imgW, Y: float32(box.Max.Y) / imgH},
	}
}

// Close releases the model.
func (r *HandRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ok {
		return nil
	}
	r.ok = false
	return r.net.Close()
}

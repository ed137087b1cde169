package gesture

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/arbor/scene"
)

// Pipeline pulls frames from a Capture, classifies them with a Recognizer,
// and converts qualifying results into scene state mutations.
//
// Every error is caught at pipeline scope and converted to the status string;
// nothing here ever reaches the render path. After the context is cancelled no
// event is dispatched, even when an in-flight classification resolves late.
type Pipeline struct {
	cfg     Config
	capture Capture
	rec     Recognizer
	scene   *scene.State
	events  Events

	status atomic.Pointer[string]
	diag   *Diag
	log    *slog.Logger

	recErrors atomic.Int64
}

// New creates a pipeline bound to the given scene state.
func New(cfg Config, capture Capture, rec Recognizer, st *scene.State) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		capture: capture,
		rec:     rec,
		scene:   st,
		diag:    NewDiag(cfg.DiagRing),
		log:     slog.With("sys", "gesture"),
	}
	p.setStatus(StatusInitializing)
	return p
}

// SetEvents attaches a telemetry sink. Must be called before Run.
func (p *Pipeline) SetEvents(e Events) {
	p.events = e
}

// Diag returns the diagnostics ring for the overlay.
func (p *Pipeline) Diag() *Diag {
	return p.diag
}

// Status returns the current human-readable pipeline state.
func (p *Pipeline) Status() string {
	return *p.status.Load()
}

func (p *Pipeline) setStatus(s string) {
	p.status.Store(&s)
}

// fail records a terminal pipeline error. The scene stays controllable from
// the keyboard; only this loop halts.
func (p *Pipeline) fail(err error) {
	p.setStatus("error: " + reason(err))
	p.log.Error("pipeline halted", "error", err)
}

// reason maps the error taxonomy to short status text.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "camera permission denied"
	case errors.Is(err, ErrDeviceUnavailable):
		return "no camera available"
	case errors.Is(err, ErrModelLoad):
		return "model load failed"
	default:
		return err.Error()
	}
}

// Run acquires the capture device and model, then loops until the context is
// cancelled. Blocking; callers start it on its own goroutine.
func (p *Pipeline) Run(ctx context.Context) {
	p.setStatus(StatusRequestingCamera)
	if err := p.capture.Open(ctx); err != nil {
		p.fail(err)
		return
	}
	defer p.capture.Close()

	p.setStatus(StatusDownloadingModel)
	if err := p.rec.Init(ctx); err != nil {
		p.fail(err)
		return
	}
	defer p.rec.Close()

	p.setStatus(StatusReady)
	p.log.Info("pipeline ready", "interval", p.cfg.Interval, "min_confidence", p.cfg.MinConfidence)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		p.step(ctx)
	}
}

// step runs one recognition iteration: grab, classify, dispatch.
func (p *Pipeline) step(ctx context.Context) {
	frame, err := p.capture.Grab()
	if err != nil {
		p.recordError(err)
		return
	}

	res, err := p.rec.Classify(frame, time.Now().UnixMilli())
	if err != nil {
		p.recordError(err)
		return
	}

	// The classify call may have outlived a cancellation; state must not be
	// touched after teardown was requested.
	if ctx.Err() != nil {
		return
	}

	p.dispatch(res)
}

// recordError counts a per-frame failure; the next tick retries. The natural
// frame rate is the backoff.
func (p *Pipeline) recordError(err error) {
	n := p.recErrors.Add(1)
	if p.events != nil {
		p.events.RecordRecognizerError()
	}
	if n == 1 || n%100 == 0 {
		p.log.Warn("recognition error", "error", err, "total", n)
	}
}

// dispatch converts one recognition result into scene events.
func (p *Pipeline) dispatch(res Result) {
	if len(res.Gestures) == 0 {
		// No hand: rotation falls back to ambient, not an error.
		p.scene.SetRotation(0)
		p.setStatus(StatusIdle)
		if p.events != nil {
			p.events.RecordIdleFrame()
		}
		return
	}

	best := -1
	for i, g := range res.Gestures {
		if g.Confidence < p.cfg.MinConfidence {
			if p.events != nil {
				p.events.RecordLowConfidence()
			}
			continue
		}
		if best < 0 || g.Confidence > res.Gestures[best].Confidence {
			best = i
		}
	}
	if best < 0 {
		// Everything below the gate: treat like an empty frame.
		p.scene.SetRotation(0)
		p.setStatus(StatusIdle)
		if p.events != nil {
			p.events.RecordIdleFrame()
		}
		return
	}

	g := res.Gestures[best]

	// Mode switches fire on every qualifying frame; Switch is idempotent so
	// a held pose is harmless.
	switch g.Label {
	case p.cfg.FormLabel:
		p.scene.Switch(scene.ModeFormed)
		if p.events != nil {
			p.events.RecordModeSwitch()
		}
	case p.cfg.ScatterLabel:
		p.scene.Switch(scene.ModeChaos)
		if p.events != nil {
			p.events.RecordModeSwitch()
		}
	}

	var landmarks []Point
	if best < len(res.Landmarks) {
		landmarks = res.Landmarks[best]
	}
	p.scene.SetRotation(p.rotationRate(landmarks))
	if p.events != nil {
		p.events.RecordRotate()
	}

	p.setStatus(StatusReady)
	p.diag.Record(g.Label, g.Confidence, landmarks)
}

// rotationRate maps the primary landmark's horizontal offset from frame
// center to a signed rate. Offsets inside the dead zone map to 0 so hand
// tremor does not drift the scene.
func (p *Pipeline) rotationRate(landmarks []Point) float32 {
	if len(landmarks) == 0 {
		return 0
	}

	// Primary landmark is the first (hand center for the vision backend).
	offset := (landmarks[0].X - 0.5) * 2 // [-1, 1] across the frame
	if offset < p.cfg.DeadZone && offset > -p.cfg.DeadZone {
		return 0
	}

	// Hand right of center spins clockwise seen from above (negative yaw),
	// matching drag intuition in the mirrored preview.
	return -offset * p.cfg.RotationGain
}

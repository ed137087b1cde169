package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arbor/gesture"
)

// DiagOverlay draws the gesture diagnostics panel: the latest classification
// plus its landmarks plotted in a miniature camera frame.
type DiagOverlay struct {
	x, y  int32
	frame int32 // side length of the miniature frame
}

func NewDiagOverlay(x, y int32) *DiagOverlay {
	return &DiagOverlay{x: x, y: y, frame: 160}
}

// Draw renders the overlay from the diagnostics ring. No-op while the ring is
// disabled or empty.
func (o *DiagOverlay) Draw(diag *gesture.Diag) {
	if diag == nil || !diag.Enabled() {
		return
	}
	entry, ok := diag.Latest()
	if !ok {
		return
	}

	x, y := o.x, o.y
	panelW := o.frame + 20
	panelH := o.frame + 70

	rl.DrawRectangle(x, y, panelW, panelH, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLines(x, y, panelW, panelH, rl.DarkGray)

	rl.DrawText("Gesture Diagnostics", x+10, y+8, 14, rl.White)
	rl.DrawText(
		fmt.Sprintf("%s (%.2f)", entry.Label, entry.Confidence),
		x+10, y+26, 14, rl.SkyBlue,
	)
	rl.DrawText(fmt.Sprintf("%4dms ago", time.Since(entry.At).Milliseconds()), x+10, y+42, 12, rl.Gray)

	// Miniature camera frame with the normalized landmarks.
	fx := x + 10
	fy := y + 60
	rl.DrawRectangleLines(fx, fy, o.frame, o.frame, rl.Gray)
	for i, pt := range entry.Landmarks {
		px := fx + int32(pt.X*float32(o.frame))
		py := fy + int32(pt.Y*float32(o.frame))
		color := rl.Yellow
		if i == 0 {
			color = rl.Red // steering landmark
		}
		rl.DrawCircle(px, py, 3, color)
	}

	// Center line: the steering dead zone reference.
	mid := fx + o.frame/2
	rl.DrawLine(mid, fy, mid, fy+o.frame, rl.DarkGray)
}

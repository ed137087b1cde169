// Package ui renders the heads-up display and the gesture diagnostics overlay.
package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD draws for one frame.
type HUDData struct {
	Title         string
	Mode          string
	GestureStatus string
	RotationRate  float32
	Entities      int
	Tier          string
	FPS           int32
	Paused        bool
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the main heads-up display.
type HUD struct{}

func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Scene: %s | Particles: %d | Tier: %s", strings.ToUpper(data.Mode), data.Entities, data.Tier),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Gesture: %s | Spin: %+.2f rad/s | FPS: %d", data.GestureStatus, data.RotationRate, data.FPS),
		10, 55, 16, gestureColor(data.GestureStatus),
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func gestureColor(status string) rl.Color {
	switch {
	case strings.HasPrefix(status, "error"):
		return rl.Red
	case status == "ready":
		return rl.Green
	case status == "disabled":
		return rl.Gray
	default:
		return rl.LightGray
	}
}

package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arbor/scene"
)

// handleInput processes keyboard input. Keyboard and gesture control write
// through the same scene state handlers; whoever wrote last wins.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Mode controls: T toggles, F and C force a mode.
	if rl.IsKeyPressed(rl.KeyT) {
		mode := g.state.Toggle()
		slog.Info("mode switched", "source", "keyboard", "mode", mode.String())
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.state.Switch(scene.ModeFormed)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.state.Switch(scene.ModeChaos)
	}

	// Diagnostics overlay.
	if rl.IsKeyPressed(rl.KeyD) && g.pipeline != nil {
		g.showDiag = !g.showDiag
		g.pipeline.Diag().SetEnabled(g.showDiag)
	}

	// G stops the gesture pipeline for the session.
	if rl.IsKeyPressed(rl.KeyG) && g.pipeline != nil {
		g.stopGesture()
		g.showDiag = false
	}

	g.handleRotationKeys()
}

// handleRotationKeys steers the orbit with the arrow keys while held.
// Releasing both keys clears only a keyboard-set rate, so a gesture-set rate
// survives a stray key tap.
func (g *Game) handleRotationKeys() {
	rate := g.state.MaxRate() * keyRotateFraction

	switch {
	case rl.IsKeyDown(rl.KeyLeft):
		g.state.SetRotation(rate)
		g.keySteering = true
	case rl.IsKeyDown(rl.KeyRight):
		g.state.SetRotation(-rate)
		g.keySteering = true
	case g.keySteering:
		g.state.SetRotation(0)
		g.keySteering = false
	}
}

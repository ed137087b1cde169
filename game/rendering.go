package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arbor/renderer"
	"github.com/pthm-cable/arbor/telemetry"
	"github.com/pthm-cable/arbor/ui"
)

// Background color: near-black with a hint of blue.
var clearColor = rl.Color{R: 4, G: 6, B: 12, A: 255}

// Draw renders one frame: the particle scene, the HUD, and the diagnostics
// overlay when enabled.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(clearColor)

	g.submitFrame()

	cfg := g.hudData()
	g.hud.Draw(cfg)
	g.hud.DrawControls(cfg.ScreenWidth, cfg.ScreenHeight,
		"T toggle | F form | C scatter | arrows spin | D diagnostics | G stop gesture | Space pause")

	if g.showDiag && g.pipeline != nil && g.diag != nil {
		g.diag.Draw(g.pipeline.Diag())
	}

	rl.EndDrawing()
	g.perf.RecordFrame()
}

// submitFrame collects the draw list and hands it to the render backend.
func (g *Game) submitFrame() {
	start := time.Now()

	g.instances = g.instances[:0]
	query := g.drawFilter.Query()
	for query.Next() {
		pos, sprite, member := query.Get()
		g.instances = append(g.instances, renderer.Instance{
			Pos:   pos.Vec3,
			Group: member.Group,
			R:     sprite.R,
			G:     sprite.G,
			B:     sprite.B,
			Size:  sprite.Size,
			Glow:  sprite.Glow,
		})
	}

	view := renderer.View{
		Eye:    g.orbit.Position(),
		Target: g.orbit.Target(),
		FOVY:   45,
	}
	g.rend.Draw(view, g.instances)
	g.perf.AddPhase(telemetry.PhaseSubmit, time.Since(start))
}

// hudData assembles the HUD snapshot for this frame.
func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Title:         "Arbor",
		Mode:          g.state.Mode().String(),
		GestureStatus: g.gestureStatus.Status(),
		RotationRate:  g.state.Rotation(),
		Entities:      g.prof.TotalEntities(),
		Tier:          g.prof.Tier.String(),
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		ScreenWidth:   int32(rl.GetScreenWidth()),
		ScreenHeight:  int32(rl.GetScreenHeight()),
	}
}

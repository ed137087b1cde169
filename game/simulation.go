package game

import (
	"log/slog"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/arbor/scene"
	"github.com/pthm-cable/arbor/telemetry"
)

// Update runs input handling and one or more simulation steps.
// Windowed mode only; headless runs call UpdateHeadless.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep(DT)
	}
}

// UpdateHeadless runs simulation steps and submits the frame to the recording
// renderer, with no input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep(DT)
	}
	g.submitFrame()
}

// simulationStep advances the scene by one fixed tick.
func (g *Game) simulationStep(dt float32) {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseMorph)
	g.morph.Update(g.state, dt)

	g.perf.StartPhase(telemetry.PhaseDrift)
	g.drift.Update(g.state, dt)

	g.perf.StartPhase(telemetry.PhaseGlow)
	g.glow.Update(g.state, dt)

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.orbit.Update(g.state, dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.flushTelemetry()

	g.perf.EndTick()
}

// flushTelemetry emits window stats when the current window has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleScene())

	if g.opts.LogStats {
		stats.LogStats()
		g.perf.Stats().LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Warn("writing telemetry", "error", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), g.tick); err != nil {
		slog.Warn("writing perf", "error", err)
	}
}

// sampleScene captures per-group progress and distance-to-target distributions
// for the stats window.
func (g *Game) sampleScene() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		Mode:     g.state.Mode(),
		Entities: g.prof.TotalEntities(),
		Progress: g.state.Progress,
	}

	formed := g.state.Mode() == scene.ModeFormed

	query := g.statsFilter.Query()
	for query.Next() {
		pos, anchor, member := query.Get()

		target := &anchor.Chaos
		if formed {
			target = &anchor.Home
		}

		dx := target.X - pos.X
		dy := target.Y - pos.Y
		dz := target.Z - pos.Z
		dist := float64(math32.Sqrt(dx*dx + dy*dy + dz*dz))

		snap.Dists[member.Group] = append(snap.Dists[member.Group], dist)
	}
	return snap
}

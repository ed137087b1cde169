// Package game wires the scene together: entity construction, the frame loop,
// input handling, and telemetry flushing.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	vrand "math/rand/v2"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arbor/camera"
	"github.com/pthm-cable/arbor/components"
	"github.com/pthm-cable/arbor/config"
	"github.com/pthm-cable/arbor/gesture"
	"github.com/pthm-cable/arbor/gesture/vision"
	"github.com/pthm-cable/arbor/profile"
	"github.com/pthm-cable/arbor/renderer"
	"github.com/pthm-cable/arbor/scene"
	"github.com/pthm-cable/arbor/systems"
	"github.com/pthm-cable/arbor/telemetry"
	"github.com/pthm-cable/arbor/ui"
)

// DT is the fixed simulation step in seconds.
const DT = 1.0 / 60.0

// Keyboard rotation rate as a fraction of the configured maximum.
const keyRotateFraction = 0.6

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
	NoCamera       bool // keyboard-only control even on the high tier
}

// Game holds the complete runtime state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	opts  Options
	prof  profile.Profile

	entityMapper *ecs.Map5[
		components.Position,
		components.Anchor,
		components.Drift,
		components.Sprite,
		components.Member,
	]
	drawFilter *ecs.Filter3[
		components.Position,
		components.Sprite,
		components.Member,
	]
	statsFilter *ecs.Filter3[
		components.Position,
		components.Anchor,
		components.Member,
	]

	state *scene.State
	morph *systems.Morph
	drift *systems.Drift
	glow  *systems.Glow
	orbit *camera.Orbit

	rend renderer.Renderer
	hud  *ui.HUD
	diag *ui.DiagOverlay

	pipeline       *gesture.Pipeline
	pipelineCancel context.CancelFunc
	gestureStatus  gesture.StatusSource

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	tick           int32
	paused         bool
	showDiag       bool
	keySteering    bool
	stepsPerUpdate int

	instances []renderer.Instance
}

// NewGameWithOptions creates a fully wired game instance.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	prof := profile.Resolve(cfg)

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		opts:  opts,
		prof:  prof,
		state: scene.New(float32(cfg.Rotation.MaxRate)),
		entityMapper: ecs.NewMap5[
			components.Position,
			components.Anchor,
			components.Drift,
			components.Sprite,
			components.Member,
		](world),
		drawFilter: ecs.NewFilter3[
			components.Position,
			components.Sprite,
			components.Member,
		](world),
		statsFilter: ecs.NewFilter3[
			components.Position,
			components.Anchor,
			components.Member,
		](world),
		hud:            ui.NewHUD(),
		stepsPerUpdate: opts.StepsPerUpdate,
	}

	g.morph = systems.NewMorph(world, groupParams(cfg))
	g.drift = systems.NewDrift(world, seed)
	g.glow = systems.NewGlow(world, prof.Effects)

	g.orbit = camera.New(camera.Config{
		Chaos:       camera.Framing{Radius: float32(cfg.Orbit.RadiusChaos), Height: float32(cfg.Orbit.HeightChaos)},
		Formed:      camera.Framing{Radius: float32(cfg.Orbit.RadiusFormed), Height: float32(cfg.Orbit.HeightFormed)},
		AmbientRate: float32(cfg.Rotation.AmbientRate),
		TweenSec:    float32(cfg.Orbit.TweenSec),
	})

	if opts.Headless {
		g.rend = renderer.NewHeadless()
	} else {
		g.rend = renderer.NewRaylib()
		g.diag = ui.NewDiagOverlay(int32(cfg.Screen.Width)-200, 10)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, DT)
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = om
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	src := vrand.NewPCG(uint64(seed), uint64(seed)>>1|1)
	if err := g.buildGroups(cfg, src); err != nil {
		return nil, err
	}

	g.startGesture(cfg)

	g.instances = make([]renderer.Instance, 0, prof.TotalEntities())

	slog.Info("scene ready",
		"tier", prof.Tier.String(),
		"entities", prof.TotalEntities(),
		"seed", seed,
		"gesture", g.pipeline != nil,
	)

	return g, nil
}

// startGesture constructs and launches the recognition pipeline, or installs
// the fixed disabled status when the session runs without one.
func (g *Game) startGesture(cfg *config.Config) {
	if !g.prof.Gesture || g.opts.NoCamera || g.opts.Headless {
		g.gestureStatus = gesture.Disabled{}
		return
	}

	gcfg := gesture.Config{
		Interval:      time.Duration(cfg.Gesture.IntervalMS) * time.Millisecond,
		MinConfidence: float32(cfg.Gesture.MinConfidence),
		DeadZone:      float32(cfg.Gesture.DeadZone),
		RotationGain:  float32(cfg.Gesture.RotationGain),
		FormLabel:     cfg.Gesture.FormLabel,
		ScatterLabel:  cfg.Gesture.ScatterLabel,
		DiagRing:      cfg.Gesture.DiagRing,
	}

	capture := vision.NewWebcam(cfg.Gesture.CameraIndex)
	rec := vision.NewHandRecognizer(vision.ModelConfig{
		ModelPath:   cfg.Gesture.ModelPath,
		InputSize:   cfg.Gesture.InputSize,
		ScoreThresh: 0.25,
		NMSThresh:   float32(cfg.Gesture.NMSThreshold),
	})

	g.pipeline = gesture.New(gcfg, capture, rec, g.state)
	g.pipeline.SetEvents(g.collector)
	g.gestureStatus = g.pipeline

	ctx, cancel := context.WithCancel(context.Background())
	g.pipelineCancel = cancel
	go g.pipeline.Run(ctx)
}

// stopGesture cancels the pipeline. Keyboard control keeps working.
func (g *Game) stopGesture() {
	if g.pipelineCancel == nil {
		return
	}
	g.pipelineCancel()
	g.pipelineCancel = nil
	g.pipeline = nil
	g.gestureStatus = gesture.Disabled{}
	slog.Info("gesture pipeline stopped, keyboard control only")
}

// groupParams maps config rates to the morph pass parameters.
func groupParams(cfg *config.Config) [components.GroupCount]systems.GroupParams {
	var params [components.GroupCount]systems.GroupParams
	for _, grp := range components.Groups() {
		gc := cfg.Groups.ByGroup(grp)
		params[grp] = systems.GroupParams{
			DampRate:     float32(gc.DampRate),
			ProgressRate: float32(gc.ProgressRate),
		}
	}
	return params
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Scene returns the shared scene state.
func (g *Game) Scene() *scene.State {
	return g.state
}

// Renderer returns the active render backend.
func (g *Game) Renderer() renderer.Renderer {
	return g.rend
}

// Unload tears down the gesture pipeline and output files.
func (g *Game) Unload() {
	g.stopGesture()
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output files", "error", err)
	}
	g.rend.Close()
	slog.Info("scene unloaded", "ticks", g.tick)
}

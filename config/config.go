// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/arbor/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Tree      TreeConfig      `yaml:"tree"`
	Chaos     ChaosConfig     `yaml:"chaos"`
	Groups    GroupsConfig    `yaml:"groups"`
	Rotation  RotationConfig  `yaml:"rotation"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Profile   ProfileConfig   `yaml:"profile"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TreeConfig holds the formed-shape dimensions.
type TreeConfig struct {
	Height       float64 `yaml:"height"`        // full height of the cone
	Radius       float64 `yaml:"radius"`        // base radius
	TopperOffset float64 `yaml:"topper_offset"` // topper height above the apex
}

// ChaosConfig sizes the scatter volume relative to the tree extent.
// Scales above 1 make dispersal read as expansion.
type ChaosConfig struct {
	RadiusScale float64 `yaml:"radius_scale"`
	HeightScale float64 `yaml:"height_scale"`
}

// GroupConfig holds per-group entity counts and motion/visual parameters.
type GroupConfig struct {
	CountHigh    int     `yaml:"count_high"`
	CountLow     int     `yaml:"count_low"`
	DampRate     float64 `yaml:"damp_rate"`     // position convergence rate, 1/s
	ProgressRate float64 `yaml:"progress_rate"` // visual progress scalar rate, 1/s
	SizeMin      float64 `yaml:"size_min"`
	SizeMax      float64 `yaml:"size_max"`
	SpinMax      float64 `yaml:"spin_max"`   // max idle oscillation rate, rad/s
	DriftAmp     float64 `yaml:"drift_amp"`  // idle wobble amplitude, world units
	Color        []uint8 `yaml:"color"`      // base RGB
	ColorJitter  int     `yaml:"color_jitter"`
}

// GroupsConfig holds the five entity groups.
type GroupsConfig struct {
	Foliage     GroupConfig `yaml:"foliage"`
	Lights      GroupConfig `yaml:"lights"`
	Ornaments   GroupConfig `yaml:"ornaments"`
	Decorations GroupConfig `yaml:"decorations"`
	Topper      GroupConfig `yaml:"topper"`
}

// ByGroup returns the config for the given group.
func (g *GroupsConfig) ByGroup(grp components.Group) *GroupConfig {
	switch grp {
	case components.GroupFoliage:
		return &g.Foliage
	case components.GroupLights:
		return &g.Lights
	case components.GroupOrnaments:
		return &g.Ornaments
	case components.GroupDecorations:
		return &g.Decorations
	default:
		return &g.Topper
	}
}

// RotationConfig bounds the scene rotation rate.
type RotationConfig struct {
	MaxRate     float64 `yaml:"max_rate"`     // clamp for explicit control, rad/s
	AmbientRate float64 `yaml:"ambient_rate"` // auto-rotation when no control signal, rad/s
}

// OrbitConfig holds camera framing for the two modes.
type OrbitConfig struct {
	RadiusChaos  float64 `yaml:"radius_chaos"`
	RadiusFormed float64 `yaml:"radius_formed"`
	HeightChaos  float64 `yaml:"height_chaos"`
	HeightFormed float64 `yaml:"height_formed"`
	TweenSec     float64 `yaml:"tween_sec"`
}

// ProfileConfig holds capability tier resolution parameters.
type ProfileConfig struct {
	HighCPUThreshold int `yaml:"high_cpu_threshold"` // logical CPUs required for HIGH tier
}

// GestureConfig holds gesture pipeline tunables.
type GestureConfig struct {
	IntervalMS    int     `yaml:"interval_ms"`    // recognition tick period
	MinConfidence float64 `yaml:"min_confidence"` // classifications below this are discarded
	DeadZone      float64 `yaml:"dead_zone"`      // fraction of half-frame mapped to rate 0
	RotationGain  float64 `yaml:"rotation_gain"`  // rad/s at the frame edge
	FormLabel     string  `yaml:"form_label"`
	ScatterLabel  string  `yaml:"scatter_label"`
	ModelPath     string  `yaml:"model_path"`
	InputSize     int     `yaml:"input_size"`
	NMSThreshold  float64 `yaml:"nms_threshold"`
	CameraIndex   int     `yaml:"camera_index"`
	DiagRing      int     `yaml:"diag_ring"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TreeHeight32   float32
	TreeRadius32   float32
	ChaosHalfX     float32 // half-extent of the scatter box, horizontal
	ChaosHalfY     float32 // half-extent of the scatter box, vertical
	ScreenW32      float32
	ScreenH32      float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the layout and morph code assumes away.
func (c *Config) validate() error {
	if c.Tree.Height <= 0 || c.Tree.Radius <= 0 {
		return fmt.Errorf("config: tree height and radius must be positive (got %.2f, %.2f)",
			c.Tree.Height, c.Tree.Radius)
	}
	for _, grp := range components.Groups() {
		gc := c.Groups.ByGroup(grp)
		if gc.CountHigh < 0 || gc.CountLow < 0 {
			return fmt.Errorf("config: group %s has negative entity count", grp)
		}
		if gc.DampRate <= 0 || gc.ProgressRate <= 0 {
			return fmt.Errorf("config: group %s needs positive damp/progress rates", grp)
		}
	}
	if c.Rotation.MaxRate <= 0 {
		return fmt.Errorf("config: rotation max_rate must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TreeHeight32 = float32(c.Tree.Height)
	c.Derived.TreeRadius32 = float32(c.Tree.Radius)
	c.Derived.ChaosHalfX = float32(c.Tree.Radius * c.Chaos.RadiusScale)
	c.Derived.ChaosHalfY = float32(c.Tree.Height * c.Chaos.HeightScale / 2)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Walk      WalkConfig      `yaml:"walk"`
	Edit      EditConfig      `yaml:"edit"`
	Scene     SceneConfig     `yaml:"scene"`
	Demos     DemosConfig     `yaml:"demos"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly 3D vector: [x, y, z].
type Vec3 [3]float64

// R3 converts v to a gonum vector.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// RGB is a YAML-friendly opaque color: [r, g, b].
type RGB [3]uint8

// RGBA converts c to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// ScreenConfig holds window parameters.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	Title         string  `yaml:"title"`
	LineThickness float64 `yaml:"line_thickness"` // 1 = hairline
	Background    RGB     `yaml:"background"`
}

// CameraConfig holds the initial camera pose and its control speeds.
type CameraConfig struct {
	Position         Vec3       `yaml:"position"`
	Rotation         [2]float64 `yaml:"rotation"`           // yaw, pitch (radians)
	MaxVerticalAngle float64    `yaml:"max_vertical_angle"` // pitch clamp (radians)
	TurnSpeed        float64    `yaml:"turn_speed"`         // radians/s for arrow keys
	MoveSpeed        float64    `yaml:"move_speed"`         // units/s
	MouseSensitivity float64    `yaml:"mouse_sensitivity"`  // radians/s per pixel dragged
	FieldOfView      float64    `yaml:"field_of_view"`      // projection scale in pixels
	ZoomBase         float64    `yaml:"zoom_base"`          // fov *= zoom_base^scale
	KeyZoomStep      float64    `yaml:"key_zoom_step"`      // zoom scale per +/- press
}

// PhysicsConfig holds simulation constants.
type PhysicsConfig struct {
	GravitationalConstant float64 `yaml:"gravitational_constant"`
	Elasticity            float64 `yaml:"elasticity"` // 1 = perfectly elastic
	MaxStep               float64 `yaml:"max_step"`   // frames slower than this skip physics (seconds)
}

// WalkConfig holds walk-mode parameters for the camera.
type WalkConfig struct {
	Gravity      float64 `yaml:"gravity"`       // vertical acceleration (negative = down)
	FloorHeight  float64 `yaml:"floor_height"`  // y of the ground
	PlayerHeight float64 `yaml:"player_height"` // eye height above the ground
	JumpSpeed    float64 `yaml:"jump_speed"`    // initial upward speed of a jump
}

// EditConfig holds parameters for grabbing and moving objects.
type EditConfig struct {
	GrabRange        float64 `yaml:"grab_range"`        // pick radius in pixels at distance 1
	TranslationSpeed float64 `yaml:"translation_speed"` // world units per pixel per unit distance
	RotationSpeed    float64 `yaml:"rotation_speed"`    // radians per pixel
	ScrollSpeed      float64 `yaml:"scroll_speed"`      // wheel moves are translation_speed times this
	MinDrag          float64 `yaml:"min_drag"`          // pixels of motion below which a release stops the body
}

// SceneConfig holds scene limits and the optional floor grid.
type SceneConfig struct {
	MaxModels   int     `yaml:"max_models"`
	FloorSize   int     `yaml:"floor_size"`
	FloorHeight float64 `yaml:"floor_height"`
	FloorColor  RGB     `yaml:"floor_color"`
}

// DemosConfig holds the built-in scenes.
type DemosConfig struct {
	Default string        `yaml:"default"` // planets, models or box
	Seed    int64         `yaml:"seed"`    // 0 = time based
	Planets PlanetsConfig `yaml:"planets"`
	Models  []ModelConfig `yaml:"models"`
	Box     BoxConfig     `yaml:"box"`
}

// BodyConfig describes one physics body.
type BodyConfig struct {
	Model           string  `yaml:"model"` // built-in name or OBJ path
	Color           RGB     `yaml:"color"`
	Mass            float64 `yaml:"mass"`
	Size            float64 `yaml:"size"`
	Position        Vec3    `yaml:"position"`
	Velocity        Vec3    `yaml:"velocity"`
	AngularVelocity Vec3    `yaml:"angular_velocity"`
}

// PlanetsConfig describes the orbital demo. Gravitation is on in this demo.
type PlanetsConfig struct {
	Sun     BodyConfig   `yaml:"sun"`
	Planets []BodyConfig `yaml:"planets"`
}

// ModelConfig describes a static model.
type ModelConfig struct {
	Model    string  `yaml:"model"`
	Color    RGB     `yaml:"color"`
	Size     float64 `yaml:"size"`
	Position Vec3    `yaml:"position"`
}

// BoxConfig describes the bouncing-balls demo.
type BoxConfig struct {
	Size        int     `yaml:"size"`     // edge length of the box
	MinSize     int     `yaml:"min_size"` // slider range
	MaxSize     int     `yaml:"max_size"`
	Balls       int     `yaml:"balls"`
	MinBalls    int     `yaml:"min_balls"`
	MaxBalls    int     `yaml:"max_balls"`
	Model       string  `yaml:"model"`
	WallColor   RGB     `yaml:"wall_color"`
	MinBallSize float64 `yaml:"min_ball_size"` // at box size 20; scales with the box
	MaxBallSize float64 `yaml:"max_ball_size"`
	MinMass     float64 `yaml:"min_mass"`
	MaxMass     float64 `yaml:"max_mass"`
	MaxSpin     float64 `yaml:"max_spin"` // |angular velocity| bound per axis
}

// TelemetryConfig holds stats and perf logging parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulation per stats row
	PerfWindow  int     `yaml:"perf_window"`  // frames of perf samples kept
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	InitialRotation r2.Vec
	BoxWallOffset   float64 // distance of each wall from the origin
	BoxWallSize     int     // grid size of each wall
}

// Global config instance
var global *Config

// Init loads configuration from the given path (or embedded defaults if empty).
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

// Set replaces the global configuration, e.g. after a reload.
func Set(cfg *Config) {
	global = cfg
}

// Cfg returns the global configuration. Panics if Init hasn't been called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration from a YAML file, using embedded defaults for missing values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Camera.ZoomBase <= 0 {
		return fmt.Errorf("camera.zoom_base must be positive, got %g", c.Camera.ZoomBase)
	}
	if c.Physics.MaxStep <= 0 {
		return fmt.Errorf("physics.max_step must be positive, got %g", c.Physics.MaxStep)
	}
	switch c.Demos.Default {
	case "planets", "models", "box":
	default:
		return fmt.Errorf("unknown demo %q", c.Demos.Default)
	}
	return nil
}

// computeDerived calculates derived values after loading.
func (c *Config) computeDerived() {
	c.Derived.InitialRotation = r2.Vec{X: c.Camera.Rotation[0], Y: c.Camera.Rotation[1]}

	box := &c.Demos.Box
	box.Size = clampInt(box.Size, box.MinSize, box.MaxSize)
	box.Balls = clampInt(box.Balls, box.MinBalls, box.MaxBalls)
	c.Derived.BoxWallOffset, c.Derived.BoxWallSize = BoxWalls(box.Size)
}

// BoxWalls returns the wall offset and wall grid size for a box of edge size.
func BoxWalls(size int) (offset float64, gridSize int) {
	half := (size + 1) / 2
	return float64(half), 2*half + 1
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WriteYAML saves the configuration to a file.
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

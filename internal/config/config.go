// Package config reads and writes the adboard TOML tuning file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/adboard"
)

// Config holds adboard configuration.
type Config struct {
	Window      WindowConfig      `toml:"window"`
	Camera      CameraConfig      `toml:"camera"`
	Physics     PhysicsConfig     `toml:"physics"`
	Interaction InteractionConfig `toml:"interaction"`
	Layout      LayoutConfig      `toml:"layout"`
	Audio       AudioConfig       `toml:"audio"`
	Debug       DebugConfig       `toml:"debug"`
}

// WindowConfig controls the window and frame rate.
type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	TPS        int    `toml:"tps"`
	Resizable  bool   `toml:"resizable"`
	Background string `toml:"background"` // hex color
}

// CameraConfig controls zoom limits and view behavior.
type CameraConfig struct {
	InitialScale  float64 `toml:"initial_scale"`
	MinScale      float64 `toml:"min_scale"`
	MaxScale      float64 `toml:"max_scale"`
	ZoomStep      float64 `toml:"zoom_step"`
	WheelStep     float64 `toml:"wheel_step"`
	WheelStepFast float64 `toml:"wheel_step_fast"`
	Recenter      string  `toml:"recenter"` // "origin", "centroid"
	FollowLerp    float64 `toml:"follow_lerp"`
	FocusOnSelect bool    `toml:"focus_on_select"`
	FocusDuration float64 `toml:"focus_duration"` // seconds
}

// PhysicsConfig is the per-frame simulation tuning. It is the section the
// live watcher reloads.
type PhysicsConfig struct {
	Model           string  `toml:"model"`   // "center", "none", "radial", "drift"
	Falloff         string  `toml:"falloff"` // "inverse_square", "inverse_distance"
	Charge          float64 `toml:"charge"`
	CenterStrength  float64 `toml:"center_strength"`
	TargetRadius    float64 `toml:"target_radius"`
	RadialStrength  float64 `toml:"radial_strength"`
	DriftX          float64 `toml:"drift_x"`
	DriftY          float64 `toml:"drift_y"`
	Bounds          Bounds  `toml:"bounds"`
	WallRestitution float64 `toml:"wall_restitution"`
	Jitter          float64 `toml:"jitter"`
	CollidePadding  float64 `toml:"collide_padding"`
	Restitution     float64 `toml:"restitution"`
	CollisionPasses int     `toml:"collision_passes"`
	Decay           float64 `toml:"decay"`
	CancelSpin      bool    `toml:"cancel_spin"`
}

// Bounds is the world rectangle used by the drift model.
type Bounds struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// InteractionConfig controls gesture recognition.
type InteractionConfig struct {
	ClickThreshold float64 `toml:"click_threshold"`
	ThrowClamp     float64 `toml:"throw_clamp"`
	Inertia        bool    `toml:"inertia"`
	Friction       float64 `toml:"friction"`
	StopThreshold  float64 `toml:"stop_threshold"`
}

// LayoutConfig controls node sizing and the initial arrangement.
type LayoutConfig struct {
	CircleRadius float64 `toml:"circle_radius"`
	RadiusBase   float64 `toml:"radius_base"`
	RadiusPerCTR float64 `toml:"radius_per_ctr"`
	Seed         uint64  `toml:"seed"`
	Catalog      string  `toml:"catalog"` // YAML path; empty uses the built-in ads
}

// AudioConfig controls sound effects.
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // master gain, 0..1
}

// DebugConfig controls diagnostics.
type DebugConfig struct {
	Enabled       bool   `toml:"enabled"`
	ScreenshotDir string `toml:"screenshot_dir"`
	TestScript    string `toml:"test_script"`
}

// Default returns the default configuration.
func Default() *Config {
	p := adboard.DefaultPhysics()
	cam := adboard.DefaultCamera()
	in := adboard.DefaultInteraction()
	sz := adboard.DefaultSizing()
	bc := adboard.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:      "Ad Board",
			Width:      int(bc.Width),
			Height:     int(bc.Height),
			TPS:        bc.TPS,
			Resizable:  true,
			Background: "#f5f5f0",
		},
		Camera: CameraConfig{
			InitialScale:  cam.InitialScale,
			MinScale:      cam.MinScale,
			MaxScale:      cam.MaxScale,
			ZoomStep:      cam.ZoomStep,
			WheelStep:     cam.WheelStep,
			WheelStepFast: cam.WheelStepFast,
			Recenter:      cam.Recenter.String(),
			FollowLerp:    cam.FollowLerp,
			FocusDuration: float64(bc.FocusDuration),
		},
		Physics: fromPhysics(p),
		Interaction: InteractionConfig{
			ClickThreshold: in.ClickThreshold,
			ThrowClamp:     in.ThrowClamp,
			Inertia:        in.Inertia,
			Friction:       in.Friction,
			StopThreshold:  in.StopThreshold,
		},
		Layout: LayoutConfig{
			CircleRadius: bc.CircleRadius,
			RadiusBase:   sz.RadiusBase,
			RadiusPerCTR: sz.RadiusPerCTR,
			Seed:         bc.Seed,
		},
		Audio: AudioConfig{Enabled: true, Volume: 1},
		Debug: DebugConfig{ScreenshotDir: "screenshots"},
	}
}

func fromPhysics(p adboard.PhysicsConfig) PhysicsConfig {
	return PhysicsConfig{
		Model:           p.Model.String(),
		Falloff:         p.Falloff.String(),
		Charge:          p.Charge,
		CenterStrength:  p.CenterStrength,
		TargetRadius:    p.TargetRadius,
		RadialStrength:  p.RadialStrength,
		DriftX:          p.Drift.X,
		DriftY:          p.Drift.Y,
		Bounds:          Bounds{X: p.Bounds.X, Y: p.Bounds.Y, Width: p.Bounds.Width, Height: p.Bounds.Height},
		WallRestitution: p.WallRestitution,
		Jitter:          p.Jitter,
		CollidePadding:  p.CollidePadding,
		Restitution:     p.Restitution,
		CollisionPasses: p.CollisionPasses,
		Decay:           p.Decay,
		CancelSpin:      p.CancelSpin,
	}
}

// ConfigDir returns the adboard config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "adboard")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path (the default path when empty). A missing
// file yields the defaults. Keys the file sets override the defaults; unknown
// keys and invalid values are errors.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Save writes the config to path (the default path when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists(path string) error {
	if path == "" {
		path = Path()
	}
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return Save(Default(), path)
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window: tps %d must be positive", c.Window.TPS)
	if _, err := adboard.ParseHexColor(c.Window.Background); err != nil {
		errs = append(errs, fmt.Errorf("window: background: %w", err))
	}

	check(c.Camera.MinScale > 0, "camera: min_scale %v must be positive", c.Camera.MinScale)
	check(c.Camera.MaxScale >= c.Camera.MinScale, "camera: max_scale %v below min_scale %v", c.Camera.MaxScale, c.Camera.MinScale)
	check(c.Camera.ZoomStep > 1, "camera: zoom_step %v must exceed 1", c.Camera.ZoomStep)
	check(c.Camera.WheelStep > 1 && c.Camera.WheelStepFast > 1, "camera: wheel steps must exceed 1")
	check(c.Camera.FollowLerp >= 0 && c.Camera.FollowLerp <= 1, "camera: follow_lerp %v outside [0, 1]", c.Camera.FollowLerp)
	check(c.Camera.FocusDuration >= 0, "camera: focus_duration %v is negative", c.Camera.FocusDuration)
	if _, err := adboard.ParseRecenterMode(c.Camera.Recenter); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}

	if err := c.Physics.Validate(); err != nil {
		errs = append(errs, err)
	}

	check(c.Interaction.ClickThreshold >= 0, "interaction: click_threshold %v is negative", c.Interaction.ClickThreshold)
	check(c.Interaction.ThrowClamp > 0, "interaction: throw_clamp %v must be positive", c.Interaction.ThrowClamp)
	check(c.Interaction.Friction >= 0 && c.Interaction.Friction < 1, "interaction: friction %v outside [0, 1)", c.Interaction.Friction)
	check(c.Interaction.StopThreshold > 0, "interaction: stop_threshold %v must be positive", c.Interaction.StopThreshold)

	check(c.Layout.CircleRadius > 0, "layout: circle_radius %v must be positive", c.Layout.CircleRadius)
	check(c.Layout.RadiusBase > 0, "layout: radius_base %v must be positive", c.Layout.RadiusBase)
	check(c.Layout.RadiusPerCTR >= 0, "layout: radius_per_ctr %v is negative", c.Layout.RadiusPerCTR)

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio: volume %v outside [0, 1]", c.Audio.Volume)

	return errors.Join(errs...)
}

var physicsUnit = []struct {
	name string
	get  func(p *PhysicsConfig) float64
}{
	{"restitution", func(p *PhysicsConfig) float64 { return p.Restitution }},
	{"wall_restitution", func(p *PhysicsConfig) float64 { return p.WallRestitution }},
}

// Validate reports every invalid physics value at once.
func (p *PhysicsConfig) Validate() error {
	var errs []error
	if _, err := adboard.ParseForceModel(p.Model); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	if _, err := adboard.ParseFalloff(p.Falloff); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	for _, u := range physicsUnit {
		if v := u.get(p); v < 0 || v > 1 || math.IsNaN(v) {
			errs = append(errs, fmt.Errorf("physics: %s %v outside [0, 1]", u.name, v))
		}
	}
	if !(p.Decay > 0 && p.Decay <= 1) {
		errs = append(errs, fmt.Errorf("physics: decay %v outside (0, 1]", p.Decay))
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"charge", p.Charge},
		{"center_strength", p.CenterStrength},
		{"target_radius", p.TargetRadius},
		{"radial_strength", p.RadialStrength},
		{"jitter", p.Jitter},
		{"collide_padding", p.CollidePadding},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("physics: %s %v is negative", f.name, f.v))
		}
	}
	if p.CollisionPasses < 1 {
		errs = append(errs, fmt.Errorf("physics: collision_passes %d must be at least 1", p.CollisionPasses))
	}
	if p.Model == adboard.ForceDrift.String() && (p.Bounds.Width <= 0 || p.Bounds.Height <= 0) {
		errs = append(errs, errors.New("physics: drift model needs positive bounds"))
	}
	return errors.Join(errs...)
}

// Tuning converts the section to the board's physics tuning.
func (p *PhysicsConfig) Tuning() (adboard.PhysicsConfig, error) {
	if err := p.Validate(); err != nil {
		return adboard.PhysicsConfig{}, err
	}
	model, _ := adboard.ParseForceModel(p.Model)
	falloff, _ := adboard.ParseFalloff(p.Falloff)
	return adboard.PhysicsConfig{
		Model:           model,
		Falloff:         falloff,
		Charge:          p.Charge,
		CenterStrength:  p.CenterStrength,
		TargetRadius:    p.TargetRadius,
		RadialStrength:  p.RadialStrength,
		Drift:           adboard.Vec2{X: p.DriftX, Y: p.DriftY},
		Bounds:          adboard.Rect{X: p.Bounds.X, Y: p.Bounds.Y, Width: p.Bounds.Width, Height: p.Bounds.Height},
		WallRestitution: p.WallRestitution,
		Jitter:          p.Jitter,
		CollidePadding:  p.CollidePadding,
		Restitution:     p.Restitution,
		CollisionPasses: p.CollisionPasses,
		Decay:           p.Decay,
		CancelSpin:      p.CancelSpin,
	}, nil
}

// Board converts the file into a board configuration.
func (c *Config) Board() (adboard.Config, error) {
	if err := c.Validate(); err != nil {
		return adboard.Config{}, err
	}
	phys, _ := c.Physics.Tuning()
	recenter, _ := adboard.ParseRecenterMode(c.Camera.Recenter)
	bg, _ := adboard.ParseHexColor(c.Window.Background)

	return adboard.Config{
		Physics: phys,
		Camera: adboard.CameraConfig{
			InitialScale:  c.Camera.InitialScale,
			MinScale:      c.Camera.MinScale,
			MaxScale:      c.Camera.MaxScale,
			ZoomStep:      c.Camera.ZoomStep,
			WheelStep:     c.Camera.WheelStep,
			WheelStepFast: c.Camera.WheelStepFast,
			Recenter:      recenter,
			FollowLerp:    c.Camera.FollowLerp,
		},
		Interaction: adboard.InteractionConfig{
			ClickThreshold: c.Interaction.ClickThreshold,
			ThrowClamp:     c.Interaction.ThrowClamp,
			Inertia:        c.Interaction.Inertia,
			Friction:       c.Interaction.Friction,
			StopThreshold:  c.Interaction.StopThreshold,
		},
		Sizing: adboard.Sizing{
			RadiusBase:   c.Layout.RadiusBase,
			RadiusPerCTR: c.Layout.RadiusPerCTR,
		},
		Width:         float64(c.Window.Width),
		Height:        float64(c.Window.Height),
		TPS:           c.Window.TPS,
		CircleRadius:  c.Layout.CircleRadius,
		Seed:          c.Layout.Seed,
		FocusOnSelect: c.Camera.FocusOnSelect,
		FocusDuration: float32(c.Camera.FocusDuration),
		Background:    bg,
		Debug:         c.Debug.Enabled,
	}, nil
}

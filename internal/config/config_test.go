package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/adboard"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.TPS != 60 {
		t.Errorf("expected tps 60, got %d", cfg.Window.TPS)
	}
	if cfg.Physics.Model != "center" {
		t.Errorf("expected model 'center', got %q", cfg.Physics.Model)
	}
	if cfg.Physics.Charge != 80 || cfg.Physics.Decay != 0.96 {
		t.Errorf("physics = %+v", cfg.Physics)
	}
	if cfg.Camera.Recenter != "origin" {
		t.Errorf("expected recenter 'origin', got %q", cfg.Camera.Recenter)
	}
	if cfg.Layout.CircleRadius != 350 {
		t.Errorf("expected circle radius 350, got %v", cfg.Layout.CircleRadius)
	}
	if !cfg.Audio.Enabled {
		t.Error("default audio should be enabled")
	}
	if cfg.Debug.Enabled {
		t.Error("default debug should be disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestDefaultBoardMatchesPackageDefaults(t *testing.T) {
	got, err := Default().Board()
	if err != nil {
		t.Fatal(err)
	}
	want := adboard.DefaultConfig()
	if got.Physics != want.Physics {
		t.Errorf("physics = %+v, want %+v", got.Physics, want.Physics)
	}
	if got.Camera != want.Camera {
		t.Errorf("camera = %+v, want %+v", got.Camera, want.Camera)
	}
	if got.Interaction != want.Interaction {
		t.Errorf("interaction = %+v, want %+v", got.Interaction, want.Interaction)
	}
	if got.Sizing != want.Sizing || got.CircleRadius != want.CircleRadius || got.TPS != want.TPS {
		t.Errorf("layout mismatch: %+v", got)
	}
	if got.Background != want.Background {
		t.Errorf("background = %+v, want %+v", got.Background, want.Background)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := ConfigDir(); dir != filepath.Join("/tmp/test-xdg", "adboard") {
		t.Errorf("expected /tmp/test-xdg/adboard, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "adboard")
	if dir := ConfigDir(); dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Physics.Model = "radial"
	cfg.Physics.Charge = 120
	cfg.Layout.Seed = 99
	cfg.Interaction.Inertia = false

	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Physics.Model != "radial" || loaded.Physics.Charge != 120 {
		t.Errorf("physics not round-tripped: %+v", loaded.Physics)
	}
	if loaded.Layout.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Layout.Seed)
	}
	if loaded.Interaction.Inertia {
		t.Error("expected inertia false after load")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Physics.Charge != Default().Physics.Charge {
		t.Error("missing file did not yield defaults")
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[physics]
model = "drift"
drift_x = 0.05

[camera]
recenter = "centroid"
follow_lerp = 0.1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.Model != "drift" || cfg.Physics.DriftX != 0.05 {
		t.Errorf("physics = %+v", cfg.Physics)
	}
	if cfg.Physics.Charge != 80 {
		t.Errorf("unset charge = %v, want default 80", cfg.Physics.Charge)
	}
	bc, err := cfg.Board()
	if err != nil {
		t.Fatal(err)
	}
	if bc.Physics.Model != adboard.ForceDrift || bc.Camera.Recenter != adboard.RecenterCentroid {
		t.Errorf("board config = %+v", bc)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[physics]\nchrage = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "physics.chrage") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[physics\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.TPS = 0
	cfg.Window.Background = "#zz"
	cfg.Camera.Recenter = "middle"
	cfg.Physics.Model = "gravity"
	cfg.Physics.Decay = 1.5
	cfg.Physics.Charge = -1
	cfg.Interaction.Friction = 1
	cfg.Audio.Volume = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"tps", "background", "recenter", "force model", "decay", "charge", "friction", "volume",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%v", want, err)
		}
	}
}

func TestValidateDecayRange(t *testing.T) {
	tests := []struct {
		decay   float64
		wantErr bool
	}{
		{0, true},
		{-0.1, true},
		{1.5, true},
		{0.96, false},
		{1, false},
	}
	for _, tt := range tests {
		p := Default().Physics
		p.Decay = tt.decay
		err := p.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("decay %v: err = %v, wantErr %v", tt.decay, err, tt.wantErr)
		}
	}
}

func TestDecodeRejectsZeroDecay(t *testing.T) {
	cfg := Default()
	err := Decode([]byte("[physics]\nmodel = \"drift\"\ncharge = 200\ndecay = 0\n"), cfg)
	if err == nil || !strings.Contains(err.Error(), "decay") {
		t.Errorf("Decode err = %v, want decay error", err)
	}
}

func TestValidateDriftNeedsBounds(t *testing.T) {
	p := Default().Physics
	p.Model = "drift"
	p.Bounds = Bounds{}
	if err := p.Validate(); err == nil {
		t.Error("expected error for drift without bounds")
	}
}

func TestTuning(t *testing.T) {
	p := Default().Physics
	p.Falloff = "inverse_distance"
	p.CancelSpin = false

	tuning, err := p.Tuning()
	if err != nil {
		t.Fatal(err)
	}
	if tuning.Falloff != adboard.FalloffInverseDistance || tuning.CancelSpin {
		t.Errorf("tuning = %+v", tuning)
	}

	p.Falloff = "cubic"
	if _, err := p.Tuning(); err == nil {
		t.Error("expected error for unknown falloff")
	}
}

func TestEnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	if err := EnsureExists(path); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Existing files are left alone.
	if err := os.WriteFile(path, []byte("[window]\ntps = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureExists(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.TPS != 30 {
		t.Errorf("EnsureExists overwrote the file: tps = %d", cfg.Window.TPS)
	}
}

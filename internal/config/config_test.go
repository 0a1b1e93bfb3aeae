package config

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Density != 0.00015 {
		t.Errorf("Density: got %v, want 0.00015", cfg.Density)
	}
	if cfg.Radius.Min != 20 || cfg.Radius.Max != 65 {
		t.Errorf("Radius: got [%v, %v), want [20, 65)", cfg.Radius.Min, cfg.Radius.Max)
	}
	if cfg.Speed != 0.4 {
		t.Errorf("Speed: got %v, want 0.4", cfg.Speed)
	}
	if len(cfg.Panels) != 1 || cfg.Panels[0] != (Panel{W: 1, H: 1}) {
		t.Errorf("Panels: got %+v, want one full panel", cfg.Panels)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestFillColor(t *testing.T) {
	got := Default().FillColor()
	want := color.NRGBA{R: 248, G: 73, B: 76, A: 20}
	if got != want {
		t.Errorf("FillColor: got %v, want %v", got, want)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Density != Density {
		t.Errorf("Density: got %v, want %v", cfg.Density, Density)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bgfield.yaml")
	data := `
density: 0.0003
seed: 42
fill: "#00ff00"
panels:
  - {x: 0, y: 0, w: 0.5, h: 1}
  - {x: 0.5, y: 0, w: 0.5, h: 1}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Density != 0.0003 {
		t.Errorf("Density: got %v, want 0.0003", cfg.Density)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed: got %v, want 42", cfg.Seed)
	}
	if len(cfg.Panels) != 2 {
		t.Errorf("Panels: got %d, want 2", len(cfg.Panels))
	}
	// untouched fields keep their defaults
	if cfg.Radius.Max != RadiusMax {
		t.Errorf("Radius.Max: got %v, want %v", cfg.Radius.Max, RadiusMax)
	}
	if c := cfg.FillColor(); c.G != 255 || c.R != 0 {
		t.Errorf("FillColor: got %v, want green", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() on a missing file: want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative density", func(c *Config) { c.Density = -1 }, "density"},
		{"density above one per pixel", func(c *Config) { c.Density = 2 }, "density"},
		{"nan density", func(c *Config) { c.Density = math.NaN() }, "finite"},
		{"nan speed", func(c *Config) { c.Speed = math.NaN() }, "finite"},
		{"inf speed", func(c *Config) { c.Speed = math.Inf(1) }, "finite"},
		{"nan radius min", func(c *Config) { c.Radius.Min = math.NaN() }, "finite"},
		{"inf radius max", func(c *Config) { c.Radius.Max = math.Inf(1) }, "finite"},
		{"nan alpha", func(c *Config) { c.Alpha = math.NaN() }, "finite"},
		{"nan panel", func(c *Config) { c.Panels = []Panel{{W: math.NaN(), H: 1}} }, "panel 0"},
		{"empty radius", func(c *Config) { c.Radius = Radius{Min: 30, Max: 30} }, "radius"},
		{"alpha above one", func(c *Config) { c.Alpha = 1.5 }, "alpha"},
		{"bad fill", func(c *Config) { c.Fill = "red" }, "fill"},
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"panel overflow", func(c *Config) { c.Panels = []Panel{{X: 0.5, W: 0.6, H: 1}} }, "panel 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate(): want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate(): got %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsNonFinite(t *testing.T) {
	bodies := []string{
		"speed: .nan\n",
		"speed: .inf\n",
		"radius: {min: .nan, max: 65}\n",
	}
	for _, body := range bodies {
		path := filepath.Join(t.TempDir(), "bgfield.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q): want error", body)
		}
	}
}

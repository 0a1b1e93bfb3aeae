package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "bgfield"

	// Field parameters
	Density   = 0.00015
	RadiusMin = 20.0
	RadiusMax = 65.0
	Speed     = 0.4

	// MaxDensity is one particle per pixel.
	MaxDensity = 1.0

	// rgba(248, 73, 76, 0.08)
	FillHex    = "#f8494c"
	FillAlpha  = 0.08
	Background = "#0f1116"

	// Terminal cell geometry in pixels
	CellWidth  = 8
	CellHeight = 16

	// Ticker rate for hosts without a vsync source
	FPS = 60

	// EnvReducedMotion overrides the stored accessibility preference.
	EnvReducedMotion = "BGFIELD_REDUCED_MOTION"
)

// Panel is a fractional rectangle of the host area holding one surface.
type Panel struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type Radius struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Terminal struct {
	CellWidth  int `yaml:"cellWidth"`
	CellHeight int `yaml:"cellHeight"`
}

// Config is the YAML-backed effect configuration shared by every host.
type Config struct {
	Density       float64  `yaml:"density"`
	Radius        Radius   `yaml:"radius"`
	Speed         float64  `yaml:"speed"`
	Fill          string   `yaml:"fill"`
	Alpha         float64  `yaml:"alpha"`
	Background    string   `yaml:"background"`
	Seed          uint64   `yaml:"seed"`
	ReducedMotion bool     `yaml:"reducedMotion"`
	FPS           int      `yaml:"fps"`
	Panels        []Panel  `yaml:"panels"`
	Window        Window   `yaml:"window"`
	Terminal      Terminal `yaml:"terminal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Density:    Density,
		Radius:     Radius{Min: RadiusMin, Max: RadiusMax},
		Speed:      Speed,
		Fill:       FillHex,
		Alpha:      FillAlpha,
		Background: Background,
		FPS:        FPS,
		Panels:     []Panel{{X: 0, Y: 0, W: 1, H: 1}},
		Window:     Window{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		Terminal:   Terminal{CellWidth: CellWidth, CellHeight: CellHeight},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Panels) == 0 {
		cfg.Panels = Default().Panels
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case !finite(c.Density, c.Radius.Min, c.Radius.Max, c.Speed, c.Alpha):
		return errors.New("density, radius, speed and alpha must be finite numbers")
	case c.Density < 0 || c.Density > MaxDensity:
		return fmt.Errorf("density %v outside [0, %v]", c.Density, MaxDensity)
	case c.Radius.Min < 0 || c.Radius.Min >= c.Radius.Max:
		return fmt.Errorf("radius range [%v, %v) is empty", c.Radius.Min, c.Radius.Max)
	case c.Speed < 0:
		return errors.New("speed must be >= 0")
	case c.Alpha < 0 || c.Alpha > 1:
		return fmt.Errorf("alpha %v outside [0, 1]", c.Alpha)
	case c.FPS <= 0:
		return errors.New("fps must be > 0")
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return errors.New("terminal cell size must be positive")
	}
	if _, err := colorful.Hex(c.Fill); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	for i, p := range c.Panels {
		if !finite(p.X, p.Y, p.W, p.H) ||
			p.X < 0 || p.Y < 0 || p.W <= 0 || p.H <= 0 || p.X+p.W > 1 || p.Y+p.H > 1 {
			return fmt.Errorf("panel %d outside the unit square", i)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FillColor is the translucent particle color shared by all particles.
func (c *Config) FillColor() color.NRGBA {
	return hexNRGBA(c.Fill, c.Alpha)
}

// BackgroundColor is the opaque color hosts clear to.
func (c *Config) BackgroundColor() color.NRGBA {
	return hexNRGBA(c.Background, 1)
}

func hexNRGBA(hex string, alpha float64) color.NRGBA {
	col, err := colorful.Hex(hex)
	if err != nil {
		col = colorful.Color{}
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

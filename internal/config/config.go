package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Constellation field
	NodeCount     = 65
	ConnectDist   = 180.0
	MouseRadius   = 220.0
	MaxDPR        = 2.0
	Damping       = 0.995
	WrapMargin    = 20.0
	AccentChance  = 0.2
	MouseStrength = 0.4
)

// Config is the user-editable part of the configuration. Everything that is
// not listed here is a compile-time constant.
type Config struct {
	Window     Window  `yaml:"window"`
	Seed       int64   `yaml:"seed"`
	HUD        bool    `yaml:"hud"`
	Soundtrack string  `yaml:"soundtrack"`
	Log        Log     `yaml:"log"`
	Palette    Palette `yaml:"palette"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Palette holds hex colors ("#rrggbb").
type Palette struct {
	Background string `yaml:"background"`
	Accent     string `yaml:"accent"`
	Neutral    string `yaml:"neutral"`
	Link       string `yaml:"link"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Constellation - wheel/arrows: scroll, S: snapshot, O: soundtrack, H: HUD, Q: quit",
		},
		HUD: true,
		Log: Log{Level: "info"},
		Palette: Palette{
			Background: "#0e0f14",
			Accent:     "#d6336c",
			Neutral:    "#ffffff",
			Link:       "#ffffff",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	fill := func(dst *string, def string) {
		if _, err := ParseHex(*dst); err != nil {
			*dst = def
		}
	}
	fill(&c.Palette.Background, d.Palette.Background)
	fill(&c.Palette.Accent, d.Palette.Accent)
	fill(&c.Palette.Neutral, d.Palette.Neutral)
	fill(&c.Palette.Link, d.Palette.Link)
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid color length %d", len(s))
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for values that already went through Load.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

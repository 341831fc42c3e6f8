package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
	"github.com/san-kum/rodfield/internal/scene"
	"github.com/san-kum/rodfield/internal/schedule"
)

const (
	DefaultUnit          = "m"
	DefaultChargeDensity = 1.0 // μC per displayed unit
	DefaultLength        = 2.0
	DefaultDistance      = 1.0
	DefaultWidth         = 960
	DefaultHeight        = 900
	DefaultTheme         = "classic"
)

// Config holds the rod geometry in displayed units, the container the
// diagram is laid out in and the animation timings.
type Config struct {
	Unit          string          `yaml:"unit" toml:"unit"`
	ChargeDensity float64         `yaml:"charge_density" toml:"charge_density"`
	Length        float64         `yaml:"length" toml:"length"`
	Distance      float64         `yaml:"distance" toml:"distance"`
	Container     ContainerConfig `yaml:"container" toml:"container"`
	DebounceMs    int             `yaml:"debounce_ms" toml:"debounce_ms"`
	Animation     AnimationConfig `yaml:"animation" toml:"animation"`
	Theme         string          `yaml:"theme" toml:"theme"`
}

type ContainerConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

type AnimationConfig struct {
	AxesMs  int  `yaml:"axes_ms" toml:"axes_ms"`
	RodMs   int  `yaml:"rod_ms" toml:"rod_ms"`
	LinesMs int  `yaml:"lines_ms" toml:"lines_ms"`
	PointMs int  `yaml:"point_ms" toml:"point_ms"`
	Stagger bool `yaml:"stagger" toml:"stagger"`
}

func DefaultConfig() *Config {
	c := scene.DefaultChoreography()
	return &Config{
		Unit:          DefaultUnit,
		ChargeDensity: DefaultChargeDensity,
		Length:        DefaultLength,
		Distance:      DefaultDistance,
		Container: ContainerConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		DebounceMs: int(schedule.DefaultDelay / time.Millisecond),
		Animation: AnimationConfig{
			AxesMs:  int(c.Axes / time.Millisecond),
			RodMs:   int(c.Rod / time.Millisecond),
			LinesMs: int(c.Lines / time.Millisecond),
			PointMs: int(c.Point / time.Millisecond),
			Stagger: c.Stagger,
		},
		Theme: DefaultTheme,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Decode(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads a config file over cfg, keeping values the file leaves out.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func Decode(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the displayed values into the internal model. Values
// go through the same parsing and clamping as interactive edits.
func (c *Config) Parameters() (field.Parameters, error) {
	p := field.DefaultParameters()
	if c.Unit != "" {
		next, err := p.Apply(field.FieldUnit, c.Unit)
		if err != nil {
			return p, err
		}
		p = next
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{field.FieldChargeDensity, c.ChargeDensity},
		{field.FieldLength, c.Length},
		{field.FieldDistance, c.Distance},
	} {
		next, err := p.Set(f.name, f.value)
		if err != nil {
			return p, err
		}
		p = next
	}
	return p, nil
}

// SetParameters stores p in displayed units.
func (c *Config) SetParameters(p field.Parameters) {
	c.Unit = p.Unit.Suffix()
	c.ChargeDensity, _ = p.Display(field.FieldChargeDensity)
	c.Length, _ = p.Display(field.FieldLength)
	c.Distance, _ = p.Display(field.FieldDistance)
}

func (c *Config) Choreography() scene.Choreography {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return scene.Choreography{
		Axes:    ms(c.Animation.AxesMs),
		Rod:     ms(c.Animation.RodMs),
		Lines:   ms(c.Animation.LinesMs),
		Point:   ms(c.Animation.PointMs),
		Stagger: c.Animation.Stagger,
	}
}

// Delay is the debounce window, falling back to the default when unset.
func (c *Config) Delay() time.Duration {
	if c.DebounceMs <= 0 {
		return schedule.DefaultDelay
	}
	return time.Duration(c.DebounceMs) * time.Millisecond
}

func (c *Config) Viewport() layout.Viewport {
	return layout.Viewport{Width: c.Container.Width, Height: c.Container.Height}
}

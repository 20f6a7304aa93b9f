// Package config loads viewer settings from an optional TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/lixenwraith/irbview/gradient"
	"github.com/lixenwraith/irbview/intensity"
)

// EnvPath names the config file when no path is given explicitly
const EnvPath = "IRBVIEW_CONFIG"

// Config is the full settings tree
type Config struct {
	Mapping   Mapping    `toml:"mapping"`
	View      View       `toml:"view"`
	Log       Log        `toml:"log"`
	Gradients []Gradient `toml:"gradients"`
}

// Mapping controls quantization
type Mapping struct {
	Steps         int      `toml:"steps"`
	MinRangeWidth float64  `toml:"min_range_width"`
	Widen         string   `toml:"widen"`
	Min           *float64 `toml:"min"`
	Max           *float64 `toml:"max"`
}

// View holds presentation defaults
type View struct {
	Gradient string  `toml:"gradient"`
	Zoom     float64 `toml:"zoom"`
	Mode     string  `toml:"mode"`
	Status   bool    `toml:"status"`
	Legend   bool    `toml:"legend"`
}

// Log selects the log destination; empty discards output while the screen is active
type Log struct {
	File string `toml:"file"`
}

// Gradient is a user-defined gradient; stop values live in [0, steps]
type Gradient struct {
	Name  string `toml:"name"`
	Stops []Stop `toml:"stops"`
}

// Stop is one "#rrggbb[aa]" color anchor
type Stop struct {
	Value float64 `toml:"value"`
	Color string  `toml:"color"`
}

// Widen policy names
const (
	WidenUpward   = "upward"
	WidenCentered = "centered"
)

// MaxSteps bounds mapping.steps; every frame builds a steps+1 entry table
const MaxSteps = 1 << 16

// Default returns built-in settings
func Default() *Config {
	return &Config{
		Mapping: Mapping{
			Steps:         intensity.DefaultSteps,
			MinRangeWidth: intensity.DefaultMinRangeWidth,
			Widen:         WidenUpward,
		},
		View: View{
			Gradient: gradient.DefaultPreset,
			Zoom:     1.0,
			Mode:     "halfblock",
			Status:   true,
			Legend:   true,
		},
	}
}

// ResolvePath picks the explicit path, then $IRBVIEW_CONFIG, else ""
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvPath)
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result
// Unknown keys are rejected
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and builds every custom gradient once
func (c *Config) Validate() error {
	m := c.Mapping
	if m.Steps < 1 || m.Steps > MaxSteps {
		return fmt.Errorf("mapping.steps: must be in [1, %d], got %d", MaxSteps, m.Steps)
	}
	if m.MinRangeWidth <= 0 {
		return fmt.Errorf("mapping.min_range_width: must be > 0, got %g", m.MinRangeWidth)
	}
	switch strings.ToLower(m.Widen) {
	case WidenCentered, WidenUpward:
	default:
		return fmt.Errorf("mapping.widen: unknown policy %q", m.Widen)
	}
	if err := finite("mapping.min", m.Min); err != nil {
		return err
	}
	if err := finite("mapping.max", m.Max); err != nil {
		return err
	}
	if math.IsNaN(c.View.Zoom) || c.View.Zoom < 0 {
		return fmt.Errorf("view.zoom: must be >= 0, got %g", c.View.Zoom)
	}

	seen := make(map[string]bool, len(c.Gradients))
	for i, g := range c.Gradients {
		name := strings.ToLower(g.Name)
		if name == "" {
			return fmt.Errorf("gradients[%d]: missing name", i)
		}
		if seen[name] {
			return fmt.Errorf("gradients[%d]: duplicate name %q", i, g.Name)
		}
		seen[name] = true
		if _, err := g.build(); err != nil {
			return fmt.Errorf("gradients[%d] %q: %w", i, g.Name, err)
		}
	}

	if _, err := c.Gradient(c.View.Gradient); err != nil {
		return fmt.Errorf("view.gradient: %w", err)
	}
	return nil
}

func finite(key string, v *float64) error {
	if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
		return fmt.Errorf("%s: must be finite, got %g", key, *v)
	}
	return nil
}

func (g Gradient) build() (*gradient.Gradient, error) {
	stops := make([]gradient.Stop, 0, len(g.Stops))
	for _, s := range g.Stops {
		stop, err := gradient.ParseStop(s.Value, s.Color)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return gradient.New(stops)
}

// Mapper returns the configured intensity mapper
func (c *Config) Mapper() intensity.Mapper {
	m := intensity.Mapper{
		Steps:         c.Mapping.Steps,
		MinRangeWidth: c.Mapping.MinRangeWidth,
	}
	if strings.EqualFold(c.Mapping.Widen, WidenCentered) {
		m.Widen = intensity.WidenCentered
	}
	return m
}

// Range returns the configured override, auto when unset
func (c *Config) Range() intensity.Range {
	r := intensity.Auto()
	if c.Mapping.Min != nil {
		r = r.WithMin(*c.Mapping.Min)
	}
	if c.Mapping.Max != nil {
		r = r.WithMax(*c.Mapping.Max)
	}
	return r
}

// Gradient resolves a custom gradient by name, then a preset at the mapping resolution
func (c *Config) Gradient(name string) (*gradient.Gradient, error) {
	for _, g := range c.Gradients {
		if strings.EqualFold(g.Name, name) {
			return g.build()
		}
	}
	return gradient.Preset(name, c.Mapping.Steps)
}

// GradientNames lists presets and custom gradients, sorted and deduplicated
func (c *Config) GradientNames() []string {
	names := gradient.PresetNames()
	for _, g := range c.Gradients {
		names = append(names, strings.ToLower(g.Name))
	}
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

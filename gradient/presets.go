package gradient

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// preset stop positions are unit fractions, scaled to the mapping resolution on use
type presetStop struct {
	pos float64
	hex string
}

var presets = map[string][]presetStop{
	"grey": {
		{0, "#000000"},
		{1, "#ffffff"},
	},
	// Classic thermography palette: black through purple and orange to white
	"iron": {
		{0.00, "#000000"},
		{0.20, "#1f0c48"},
		{0.40, "#8a1c8a"},
		{0.60, "#e0462b"},
		{0.80, "#fbb51c"},
		{1.00, "#ffffff"},
	},
	"rainbow": {
		{0.000, "#00008b"},
		{0.167, "#4169e1"},
		{0.333, "#00ced1"},
		{0.500, "#228b22"},
		{0.667, "#ffd700"},
		{0.833, "#ff4500"},
		{1.000, "#8b0000"},
	},
	"heat": {
		{0.00, "#000000"},
		{0.35, "#8b0000"},
		{0.70, "#ffa500"},
		{1.00, "#ffffe0"},
	},
}

// DefaultPreset is used when no gradient is configured
const DefaultPreset = "iron"

// PresetNames returns the registered preset names, sorted
func PresetNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}

// Preset builds a named gradient spanning [0, steps]
func Preset(name string, steps int) (*Gradient, error) {
	def, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGradient, name)
	}

	stops := make([]Stop, len(def))
	for i, ps := range def {
		s, err := ParseStop(ps.pos*float64(steps), ps.hex)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		stops[i] = s
	}
	return New(stops)
}

// ParseStop builds a stop from a "#rrggbb" or "#rrggbbaa" color string
func ParseStop(value float64, hex string) (Stop, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return Stop{}, err
	}
	return Stop{Value: value, Color: c}, nil
}

// ParseHex parses "#rrggbb" (opaque) or "#rrggbbaa"
func ParseHex(s string) (RGBA8, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return RGBA8{}, fmt.Errorf("color %q: invalid alpha: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA8{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBA8{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseHex panics on malformed input, for literals only
func MustParseHex(s string) RGBA8 {
	c, err := ParseHex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

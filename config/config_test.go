package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/irbview/gradient"
	"github.com/lixenwraith/irbview/intensity"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, intensity.DefaultSteps, cfg.Mapper().Resolution())
	assert.True(t, cfg.Range().IsAuto())
	assert.Equal(t, intensity.WidenUpward, cfg.Mapper().Widen)
}

func TestParseFull(t *testing.T) {
	data := []byte(`
[mapping]
steps = 255
min_range_width = 2.5
widen = "centered"
min = 18.0

[view]
gradient = "Ember"
zoom = 1.5
mode = "background"
status = false

[log]
file = "/tmp/irbview.log"

[[gradients]]
name = "ember"
stops = [
  { value = 0, color = "#000000" },
  { value = 255, color = "#ff4500" },
]
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	m := cfg.Mapper()
	assert.Equal(t, intensity.Mapper{Steps: 255, MinRangeWidth: 2.5, Widen: intensity.WidenCentered}, m)

	r := cfg.Range()
	require.NotNil(t, r.Min)
	assert.Equal(t, 18.0, *r.Min)
	assert.Nil(t, r.Max)

	assert.Equal(t, 1.5, cfg.View.Zoom)
	assert.Equal(t, "background", cfg.View.Mode)
	assert.False(t, cfg.View.Status)
	assert.True(t, cfg.View.Legend, "unset keys keep defaults")
	assert.Equal(t, "/tmp/irbview.log", cfg.Log.File)

	g, err := cfg.Gradient("ember")
	require.NoError(t, err)
	assert.Equal(t, gradient.MustParseHex("#ff4500"), g.Color(255))

	assert.Equal(t, []string{"ember", "grey", "heat", "iron", "rainbow"}, cfg.GradientNames())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "[view]\nzom = 2\n"},
		{"bad toml", "[view\n"},
		{"zero steps", "[mapping]\nsteps = 0\n"},
		{"negative width", "[mapping]\nmin_range_width = -1\n"},
		{"bad widen", "[mapping]\nwiden = \"sideways\"\n"},
		{"negative zoom", "[view]\nzoom = -1\n"},
		{"nan zoom", "[view]\nzoom = nan\n"},
		{"nan min", "[mapping]\nmin = nan\n"},
		{"inf max", "[mapping]\nmax = inf\n"},
		{"negative inf min", "[mapping]\nmin = -inf\n"},
		{"steps too large", "[mapping]\nsteps = 65537\n"},
		{"unknown gradient", "[view]\ngradient = \"nope\"\n"},
		{"single stop", "[[gradients]]\nname = \"x\"\nstops = [{ value = 0, color = \"#000000\" }]\n"},
		{"bad color", "[[gradients]]\nname = \"x\"\nstops = [{ value = 0, color = \"black\" }, { value = 1, color = \"#ffffff\" }]\n"},
		{"missing name", "[[gradients]]\nstops = []\n"},
		{"duplicate", "[[gradients]]\nname = \"a\"\nstops = [{ value = 0, color = \"#000000\" }, { value = 1, color = \"#ffffff\" }]\n[[gradients]]\nname = \"A\"\nstops = [{ value = 0, color = \"#000000\" }, { value = 1, color = \"#ffffff\" }]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestStepsLimit(t *testing.T) {
	cfg, err := Parse([]byte("[mapping]\nsteps = 65536\n"))
	require.NoError(t, err)
	assert.Equal(t, MaxSteps, cfg.Mapper().Resolution())
}

func TestInvalidGradientSurfaces(t *testing.T) {
	_, err := Parse([]byte("[[gradients]]\nname = \"x\"\nstops = [{ value = 0, color = \"#000000\" }]\n"))
	assert.ErrorIs(t, err, gradient.ErrInvalidGradient)

	_, err = Parse([]byte("[view]\ngradient = \"nope\"\n"))
	assert.ErrorIs(t, err, gradient.ErrUnknownGradient)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "irbview.toml")
	require.NoError(t, os.WriteFile(path, []byte("[view]\nzoom = 2.0\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.View.Zoom)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/irbview.toml")
	assert.Equal(t, "/etc/irbview.toml", ResolvePath(""))
	assert.Equal(t, "mine.toml", ResolvePath("mine.toml"))

	t.Setenv(EnvPath, "")
	assert.Equal(t, "", ResolvePath(""))
}

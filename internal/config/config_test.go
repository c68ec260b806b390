package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/layout"
	"github.com/san-kum/latviz/internal/optics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "dba", cfg.Preset)
	assert.Equal(t, layout.DefaultPolicy(), cfg.Layout.Policy)
	assert.Equal(t, 1500, cfg.Layout.TargetWidth)
	assert.Equal(t, 6, cfg.RingPeriods())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latviz.yaml")
	data := `
preset: fodo
superperiod: 2
energy_gev: 1.5
layout:
  padding: 40
  target_width: 1200
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fodo", cfg.Preset)
	assert.Equal(t, 2, cfg.Superperiod)
	assert.Equal(t, 1.5, cfg.EnergyGeV)
	assert.Equal(t, 40, cfg.Layout.Padding)
	assert.Equal(t, layout.DefaultMinWidth, cfg.Layout.MinWidth, "unset keys keep defaults")
	assert.Equal(t, 1200, cfg.Layout.TargetWidth)
	assert.Equal(t, 8, cfg.RingPeriods())
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latviz.toml")
	data := `
preset = "tba"
periods = 4
theme = "dark"

[layout]
min_width = 600
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tba", cfg.Preset)
	assert.Equal(t, 4, cfg.RingPeriods())
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 600, cfg.Layout.MinWidth)
	assert.Equal(t, layout.DefaultPadding, cfg.Layout.Padding)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.yaml", "cfg.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := DefaultConfig()
			cfg.Superperiod = 3
			cfg.Layout.Padding = 12

			require.NoError(t, Save(path, cfg))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: [unclosed"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"unknown preset", func(c *Config) { c.Preset = "nope" }, ErrUnknownPreset},
		{"no source", func(c *Config) { c.Preset = "" }, ErrInvalid},
		{"negative periods", func(c *Config) { c.Periods = -1 }, ErrInvalid},
		{"superperiod too large", func(c *Config) { c.Superperiod = 7 }, ErrInvalid},
		{"zero energy", func(c *Config) { c.EnergyGeV = 0 }, ErrInvalid},
		{"negative padding", func(c *Config) { c.Layout.Padding = -1 }, ErrInvalid},
		{"lattice file skips preset lookup", func(c *Config) { c.Preset = "nope"; c.Lattice = "ring.lat" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("fodo")
	require.NotNil(t, p)
	assert.Len(t, p.Cell, 8)

	p.Cell[0].Length = 99
	assert.NotEqual(t, 99.0, Presets["fodo"].Cell[0].Length, "GetPreset must return a copy")

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"dba", "fodo", "tba"}, ListPresets())
}

func TestPresets_CloseRingAndAreStable(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			p := GetPreset(name)
			ring := lattice.Repeat(p.Cell, p.Periods)

			var angle float64
			for _, e := range ring {
				angle += e.Angle
			}
			assert.InDelta(t, 2*3.141592653589793, angle, 1e-9)

			eng, err := optics.NewLinear(ring, DefaultEnergyGeV)
			require.NoError(t, err)
			for _, pl := range []optics.Plane{optics.Horizontal, optics.Vertical} {
				assert.Greater(t, eng.Tune(pl), 0.0)
			}
		})
	}
}

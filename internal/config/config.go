package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/latviz/internal/layout"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset      = "dba"
	DefaultEnergyGeV   = 3.0
	DefaultTargetWidth = 1500
	DefaultTheme       = "default"
	DefaultLogLevel    = "info"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid value")
)

type Config struct {
	Lattice     string       `yaml:"lattice" toml:"lattice"`
	Preset      string       `yaml:"preset" toml:"preset"`
	Periods     int          `yaml:"periods" toml:"periods"`
	Superperiod int          `yaml:"superperiod" toml:"superperiod"`
	EnergyGeV   float64      `yaml:"energy_gev" toml:"energy_gev"`
	Layout      LayoutConfig `yaml:"layout" toml:"layout"`
	Theme       string       `yaml:"theme" toml:"theme"`
	LogLevel    string       `yaml:"log_level" toml:"log_level"`
}

type LayoutConfig struct {
	layout.Policy `yaml:",inline"`
	TargetWidth   int `yaml:"target_width" toml:"target_width"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:    DefaultPreset,
		EnergyGeV: DefaultEnergyGeV,
		Layout: LayoutConfig{
			Policy:      layout.DefaultPolicy(),
			TargetWidth: DefaultTargetWidth,
		},
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a config file over the defaults. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks ranges that would otherwise surface as layout or optics
// errors much later.
func (c *Config) Validate() error {
	switch {
	case c.Lattice == "" && c.Preset == "":
		return fmt.Errorf("%w: neither lattice nor preset set", ErrInvalid)
	case c.Lattice == "" && GetPreset(c.Preset) == nil:
		return fmt.Errorf("%w %q", ErrUnknownPreset, c.Preset)
	case c.Periods < 0:
		return fmt.Errorf("%w: periods %d", ErrInvalid, c.Periods)
	case c.Superperiod < 0:
		return fmt.Errorf("%w: superperiod %d", ErrInvalid, c.Superperiod)
	case c.Superperiod > c.RingPeriods():
		return fmt.Errorf("%w: superperiod %d exceeds %d periods", ErrInvalid, c.Superperiod, c.RingPeriods())
	case c.EnergyGeV <= 0:
		return fmt.Errorf("%w: energy %g GeV", ErrInvalid, c.EnergyGeV)
	case c.Layout.Padding < 0, c.Layout.MinWidth < 0, c.Layout.TargetWidth < 0:
		return fmt.Errorf("%w: negative layout width", ErrInvalid)
	}
	return nil
}

// RingPeriods resolves the number of cell repetitions. Zero means the
// preset's own count, or a single pass for lattice files.
func (c *Config) RingPeriods() int {
	if c.Periods > 0 {
		return c.Periods
	}
	if c.Lattice == "" {
		if p := GetPreset(c.Preset); p != nil {
			return p.Periods
		}
	}
	return 1
}

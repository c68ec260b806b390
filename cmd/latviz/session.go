package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/san-kum/latviz/internal/config"
	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/latfile"
	"github.com/san-kum/latviz/internal/optics"
	"github.com/san-kum/latviz/internal/resolver"
	"github.com/spf13/cobra"
)

// session is a loaded lattice with its optics and resolver.
type session struct {
	cfg  *config.Config
	name string
	cell []lattice.Element
	ring []lattice.Element
	lat  *lattice.Lattice
	eng  *optics.Linear
	res  *resolver.Resolver
}

// loadConfig reads --config (or the defaults) and applies the flags the
// user set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("lattice") {
		cfg.Lattice = latticePath
	}
	if flags.Changed("preset") {
		cfg.Preset = presetName
		if !flags.Changed("lattice") {
			cfg.Lattice = ""
		}
	}
	if flags.Changed("periods") {
		cfg.Periods = periods
	}
	if flags.Changed("superperiod") {
		cfg.Superperiod = superperiod
	}
	if flags.Changed("energy") {
		cfg.EnergyGeV = energyGeV
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func openSession(cfg *config.Config) (*session, error) {
	s := &session{cfg: cfg}

	if cfg.Lattice != "" {
		f, err := latfile.Load(cfg.Lattice)
		if err != nil {
			return nil, fmt.Errorf("load lattice: %w", err)
		}
		s.name = f.Name
		if s.name == "" {
			s.name = strings.TrimSuffix(filepath.Base(cfg.Lattice), filepath.Ext(cfg.Lattice))
		}
		s.cell = f.Elements
	} else {
		p := config.GetPreset(cfg.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w %q", config.ErrUnknownPreset, cfg.Preset)
		}
		s.name = cfg.Preset
		s.cell = p.Cell
	}

	s.ring = lattice.Repeat(s.cell, cfg.RingPeriods())
	lat, err := lattice.New(s.ring)
	if err != nil {
		return nil, fmt.Errorf("build lattice: %w", err)
	}
	s.lat = lat

	if s.eng, err = optics.NewLinear(s.ring, cfg.EnergyGeV); err != nil {
		return nil, fmt.Errorf("optics: %w", err)
	}
	if s.res, err = resolver.New(lat, s.eng); err != nil {
		return nil, err
	}

	if cfg.Superperiod > 0 {
		start, end := lattice.Superperiod(lat.TotalLength(), cfg.Superperiod, cfg.RingPeriods())
		if err := lat.SetWindow(start, end); err != nil {
			return nil, err
		}
	}
	return s, nil
}

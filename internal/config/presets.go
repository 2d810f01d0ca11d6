package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/splashsim/internal/dynamo"
)

type Preset struct {
	Description string
	apply       func(*Config)
}

var Presets = map[string]Preset{
	"steel": {
		Description: "dense sphere that sinks to the floor",
		apply:       func(c *Config) { c.Params.Mass = 452.4 },
	},
	"wood": {
		Description: "light sphere that floats low in the water",
		apply:       func(c *Config) { c.Params.Mass = 67.9 },
	},
	"beachball": {
		Description: "hollow ball that air drag and buoyancy slow down",
		apply: func(c *Config) {
			c.Params.Mass = 0.5
			c.Params.Radius = 0.25
			c.Params.BuoyancyScale = 1
		},
	},
	"neutral": {
		Description: "water-density sphere that hangs suspended",
		apply:       func(c *Config) { c.Params.Mass = 113.1 },
	},
	"lob": {
		Description: "high, slow throw",
		apply: func(c *Config) {
			c.Params.Angle = 70
			c.Params.Speed = 12
		},
	},
	"flat": {
		Description: "still water without waves or current",
		apply: func(c *Config) {
			c.Waves = []WaveConfig{}
			c.Environment.Current = [2]float64{}
		},
	},
}

// GetPreset returns the defaults with the named preset applied.
func GetPreset(name string) (*Config, error) {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, name); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyPreset layers a preset over an existing config.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownPreset, name)
	}
	p.apply(cfg)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/experiment"
	"github.com/san-kum/splashsim/internal/physics"
	"github.com/san-kum/splashsim/internal/sim"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
	DefaultSeed     = 1
)

type Config struct {
	Params      ParamsConfig      `yaml:"params"`
	Environment EnvironmentConfig `yaml:"environment"`
	Waves       []WaveConfig      `yaml:"waves"`
	Run         RunConfig         `yaml:"run"`
}

type ParamsConfig struct {
	Mass          float64 `yaml:"mass"`
	Radius        float64 `yaml:"radius"`
	Angle         float64 `yaml:"angle"`
	Speed         float64 `yaml:"speed"`
	InitHeight    float64 `yaml:"init_height"`
	DragScale     float64 `yaml:"drag_scale"`
	BuoyancyScale float64 `yaml:"buoyancy_scale"`
}

type EnvironmentConfig struct {
	AirDensity      float64    `yaml:"air_density"`
	WaterDensity    float64    `yaml:"water_density"`
	DragCoefficient float64    `yaml:"drag_coefficient"`
	Current         [2]float64 `yaml:"current,flow"`
	Gravity         float64    `yaml:"gravity"`
	FloorHeight     float64    `yaml:"floor_height"`
}

type WaveConfig struct {
	Amplitude  float64    `yaml:"amplitude"`
	Direction  [2]float64 `yaml:"direction,flow"`
	Wavelength float64    `yaml:"wavelength"`
	Speed      float64    `yaml:"speed"`
}

type RunConfig struct {
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Seed       int64   `yaml:"seed"`
	Integrator string  `yaml:"integrator"`
	Stabilizer string  `yaml:"stabilizer"`
	HistoryCap int     `yaml:"history_cap"`
}

func DefaultConfig() *Config {
	p := sim.DefaultParams()
	env := dynamo.DefaultEnvironment()

	cfg := &Config{
		Params: ParamsConfig{
			Mass:          p.Mass,
			Radius:        p.Radius,
			Angle:         p.AngleDeg,
			Speed:         p.Speed,
			InitHeight:    p.InitHeight,
			DragScale:     p.DragScale,
			BuoyancyScale: p.BuoyancyScale,
		},
		Environment: EnvironmentConfig{
			AirDensity:      env.AirDensity,
			WaterDensity:    env.WaterDensity,
			DragCoefficient: env.DragCoefficient,
			Current:         [2]float64{env.Current[0], env.Current[2]},
			Gravity:         env.Gravity,
			FloorHeight:     env.FloorHeight,
		},
		Run: RunConfig{
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Seed:       DefaultSeed,
			Integrator: experiment.DefaultIntegrator,
			Stabilizer: experiment.DefaultStabilizer,
		},
	}
	for _, w := range physics.DefaultWaveField().Waves {
		cfg.Waves = append(cfg.Waves, WaveConfig{
			Amplitude:  w.Amplitude,
			Direction:  [2]float64{w.Direction[0], w.Direction[1]},
			Wavelength: w.Wavelength,
			Speed:      w.Speed,
		})
	}
	return cfg
}

// Clone returns a copy that shares nothing with c.
func (c *Config) Clone() *Config {
	out := *c
	out.Waves = append([]WaveConfig(nil), c.Waves...)
	return &out
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Overlay(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay decodes YAML over the current values, so fields the document leaves
// out keep theirs, then validates the result.
func (c *Config) Overlay(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return c.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	env := c.Environment
	if env.WaterDensity <= 0 {
		return &dynamo.ParamError{Name: "water_density", Value: env.WaterDensity, Limit: "> 0"}
	}
	if env.AirDensity < 0 {
		return &dynamo.ParamError{Name: "air_density", Value: env.AirDensity, Limit: ">= 0"}
	}
	if env.DragCoefficient < 0 {
		return &dynamo.ParamError{Name: "drag_coefficient", Value: env.DragCoefficient, Limit: ">= 0"}
	}
	if env.FloorHeight >= c.Params.InitHeight {
		return &dynamo.ParamError{Name: "floor_height", Value: env.FloorHeight, Limit: "< init_height"}
	}
	if c.Run.Dt <= 0 || c.Run.Dt > dynamo.MaxStep {
		return &dynamo.ParamError{Name: "dt", Value: c.Run.Dt, Limit: fmt.Sprintf("0..%g", dynamo.MaxStep)}
	}
	if c.Run.Duration <= 0 {
		return &dynamo.ParamError{Name: "duration", Value: c.Run.Duration, Limit: "> 0"}
	}
	return nil
}

func (p ParamsConfig) Validate() error {
	return p.ToParams().Validate()
}

func (p ParamsConfig) ToParams() sim.Params {
	return sim.Params{
		Mass:          p.Mass,
		Radius:        p.Radius,
		AngleDeg:      p.Angle,
		Speed:         p.Speed,
		InitHeight:    p.InitHeight,
		DragScale:     p.DragScale,
		BuoyancyScale: p.BuoyancyScale,
	}
}

func (c *Config) Env() dynamo.Environment {
	e := c.Environment
	return dynamo.Environment{
		AirDensity:      e.AirDensity,
		WaterDensity:    e.WaterDensity,
		DragCoefficient: e.DragCoefficient,
		Current:         dynamo.Vec3{e.Current[0], 0, e.Current[1]},
		Gravity:         e.Gravity,
		FloorHeight:     e.FloorHeight,
	}
}

func (c *Config) WaveField() *physics.WaveField {
	waves := make([]physics.Wave, 0, len(c.Waves))
	for _, w := range c.Waves {
		waves = append(waves, physics.NewWave(w.Amplitude, dynamo.Vec2{w.Direction[0], w.Direction[1]}, w.Wavelength, w.Speed))
	}
	return physics.NewWaveField(waves...)
}

// Experiment builds a headless run description.
func (c *Config) Experiment() experiment.Config {
	return experiment.Config{
		Params:     c.Params.ToParams(),
		Env:        c.Env(),
		Waves:      c.WaveField(),
		Integrator: c.Run.Integrator,
		Stabilizer: c.Run.Stabilizer,
		Dt:         c.Run.Dt,
		Duration:   c.Run.Duration,
		Seed:       c.Run.Seed,
	}
}

// SimOptions returns the options for a live simulation.
func (c *Config) SimOptions(reg *experiment.Registry) ([]sim.Option, error) {
	integ, err := reg.GetIntegrator(c.Run.Integrator)
	if err != nil {
		return nil, err
	}
	stab, err := reg.GetStabilizer(c.Run.Stabilizer)
	if err != nil {
		return nil, err
	}
	return []sim.Option{
		sim.WithEnvironment(c.Env()),
		sim.WithWaves(c.WaveField()),
		sim.WithIntegrator(integ),
		sim.WithStabilizer(stab),
		sim.WithSeed(c.Run.Seed),
		sim.WithHistoryCap(c.Run.HistoryCap),
	}, nil
}

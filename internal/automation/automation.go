package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/splashsim/internal/config"
	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/experiment"
	"github.com/san-kum/splashsim/internal/sim"
)

// Scenario is a scripted sequence of throws.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Throws      []Step `yaml:"throws"`
}

// Step is one throw. Zero or empty fields keep the base config's value.
type Step struct {
	Label      string             `yaml:"label"`
	Preset     string             `yaml:"preset"`
	Params     map[string]float64 `yaml:"params"`
	Duration   float64            `yaml:"duration"`
	Dt         float64            `yaml:"dt"`
	Integrator string             `yaml:"integrator"`
	Stabilizer string             `yaml:"stabilizer"`
}

type StepResult struct {
	Label  string
	Config experiment.Config
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Throws) == 0 {
		return nil, fmt.Errorf("scenario %q has no throws", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the experiment for one step on top of base.
func (s Step) Resolve(base *config.Config) (experiment.Config, error) {
	cfg := base.Clone()
	if s.Preset != "" {
		if err := config.ApplyPreset(cfg, s.Preset); err != nil {
			return experiment.Config{}, err
		}
	}
	if s.Duration > 0 {
		cfg.Run.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Run.Dt = s.Dt
	}
	if s.Integrator != "" {
		cfg.Run.Integrator = s.Integrator
	}
	if s.Stabilizer != "" {
		cfg.Run.Stabilizer = s.Stabilizer
	}

	exp := cfg.Experiment()
	for name, v := range s.Params {
		if err := exp.Params.Set(name, v); err != nil {
			return experiment.Config{}, err
		}
	}
	return exp, nil
}

// RunScenario executes the throws in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, reg *experiment.Registry, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]StepResult, 0, len(scenario.Throws))

	for i, step := range scenario.Throws {
		label := step.Label
		if label == "" {
			label = fmt.Sprintf("throw %d", i+1)
		}
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Throws), "label", label)

		cfg, err := step.Resolve(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(reg, logger, reg.DefaultMetrics(cfg.Env)); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Label: label, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep varies one launch parameter over explicit values.
type ParameterSweep struct {
	Param  string
	Values []float64
}

type SweepResult struct {
	ParamValue float64
	Config     experiment.Config
	Result     *experiment.Result
}

// RunSweep runs one throw per value concurrently. Every value is validated
// before anything runs.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base experiment.Config, reg *experiment.Registry, logger *slog.Logger) ([]SweepResult, error) {
	if len(sweep.Values) == 0 {
		return nil, fmt.Errorf("sweep over %s has no values", sweep.Param)
	}

	cfgs := make([]experiment.Config, len(sweep.Values))
	for i, v := range sweep.Values {
		cfgs[i] = base
		if err := cfgs[i].Params.Set(sweep.Param, v); err != nil {
			return nil, err
		}
	}

	runs, err := experiment.NewEnsemble(reg, logger).Run(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{ParamValue: sweep.Values[i], Config: cfgs[i], Result: r}
	}
	return results, nil
}

// MonteCarloConfig jitters the launch angle and speed uniformly around the
// base throw to estimate where the body lands.
type MonteCarloConfig struct {
	Base        experiment.Config
	AngleJitter float64
	SpeedJitter float64
	Trials      int
	Seed        int64
}

type MonteCarloResult struct {
	TrialID    int
	Params     sim.Params
	EntryRange float64
	Entered    bool
	Final      dynamo.Phase
}

// Dispersion summarises the entry points of a Monte Carlo batch.
type Dispersion struct {
	Trials  []MonteCarloResult
	Entered int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, reg *experiment.Registry, logger *slog.Logger) (*Dispersion, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.Trials)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	cfgs := make([]experiment.Config, cfg.Trials)
	for i := range cfgs {
		c := cfg.Base
		c.Params.AngleDeg = dynamo.Clamp(c.Params.AngleDeg+(rng.Float64()-0.5)*2*cfg.AngleJitter, 0, 90)
		c.Params.Speed = math.Max(0, c.Params.Speed+(rng.Float64()-0.5)*2*cfg.SpeedJitter)
		c.Seed = cfg.Base.Seed + int64(i)
		cfgs[i] = c
	}

	runs, err := experiment.NewEnsemble(reg, logger).Run(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	d := &Dispersion{Trials: make([]MonteCarloResult, len(runs)), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum, sumSq float64
	for i, r := range runs {
		entered := r.EntryTime >= 0
		x := r.Metrics["entry_range"]
		d.Trials[i] = MonteCarloResult{
			TrialID:    i,
			Params:     cfgs[i].Params,
			EntryRange: x,
			Entered:    entered,
			Final:      r.Phase,
		}
		if !entered {
			continue
		}
		d.Entered++
		sum += x
		sumSq += x * x
		d.Min = math.Min(d.Min, x)
		d.Max = math.Max(d.Max, x)
	}

	if d.Entered > 0 {
		n := float64(d.Entered)
		d.Mean = sum / n
		d.StdDev = math.Sqrt(math.Max(0, sumSq/n-d.Mean*d.Mean))
	} else {
		d.Min, d.Max = 0, 0
	}
	return d, nil
}

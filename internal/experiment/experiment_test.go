package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/physics"
	"github.com/san-kum/splashsim/internal/sim"
)

func calmConfig(p sim.Params) Config {
	env := dynamo.DefaultEnvironment()
	env.Current = dynamo.Vec3{}
	return Config{
		Params:   p,
		Env:      env,
		Waves:    physics.NewWaveField(),
		Dt:       1.0 / 60,
		Duration: 8,
		Seed:     1,
	}
}

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()

	for _, name := range r.ListIntegrators() {
		integ, err := r.GetIntegrator(name)
		if err != nil {
			t.Fatalf("integrator %s: %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("expected %s, got %s", name, integ.Name())
		}
	}
	for _, name := range r.ListStabilizers() {
		st, err := r.GetStabilizer(name)
		if err != nil {
			t.Fatalf("stabilizer %s: %v", name, err)
		}
		if st.Name() != name {
			t.Errorf("expected %s, got %s", name, st.Name())
		}
	}

	if integ, _ := r.GetIntegrator(""); integ.Name() != DefaultIntegrator {
		t.Errorf("expected default integrator, got %s", integ.Name())
	}
	if _, err := r.GetIntegrator("rk4"); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
	if _, err := r.GetStabilizer("magic"); !errors.Is(err, dynamo.ErrUnknownStabilizer) {
		t.Errorf("expected ErrUnknownStabilizer, got %v", err)
	}
}

func TestSetupValidates(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"large dt", func(c *Config) { c.Dt = 0.5 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"bad mass", func(c *Config) { c.Params.Mass = -1 }},
		{"bad integrator", func(c *Config) { c.Integrator = "rk4" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := calmConfig(sim.DefaultParams())
			tt.mutate(&cfg)
			if err := New(cfg).Setup(r, nil, nil); err == nil {
				t.Error("expected setup error")
			}
		})
	}
}

func TestRunLightBody(t *testing.T) {
	p := sim.DefaultParams()
	p.Mass = 50
	p.AngleDeg = 90
	p.Speed = 5

	r := NewRegistry()
	cfg := calmConfig(p)
	exp := New(cfg)
	if err := exp.Setup(r, nil, r.DefaultMetrics(cfg.Env)); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Steps != 480 || len(result.Heights) != 480 {
		t.Errorf("expected 480 steps, got %d", result.Steps)
	}
	if result.EntryTime <= 0 {
		t.Errorf("expected the body to reach the water, got entry %f", result.EntryTime)
	}
	if result.Regime != dynamo.RegimeFloating {
		t.Errorf("expected floating, got %s", result.Regime)
	}
	if got := result.Metrics["splash_count"]; got != 1 {
		t.Errorf("expected 1 splash, got %f", got)
	}
	if st := result.Metrics["settle_time"]; st <= result.EntryTime || st > 6 {
		t.Errorf("expected settling within a few seconds of entry, got %f", st)
	}
	if result.Metrics["peak_speed"] < 5 {
		t.Errorf("expected peak speed at least the launch speed, got %f", result.Metrics["peak_speed"])
	}
}

func TestRunCancelled(t *testing.T) {
	r := NewRegistry()
	exp := New(calmConfig(sim.DefaultParams()))
	if err := exp.Setup(r, nil, nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := exp.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Steps != 0 {
		t.Error("expected an empty partial result")
	}
}

func TestRunWithoutSetup(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
}

func TestEnsemble(t *testing.T) {
	r := NewRegistry()
	masses := []float64{20, 113.1, 452.4}
	cfgs := make([]Config, len(masses))
	for i, m := range masses {
		p := sim.DefaultParams()
		p.Mass = m
		cfgs[i] = calmConfig(p)
		cfgs[i].Duration = 5
	}

	results, err := NewEnsemble(r, nil).Run(context.Background(), cfgs)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != len(masses) {
		t.Fatalf("expected %d results, got %d", len(masses), len(results))
	}
	for i, res := range results {
		if res.Final.Mass != masses[i] {
			t.Errorf("expected results in input order, got mass %f at %d", res.Final.Mass, i)
		}
	}
	if results[2].Final.Position[1] >= results[0].Final.Position[1] {
		t.Error("expected the dense body to end deeper than the light one")
	}
}

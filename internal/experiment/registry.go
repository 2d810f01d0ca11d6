package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/integrators"
	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/sim"
)

const (
	DefaultIntegrator = "semi_implicit_euler"
	DefaultStabilizer = "damped"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	stabilizers map[string]func() sim.Stabilizer
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		stabilizers: make(map[string]func() sim.Stabilizer),
	}

	r.integrators["semi_implicit_euler"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	r.stabilizers["damped"] = func() sim.Stabilizer { return sim.NewDampedStabilizer() }
	r.stabilizers["nudge"] = func() sim.Stabilizer { return sim.NewNudgeStabilizer() }

	return r
}

// GetIntegrator returns a new integrator. An empty name selects the default.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = DefaultIntegrator
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// GetStabilizer returns a new stabilizer. An empty name selects the default.
func (r *Registry) GetStabilizer(name string) (sim.Stabilizer, error) {
	if name == "" {
		name = DefaultStabilizer
	}
	fn, ok := r.stabilizers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownStabilizer, name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListStabilizers() []string {
	names := make([]string, 0, len(r.stabilizers))
	for name := range r.stabilizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(env dynamo.Environment) []dynamo.Metric {
	return metrics.Standard(env)
}

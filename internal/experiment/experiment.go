package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/splashsim/internal/analysis"
	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/physics"
	"github.com/san-kum/splashsim/internal/sim"
)

// Config describes one headless throw.
type Config struct {
	Params     sim.Params
	Env        dynamo.Environment
	Waves      *physics.WaveField
	Integrator string
	Stabilizer string
	Dt         float64
	Duration   float64
	Seed       int64
}

type Result struct {
	Times   []float64
	Heights []float64
	Metrics map[string]float64
	Final   dynamo.Body
	Phase   dynamo.Phase
	Regime  dynamo.Regime
	Steps   int

	// EntryTime is the time of the first splash, or -1 when the body never
	// reached the water.
	EntryTime float64
	// BobFrequency is the dominant frequency of the height trace after entry,
	// zero when it could not be measured.
	BobFrequency float64
	Trace        *analysis.PhaseTrace
}

type Experiment struct {
	cfg   Config
	sim   *sim.Simulation
	trace *analysis.PhaseTrace
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (c Config) validate() error {
	if c.Dt <= 0 || c.Dt > dynamo.MaxStep {
		return fmt.Errorf("dt must be in (0, %g], got %g", dynamo.MaxStep, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	return c.Params.Validate()
}

// Setup builds the simulation from registry names and attaches metrics.
func (e *Experiment) Setup(reg *Registry, logger *slog.Logger, metrics []dynamo.Metric) error {
	if err := e.cfg.validate(); err != nil {
		return err
	}
	integ, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	stab, err := reg.GetStabilizer(e.cfg.Stabilizer)
	if err != nil {
		return err
	}

	env := e.cfg.Env
	if env == (dynamo.Environment{}) {
		env = dynamo.DefaultEnvironment()
	}

	s, err := sim.New(e.cfg.Params,
		sim.WithEnvironment(env),
		sim.WithWaves(e.cfg.Waves),
		sim.WithIntegrator(integ),
		sim.WithStabilizer(stab),
		sim.WithSeed(e.cfg.Seed),
		sim.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		m.Reset()
		s.AddMetric(m)
	}

	e.trace = analysis.NewPhaseTrace(0)
	s.AddObserver(e.trace)
	e.sim = s
	return nil
}

// Run throws the body and ticks with the fixed step until the duration
// elapses or ctx is cancelled. A cancelled run returns the partial result.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sim == nil {
		return nil, errors.New("experiment not setup")
	}

	dt := e.cfg.Dt
	steps := int(math.Round(e.cfg.Duration / dt))
	result := &Result{
		Times:     make([]float64, 0, steps),
		Heights:   make([]float64, 0, steps),
		EntryTime: -1,
		Trace:     e.trace,
	}

	e.sim.Enqueue(sim.Throw{})
	var runErr error
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		snap := e.sim.Tick(dt)
		if !e.sim.State().Thrown {
			runErr = fmt.Errorf("step %d at t=%.3f: %w", i, snap.Time, dynamo.ErrInvalidState)
			break
		}
		if snap.Splash && result.EntryTime < 0 {
			result.EntryTime = snap.Time
		}
		result.Times = append(result.Times, snap.Time)
		result.Heights = append(result.Heights, snap.Body.Position[1])
		result.Steps++
	}

	st := e.sim.State()
	result.Final = e.sim.Body()
	result.Phase = st.Phase
	result.Regime = st.Regime
	result.Metrics = e.sim.Metrics()

	if result.EntryTime >= 0 {
		var wet []float64
		for _, p := range e.trace.Since(result.EntryTime) {
			wet = append(wet, p.Y)
		}
		if hz, err := analysis.DominantFrequency(wet, dt); err == nil {
			result.BobFrequency = hz
		}
	}
	return result, runErr
}

// Simulation returns the underlying simulation for adding observers.
func (e *Experiment) Simulation() *sim.Simulation {
	return e.sim
}

package sim

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/effects"
	"github.com/san-kum/splashsim/internal/integrators"
	"github.com/san-kum/splashsim/internal/physics"
	"github.com/san-kum/splashsim/internal/trajectory"
)

const (
	FloorRestitution    = 0.3
	FloorFriction       = 0.8
	RestSpeedSq         = 0.01
	SandImpactThreshold = 1.5
	SplashLift          = 0.01
)

// Simulation owns the body, its path and effects, and the command queue. Tick
// and every accessor run on one goroutine; only Enqueue may be called from
// elsewhere.
type Simulation struct {
	env         dynamo.Environment
	waves       *physics.WaveField
	forces      *physics.ForceModel
	integrator  dynamo.Integrator
	stabilizer  Stabilizer
	predictor   *trajectory.Predictor
	history     *trajectory.History
	effects     *effects.Manager
	log         *slog.Logger
	seed        int64
	historyCap  int
	defaults    Params
	params      Params
	body        dynamo.Body
	state       State
	lastForces  physics.Forces
	lastSurface float64

	prediction *trajectory.Prediction
	dirty      bool

	mu    sync.Mutex
	queue []Command

	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

// Option configures a Simulation at construction time.
type Option func(*Simulation)

func WithEnvironment(env dynamo.Environment) Option {
	return func(s *Simulation) { s.env = env }
}

func WithWaves(w *physics.WaveField) Option {
	return func(s *Simulation) {
		if w != nil {
			s.waves = w
		}
	}
}

func WithIntegrator(i dynamo.Integrator) Option {
	return func(s *Simulation) {
		if i != nil {
			s.integrator = i
		}
	}
}

func WithStabilizer(st Stabilizer) Option {
	return func(s *Simulation) {
		if st != nil {
			s.stabilizer = st
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSeed fixes the effect randomness so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.seed = seed }
}

func WithHistoryCap(n int) Option {
	return func(s *Simulation) { s.historyCap = n }
}

// WithDefaults sets the values ResetParam restores.
func WithDefaults(p Params) Option {
	return func(s *Simulation) { s.defaults = p }
}

// New builds an idle simulation holding the body at the launch height.
func New(p Params, opts ...Option) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		env:        dynamo.DefaultEnvironment(),
		waves:      physics.DefaultWaveField(),
		integrator: integrators.NewSemiImplicitEuler(),
		stabilizer: NewDampedStabilizer(),
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		historyCap: trajectory.DefaultHistoryCap,
		defaults:   DefaultParams(),
		params:     p,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.forces = physics.NewForceModel(s.env)
	s.forces.DragScale = p.DragScale
	s.forces.BuoyancyScale = p.BuoyancyScale
	s.predictor = trajectory.NewPredictor(s.env)
	s.history = trajectory.NewHistory(s.historyCap)
	s.effects = effects.NewManager(s.waves, s.env, s.seed)

	s.placeAtLaunch()
	s.dirty = true
	return s, nil
}

// Metrics are reset on every throw so they describe the current one.
func (s *Simulation) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Enqueue schedules commands for the next tick. Safe for concurrent use.
func (s *Simulation) Enqueue(cmds ...Command) {
	s.mu.Lock()
	s.queue = append(s.queue, cmds...)
	s.mu.Unlock()
}

// Tick advances one frame. Commands are applied first so a reset is never
// observed half done.
func (s *Simulation) Tick(frameDelta float64) dynamo.Snapshot {
	s.drain()

	// Effects run on the frame clock so they still expire while the body
	// is held idle.
	step := dynamo.ClampStep(frameDelta, dynamo.MaxStep)
	dt := step
	if !s.state.Thrown {
		dt = 0
	}
	s.state.Time += dt

	if s.dirty && !s.state.Thrown {
		pred := s.predictor.Predict(s.params.Launch())
		s.prediction = &pred
		s.dirty = false
	}

	snap := dynamo.Snapshot{Time: s.state.Time, Dt: dt}
	if dt > 0 {
		snap.Splash, snap.FloorImpact = s.integrate(dt)
		if s.state.Thrown && s.history.Record(s.body.Position, s.body.Velocity) {
			s.state.LastRecorded = s.body.Position
		}
	}
	s.effects.Advance(step, s.state.Time)

	snap.Body = s.body
	snap.Phase = s.state.Phase
	snap.Regime = s.state.Regime
	snap.Surface = s.lastSurface
	snap.Submerged = s.lastForces.Submersion.Fraction

	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnTick(snap)
	}
	return snap
}

func (s *Simulation) drain() {
	s.mu.Lock()
	cmds := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, c := range cmds {
		c.apply(s)
	}
}

// integrate runs one physics step and reports the events it fired.
func (s *Simulation) integrate(dt float64) (splash, floorHit bool) {
	b := &s.body
	prev := *b
	prevPhase := s.state.Phase

	surface := s.waves.HeightAt(b.Position[0], b.Position[2], s.state.Time)
	inWater := b.Bottom() <= surface

	regime := dynamo.RegimeNone
	if inWater {
		regime = dynamo.ClassifyRegime(b.Density(), s.env.WaterDensity)
	}

	if inWater && !s.state.WasInWater {
		hit := dynamo.Vec3{b.Position[0], surface + SplashLift, b.Position[2]}
		impact := math.Max(0, -b.Velocity[1])
		s.effects.SpawnSplash(hit, impact, b.Radius, b.Mass)
		s.state.Splashes++
		splash = true
		s.log.Debug("splash", "t", s.state.Time, "x", hit[0], "impact_speed", impact)
	}

	f := s.forces.Net(b, surface)
	acc := f.Total.Mul(1 / math.Max(b.Mass, dynamo.MinVolume))
	s.integrator.Step(b, acc, dt)

	limit := s.env.FloorHeight + b.Radius
	if b.Position[1] < limit {
		impact := -b.Velocity[1]
		b.Position[1] = limit
		b.Velocity[1] *= -FloorRestitution
		b.Velocity[0] *= FloorFriction
		if impact > SandImpactThreshold {
			s.effects.SpawnSandCloud(dynamo.Vec3{b.Position[0], s.env.FloorHeight, b.Position[2]}, impact, b.Radius)
			floorHit = true
			s.log.Debug("floor impact", "t", s.state.Time, "impact_speed", impact)
		}
	}

	resting := false
	if b.Position[1] == limit && b.Velocity.Dot(b.Velocity) < RestSpeedSq {
		b.Velocity[0] = 0
		b.Velocity[2] = 0
		resting = true
	}

	s.stabilizer.Stabilize(b, Equilibrium{
		Regime:  regime,
		InWater: inWater,
		Force:   f.Total,
		Accel:   acc,
		Dt:      dt,
	})

	b.Position[2] = 0
	b.Velocity[2] = 0

	if !b.IsValid() {
		*b = prev
		s.state.Thrown = false
		s.state.Phase = dynamo.PhaseIdle
		s.state.Regime = dynamo.RegimeNone
		s.dirty = true
		s.log.Warn("non-finite body state, returning to idle", "t", s.state.Time)
		return splash, floorHit
	}

	switch {
	case resting:
		s.state.Phase = dynamo.PhaseResting
	case inWater:
		s.state.Phase = dynamo.PhaseInWater
	default:
		s.state.Phase = dynamo.PhaseAirborne
	}
	s.state.Regime = regime
	s.state.WasInWater = inWater
	s.state.Steps++
	s.lastForces = f
	s.lastSurface = surface

	if s.state.Phase != prevPhase {
		s.log.Debug("phase", "t", s.state.Time, "from", prevPhase, "to", s.state.Phase, "regime", regime)
	}
	return splash, floorHit
}

func (s *Simulation) paramChanged(name string) {
	p := s.params
	switch name {
	case ParamMass:
		s.body.Mass = p.Mass
	case ParamRadius:
		s.body.Radius = p.Radius
	case ParamDragScale:
		s.forces.DragScale = p.DragScale
	case ParamBuoyancyScale:
		s.forces.BuoyancyScale = p.BuoyancyScale
	case ParamInitHeight:
		if !s.state.Thrown {
			s.placeAtLaunch()
		}
	}
	s.dirty = true
}

func (s *Simulation) throw() {
	s.placeAtLaunch()
	s.body.Velocity = s.params.Launch().Velocity()
	s.state.Thrown = true
	s.state.Phase = dynamo.PhaseAirborne
	s.prediction = nil
	for _, m := range s.metrics {
		m.Reset()
	}
	s.log.Debug("throw", "angle", s.params.AngleDeg, "speed", s.params.Speed, "mass", s.params.Mass, "radius", s.params.Radius)
}

func (s *Simulation) reset() {
	s.placeAtLaunch()
	s.effects.Clear()
	s.dirty = true
	s.log.Debug("reset")
}

// placeAtLaunch puts a still body at the launch point and clears the run.
func (s *Simulation) placeAtLaunch() {
	pos := dynamo.Vec3{0, s.params.InitHeight, 0}
	s.body = dynamo.Body{Position: pos, Mass: s.params.Mass, Radius: s.params.Radius}
	s.history.Reset(pos)
	s.lastForces = physics.Forces{}
	s.lastSurface = s.waves.HeightAt(0, 0, s.state.Time)
	s.state = State{Time: s.state.Time, LastRecorded: pos, Phase: dynamo.PhaseIdle}
}

func (s *Simulation) Body() dynamo.Body               { return s.body }
func (s *Simulation) State() State                    { return s.state }
func (s *Simulation) Params() Params                  { return s.params }
func (s *Simulation) Environment() dynamo.Environment { return s.env }
func (s *Simulation) Waves() *physics.WaveField       { return s.waves }
func (s *Simulation) History() *trajectory.History    { return s.history }
func (s *Simulation) Effects() *effects.Manager       { return s.effects }
func (s *Simulation) Forces() physics.Forces          { return s.lastForces }
func (s *Simulation) Integrator() dynamo.Integrator   { return s.integrator }
func (s *Simulation) Stabilizer() Stabilizer          { return s.stabilizer }

// Prediction returns the previewed trajectory, or nil while the body is in
// flight.
func (s *Simulation) Prediction() *trajectory.Prediction {
	if s.state.Thrown {
		return nil
	}
	return s.prediction
}

// Metrics returns the current value of every registered metric.
func (s *Simulation) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

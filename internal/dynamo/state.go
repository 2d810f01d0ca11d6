package dynamo

// Phase is the coarse state of the thrown body.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAirborne
	PhaseInWater
	PhaseResting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAirborne:
		return "airborne"
	case PhaseInWater:
		return "in_water"
	case PhaseResting:
		return "resting"
	}
	return "unknown"
}

// Regime is the in-water sub-state derived from density with a ±1% band.
type Regime int

const (
	RegimeNone Regime = iota
	RegimeSinking
	RegimeFloating
	RegimeSuspended
)

func (r Regime) String() string {
	switch r {
	case RegimeSinking:
		return "sinking"
	case RegimeFloating:
		return "floating"
	case RegimeSuspended:
		return "suspended"
	}
	return "none"
}

func ClassifyRegime(density, waterDensity float64) Regime {
	switch {
	case density > waterDensity*1.01:
		return RegimeSinking
	case density < waterDensity*0.99:
		return RegimeFloating
	default:
		return RegimeSuspended
	}
}

// DensityClass is the display classification with a ±3% band.
type DensityClass int

const (
	ClassFloat DensityClass = iota
	ClassNeutral
	ClassSink
)

func (c DensityClass) String() string {
	switch c {
	case ClassFloat:
		return "float"
	case ClassSink:
		return "sink"
	}
	return "neutral"
}

// Color is the RGB hex used by renderers for the class.
func (c DensityClass) Color() string {
	switch c {
	case ClassFloat:
		return "#00ff88"
	case ClassSink:
		return "#ff5555"
	}
	return "#ffee66"
}

func ClassifyDensity(density, waterDensity float64) DensityClass {
	if density < waterDensity*0.97 {
		return ClassFloat
	}
	if density > waterDensity*1.03 {
		return ClassSink
	}
	return ClassNeutral
}

// Snapshot is the read-only per-tick view handed to observers.
type Snapshot struct {
	Time        float64
	Dt          float64
	Body        Body
	Phase       Phase
	Regime      Regime
	Surface     float64
	Submerged   float64
	Splash      bool
	FloorImpact bool
}

type Observer interface {
	OnTick(s Snapshot)
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Integrator advances a body by dt under a constant acceleration.
type Integrator interface {
	Name() string
	Step(b *Body, acc Vec3, dt float64)
}

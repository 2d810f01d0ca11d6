package sim

import "github.com/san-kum/splashsim/internal/dynamo"

// Readouts are the derived values shown next to the controls.
type Readouts struct {
	Density              float64
	Class                dynamo.DensityClass
	BallisticCoefficient float64
	Speed                float64
	Status               string
	Phase                dynamo.Phase
	Regime               dynamo.Regime
	Time                 float64
}

func (s *Simulation) Readouts() Readouts {
	density := s.params.Density()
	return Readouts{
		Density:              density,
		Class:                dynamo.ClassifyDensity(density, s.env.WaterDensity),
		BallisticCoefficient: dynamo.BallisticCoefficient(s.params.Mass, s.params.Radius, s.env.DragCoefficient),
		Speed:                s.body.Speed(),
		Status:               Status(s.state),
		Phase:                s.state.Phase,
		Regime:               s.state.Regime,
		Time:                 s.state.Time,
	}
}

// Status is the one-word description of a run state.
func Status(st State) string {
	if !st.Thrown {
		return "idle"
	}
	switch st.Phase {
	case dynamo.PhaseResting:
		return "resting"
	case dynamo.PhaseInWater:
		switch st.Regime {
		case dynamo.RegimeSinking:
			return "sinking"
		case dynamo.RegimeFloating:
			return "floating"
		}
		return "suspended"
	}
	if st.Steps == 0 {
		return "thrown"
	}
	return "in air"
}

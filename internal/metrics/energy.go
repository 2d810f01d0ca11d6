package metrics

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// mechanical returns kinetic plus potential energy measured from the floor.
func mechanical(b dynamo.Body, env dynamo.Environment) float64 {
	v := b.Velocity
	ke := 0.5 * b.Mass * v.Dot(v)
	pe := b.Mass * math.Abs(env.Gravity) * (b.Position[1] - env.FloorHeight)
	return ke + pe
}

// Energy is the mean mechanical energy over every simulated tick.
type Energy struct {
	name        string
	env         dynamo.Environment
	samples     int
	totalEnergy float64
}

func NewEnergy(env dynamo.Environment) *Energy {
	return &Energy{
		name: "energy",
		env:  env,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s dynamo.Snapshot) {
	if s.Dt <= 0 {
		return
	}
	e.totalEnergy += mechanical(s.Body, e.env)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyLoss is the largest fraction of the initial mechanical energy that
// drag and floor contact have removed.
type EnergyLoss struct {
	name          string
	env           dynamo.Environment
	initialEnergy float64
	maxLoss       float64
	samples       int
}

func NewEnergyLoss(env dynamo.Environment) *EnergyLoss {
	return &EnergyLoss{
		name: "energy_loss",
		env:  env,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s dynamo.Snapshot) {
	if s.Dt <= 0 {
		return
	}
	energy := mechanical(s.Body, e.env)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		loss := (e.initialEnergy - energy) / math.Abs(e.initialEnergy)
		e.maxLoss = math.Max(e.maxLoss, loss)
	}
}

func (e *EnergyLoss) Value() float64 {
	return e.maxLoss
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.maxLoss = 0
	e.samples = 0
}

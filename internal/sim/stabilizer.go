package sim

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// Equilibrium carries what a stabilizer needs about the step just taken.
type Equilibrium struct {
	Regime  dynamo.Regime
	InWater bool
	Force   dynamo.Vec3
	Accel   dynamo.Vec3
	Dt      float64
}

// Stabilizer settles a floating body that would otherwise bob indefinitely
// under quadratic drag.
type Stabilizer interface {
	Name() string
	Stabilize(b *dynamo.Body, eq Equilibrium)
}

// DampedStabilizer decays vertical velocity while floating and nudges the body
// upward while the net force still points up.
type DampedStabilizer struct {
	// Decay is the per-frame velocity factor at 60 fps.
	Decay    float64
	Gain     float64
	MaxNudge float64
}

func NewDampedStabilizer() *DampedStabilizer {
	return &DampedStabilizer{Decay: 0.92, Gain: 50, MaxNudge: 0.01}
}

func (d *DampedStabilizer) Name() string { return "damped" }

func (d *DampedStabilizer) Stabilize(b *dynamo.Body, eq Equilibrium) {
	if !eq.InWater || eq.Regime != dynamo.RegimeFloating {
		return
	}
	b.Velocity[1] *= math.Pow(d.Decay, eq.Dt*60)
	if fy := eq.Force[1]; fy > 0 && b.Mass > 0 {
		b.Position[1] += dynamo.Clamp(fy/b.Mass/d.Gain*eq.Dt, -d.MaxNudge, d.MaxNudge)
	}
}

// NudgeStabilizer decays vertical velocity while floating, then freezes it
// once nearly still and moves the body a bounded step along the residual
// force.
type NudgeStabilizer struct {
	Threshold float64
	// Decay is the per-frame velocity factor at 60 fps.
	Decay    float64
	Gain     float64
	MaxNudge float64
}

func NewNudgeStabilizer() *NudgeStabilizer {
	return &NudgeStabilizer{Threshold: 0.05, Decay: 0.93, Gain: 0.001, MaxNudge: 0.01}
}

func (n *NudgeStabilizer) Name() string { return "nudge" }

func (n *NudgeStabilizer) Stabilize(b *dynamo.Body, eq Equilibrium) {
	if !eq.InWater || eq.Regime != dynamo.RegimeFloating {
		return
	}
	b.Velocity[1] *= math.Pow(n.Decay, eq.Dt*60)
	if math.Abs(b.Velocity[1]) < n.Threshold && math.Abs(eq.Accel[1]) < n.Threshold {
		b.Velocity[1] = 0
		b.Position[1] += dynamo.Clamp(eq.Force[1]*n.Gain, -n.MaxNudge, n.MaxNudge)
	}
}

package trajectory

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

const (
	PredictStep     = 0.05
	PredictMaxSteps = 300
)

// Launch describes the throw the predictor previews.
type Launch struct {
	Mass          float64
	Radius        float64
	Height        float64
	AngleDeg      float64
	Speed         float64
	DragScale     float64
	BuoyancyScale float64
}

// Velocity returns the launch velocity in the x/y plane.
func (l Launch) Velocity() dynamo.Vec3 {
	rad := l.AngleDeg * math.Pi / 180
	return dynamo.Vec3{l.Speed * math.Cos(rad), l.Speed * math.Sin(rad), 0}
}

type Prediction struct {
	Points []dynamo.Vec3
	Range  float64
	Apex   float64
	Steps  int
}

// Predictor runs a fixed-step forward simulation with gravity, simplified
// quadratic air drag and optional air buoyancy. Water is ignored.
type Predictor struct {
	Env      dynamo.Environment
	Step     float64
	MaxSteps int
}

func NewPredictor(env dynamo.Environment) *Predictor {
	return &Predictor{Env: env, Step: PredictStep, MaxSteps: PredictMaxSteps}
}

// Predict samples the trajectory until the body reaches height <= 0 or the
// step budget runs out. The first point is the launch position.
func (p *Predictor) Predict(l Launch) Prediction {
	mass := math.Max(l.Mass, dynamo.MinVolume)
	g := p.Env.Gravity
	kDrag := 0.5 * l.DragScale
	lift := p.Env.AirDensity * dynamo.SphereVolume(l.Radius) * math.Abs(g) * l.BuoyancyScale

	pos := dynamo.Vec3{0, l.Height, 0}
	vel := l.Velocity()

	pred := Prediction{
		Points: make([]dynamo.Vec3, 0, p.MaxSteps+1),
		Apex:   pos[1],
	}
	pred.Points = append(pred.Points, pos)

	for i := 0; i < p.MaxSteps; i++ {
		force := dynamo.Vec3{0, g*mass + lift, 0}
		if speedSq := vel.Dot(vel); speedSq > 0 {
			force = force.Add(vel.Mul(-kDrag * speedSq / math.Sqrt(speedSq)))
		}
		acc := force.Mul(1 / mass)

		vel = vel.Add(acc.Mul(p.Step))
		pos = pos.Add(vel.Mul(p.Step))
		pred.Points = append(pred.Points, pos)
		pred.Steps++

		if pos[1] > pred.Apex {
			pred.Apex = pos[1]
		}
		if pos[1] <= 0 {
			break
		}
	}

	pred.Range = pos[0]
	return pred
}

package physics

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// MinDragSpeedSq is the squared speed below which drag is not evaluated.
const MinDragSpeedSq = 1e-5

// Forces is the per-term breakdown of the net force on a body.
type Forces struct {
	Gravity       dynamo.Vec3
	AirBuoyancy   dynamo.Vec3
	WaterBuoyancy dynamo.Vec3
	AirDrag       dynamo.Vec3
	WaterDrag     dynamo.Vec3
	Total         dynamo.Vec3
	Submersion    Submersion
}

// ForceModel composes gravity, buoyancy and drag in air and water. Air and water
// terms are weighted by the air and submerged volume fractions so the net force
// is continuous while the body crosses the surface.
type ForceModel struct {
	Env           dynamo.Environment
	DragScale     float64
	BuoyancyScale float64
}

func NewForceModel(env dynamo.Environment) *ForceModel {
	return &ForceModel{Env: env, DragScale: 1.0}
}

// Net returns the forces on b for a water surface at height surface.
func (m *ForceModel) Net(b *dynamo.Body, surface float64) Forces {
	env := m.Env
	g := env.Gravity
	sub := Submerge(b.Radius, b.Position[1], surface)
	fAir := sub.Air()

	var f Forces
	f.Submersion = sub
	f.Gravity = dynamo.Vec3{0, b.Mass * g, 0}

	if fAir > 0 {
		lift := env.AirDensity * b.Volume() * math.Abs(g) * m.BuoyancyScale * fAir
		f.AirBuoyancy = dynamo.Vec3{0, lift, 0}
	}

	if b.Bottom() <= surface {
		f.WaterBuoyancy = dynamo.Vec3{0, BuoyantForce(env.WaterDensity, sub.Volume, g), 0}
	}

	v := b.Velocity
	if v.Dot(v) > MinDragSpeedSq {
		area := math.Max(b.CrossSection(), dynamo.MinArea)
		cd := env.DragCoefficient
		if fAir > 0 {
			mag := 0.5 * env.AirDensity * cd * area * v.Dot(v) * fAir * m.DragScale
			f.AirDrag = opposing(v, mag)
		}
		if sub.Fraction > 0 {
			rel := v.Sub(env.WaterCurrent())
			mag := 0.5 * env.WaterDensity * cd * area * rel.Dot(rel) * sub.Fraction
			f.WaterDrag = opposing(rel, mag)
		}
	}

	f.Total = f.Gravity.Add(f.AirBuoyancy).Add(f.WaterBuoyancy).Add(f.AirDrag).Add(f.WaterDrag)
	return f
}

// opposing returns a vector of length mag pointing against v, or zero when v
// has no direction.
func opposing(v dynamo.Vec3, mag float64) dynamo.Vec3 {
	l := v.Len()
	if l == 0 || mag == 0 {
		return dynamo.Vec3{}
	}
	return v.Mul(-mag / l)
}

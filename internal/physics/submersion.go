package physics

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// Submersion describes the spherical cap of a sphere below a water plane.
type Submersion struct {
	Depth    float64
	Volume   float64
	Fraction float64
}

// Submerge computes the cap below surface s for a sphere of radius r centred at
// height y. It is cheap and is meant to be called every frame.
func Submerge(r, y, s float64) Submersion {
	h := dynamo.Clamp(r-(y-s), 0, 2*r)
	vTotal := math.Max(dynamo.SphereVolume(r), dynamo.MinVolume)
	switch {
	case h <= 0:
		return Submersion{}
	case h >= 2*r:
		return Submersion{Depth: h, Volume: dynamo.SphereVolume(r), Fraction: 1}
	}
	vSub := math.Pi * h * h * (3*r - h) / 3
	return Submersion{
		Depth:    h,
		Volume:   vSub,
		Fraction: dynamo.Clamp(vSub/vTotal, 0, 1),
	}
}

// Air is the fraction of the volume above the surface.
func (s Submersion) Air() float64 { return 1 - s.Fraction }

// BuoyantForce is the magnitude of the upward Archimedes force.
func BuoyantForce(fluidDensity, displaced, gravity float64) float64 {
	return fluidDensity * displaced * math.Abs(gravity)
}

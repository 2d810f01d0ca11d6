package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type (
	Vec3 = mgl64.Vec3
	Vec2 = mgl64.Vec2
)

const (
	DefaultAirDensity      = 1.225
	DefaultWaterDensity    = 1000.0
	DefaultDragCoefficient = 0.47
	DefaultGravity         = -9.81
	DefaultFloorHeight     = -5.0

	// MaxStep bounds a single frame so hitches slow the simulation down
	// instead of destabilising it.
	MaxStep = 0.05

	MinVolume = 1e-9
	MinArea   = 1e-6
)

// Environment holds the immutable per-session physical constants.
type Environment struct {
	AirDensity      float64
	WaterDensity    float64
	DragCoefficient float64
	Current         Vec3
	Gravity         float64
	FloorHeight     float64
}

func DefaultEnvironment() Environment {
	return Environment{
		AirDensity:      DefaultAirDensity,
		WaterDensity:    DefaultWaterDensity,
		DragCoefficient: DefaultDragCoefficient,
		Current:         Vec3{0.25, 0, 0},
		Gravity:         DefaultGravity,
		FloorHeight:     DefaultFloorHeight,
	}
}

// WaterCurrent returns the current with its vertical component dropped.
func (e Environment) WaterCurrent() Vec3 {
	return Vec3{e.Current[0], 0, e.Current[2]}
}

// Body is the thrown sphere.
type Body struct {
	Position Vec3
	Velocity Vec3
	Mass     float64
	Radius   float64
}

func NewBody(mass, radius float64, pos Vec3) *Body {
	return &Body{Position: pos, Mass: mass, Radius: radius}
}

func SphereVolume(r float64) float64 {
	return 4.0 / 3.0 * math.Pi * r * r * r
}

func (b *Body) Volume() float64 { return SphereVolume(b.Radius) }

func (b *Body) Density() float64 {
	return Density(b.Mass, b.Radius)
}

func (b *Body) CrossSection() float64 { return math.Pi * b.Radius * b.Radius }

func (b *Body) Bottom() float64 { return b.Position[1] - b.Radius }

func (b *Body) Speed() float64 { return b.Velocity.Len() }

// BallisticCoefficient is m / (Cd * A). Display only.
func (b *Body) BallisticCoefficient(cd float64) float64 {
	return BallisticCoefficient(b.Mass, b.Radius, cd)
}

func (b *Body) IsValid() bool {
	return Finite(b.Position) && Finite(b.Velocity)
}

func Density(mass, radius float64) float64 {
	return mass / math.Max(SphereVolume(radius), MinVolume)
}

func BallisticCoefficient(mass, radius, cd float64) float64 {
	area := math.Pi * radius * radius
	return mass / (cd * math.Max(area, MinArea))
}

func Finite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ClampStep returns dt limited to max. Non-positive or non-finite deltas yield 0.
func ClampStep(dt, max float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package effects

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

type Kind int

const (
	KindRing Kind = iota
	KindDroplets
	KindSand
)

func (k Kind) String() string {
	switch k {
	case KindRing:
		return "ring"
	case KindDroplets:
		return "droplets"
	case KindSand:
		return "sand"
	}
	return "unknown"
}

type Particle struct {
	Position dynamo.Vec3
	Velocity dynamo.Vec3
	Alive    bool
}

// Surface is the water height lookup used for droplet landing.
type Surface interface {
	HeightAt(x, z, t float64) float64
}

// Rule is the per-kind behaviour of an emitter.
type Rule interface {
	Advance(e *Emitter, dt, t float64)
	Opacity(progress float64) float64
}

// Emitter is a timed particle population. It lives until Elapsed reaches
// Duration and is then dropped by the Manager in the same Advance call.
type Emitter struct {
	Kind       Kind
	Center     dynamo.Vec3
	Particles  []Particle
	Elapsed    float64
	Duration   float64
	StartScale float64
	EndScale   float64
	Intensity  float64
	PointSize  float64

	rule Rule
}

func (e *Emitter) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return dynamo.Clamp(e.Elapsed/e.Duration, 0, 1)
}

func (e *Emitter) Expired() bool { return e.Elapsed >= e.Duration }

func (e *Emitter) Opacity() float64 {
	if e.rule == nil {
		return 0
	}
	return e.rule.Opacity(e.Progress())
}

// Scale interpolates linearly from StartScale to EndScale over the lifetime.
func (e *Emitter) Scale() float64 {
	t := e.Progress()
	return e.StartScale + (e.EndScale-e.StartScale)*t
}

// Live counts particles that have not been retired.
func (e *Emitter) Live() int {
	n := 0
	for i := range e.Particles {
		if e.Particles[i].Alive {
			n++
		}
	}
	return n
}

type ringRule struct{}

func (ringRule) Advance(*Emitter, float64, float64) {}

func (ringRule) Opacity(t float64) float64 { return RingOpacity * (1 - t) }

type dropletRule struct {
	surface Surface
	gravity float64
}

func (r dropletRule) Advance(e *Emitter, dt, t float64) {
	g := r.gravity * DropletGravityScale
	for i := range e.Particles {
		p := &e.Particles[i]
		if !p.Alive {
			continue
		}
		p.Velocity[1] += g * dt
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		if r.surface != nil && p.Position[1] <= r.surface.HeightAt(p.Position[0], p.Position[2], t) {
			p.Alive = false
			p.Velocity = dynamo.Vec3{}
		}
	}
}

func (dropletRule) Opacity(t float64) float64 { return DropletOpacity * (1 - t) }

type sandRule struct {
	floor float64
}

func (r sandRule) Advance(e *Emitter, dt, t float64) {
	damp := math.Pow(SandDrag, dt*60)
	for i := range e.Particles {
		p := &e.Particles[i]
		if !p.Alive {
			continue
		}
		p.Velocity = p.Velocity.Mul(damp)
		p.Velocity[1] += SandLift * dt
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		if p.Position[1] < r.floor {
			p.Position[1] = r.floor
			p.Velocity[1] = 0
		}
	}
}

func (sandRule) Opacity(t float64) float64 { return SandOpacity * (1 - t) }

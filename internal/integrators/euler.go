package integrators

import "github.com/san-kum/splashsim/internal/dynamo"

// SemiImplicitEuler updates velocity first and moves with the new velocity.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Name() string { return "semi_implicit_euler" }

func (e *SemiImplicitEuler) Step(b *dynamo.Body, acc dynamo.Vec3, dt float64) {
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

// Euler is the explicit variant: position moves with the old velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(b *dynamo.Body, acc dynamo.Vec3, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
}

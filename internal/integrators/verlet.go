package integrators

import "github.com/san-kum/splashsim/internal/dynamo"

// Verlet takes a second-order Taylor step in position with the acceleration
// sampled once at the start of the step. It is not velocity Verlet; the
// acceleration is never re-evaluated at the new position.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(b *dynamo.Body, acc dynamo.Vec3, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt)).Add(acc.Mul(0.5 * dt * dt))
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
}

package integrators

import (
	"testing"

	"github.com/san-kum/splashsim/internal/dynamo"
)

func benchmarkIntegrator(b *testing.B, integ dynamo.Integrator) {
	body := dynamo.NewBody(1, 0.3, dynamo.Vec3{0, 2, 0})
	acc := dynamo.Vec3{0, -9.81, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(body, acc, 0.016)
	}
}

func BenchmarkSemiImplicitEuler(b *testing.B) { benchmarkIntegrator(b, NewSemiImplicitEuler()) }
func BenchmarkEuler(b *testing.B)             { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkVerlet(b *testing.B)            { benchmarkIntegrator(b, NewVerlet()) }

package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/experiment"
	"github.com/san-kum/splashsim/internal/physics"
	"github.com/san-kum/splashsim/internal/sim"
)

const frame = 1.0 / 60

// still water with no current
func calmOptions() []sim.Option {
	env := dynamo.DefaultEnvironment()
	env.Current = dynamo.Vec3{}
	return []sim.Option{sim.WithEnvironment(env), sim.WithWaves(physics.NewWaveField())}
}

func throwWith(p sim.Params, opts ...sim.Option) *sim.Simulation {
	s, err := sim.New(p, opts...)
	Expect(err).NotTo(HaveOccurred())
	s.Enqueue(sim.Throw{})
	return s
}

func runFor(s *sim.Simulation, seconds float64, each func(dynamo.Snapshot)) {
	for i := 0; i < int(seconds*60); i++ {
		snap := s.Tick(frame)
		if each != nil {
			each(snap)
		}
	}
}

var _ = Describe("Simulation", func() {
	Context("with a dense body dropped from rest", func() {
		var (
			s      *sim.Simulation
			params sim.Params
		)

		BeforeEach(func() {
			params = sim.DefaultParams()
			params.Mass = 452.4
			params.Speed = 0
			s = throwWith(params)
		})

		It("sinks and keeps descending until it meets the floor", func() {
			floor := dynamo.DefaultFloorHeight + params.Radius
			touched := false
			sawSinking := false

			runFor(s, 6, func(snap dynamo.Snapshot) {
				if snap.Regime == dynamo.RegimeSinking {
					sawSinking = true
				}
				if touched {
					return
				}
				if snap.Body.Position[1] <= floor {
					touched = true
					return
				}
				Expect(snap.Body.Velocity[1]).To(BeNumerically("<=", 0))
				Expect(snap.Regime).NotTo(Equal(dynamo.RegimeFloating))
			})

			Expect(sawSinking).To(BeTrue())
			Expect(touched).To(BeTrue())
			Expect(s.State().Phase).To(Equal(dynamo.PhaseResting))
			Expect(s.Readouts().Status).To(Equal("resting"))
		})

		It("kicks up sand when it hits the floor hard", func() {
			impacts := 0
			runFor(s, 6, func(snap dynamo.Snapshot) {
				if snap.FloorImpact {
					impacts++
				}
			})
			Expect(impacts).To(BeNumerically(">=", 1))
		})

		It("splashes exactly once", func() {
			splashes := 0
			runFor(s, 6, func(snap dynamo.Snapshot) {
				if snap.Splash {
					splashes++
				}
			})
			Expect(splashes).To(Equal(1))
			Expect(s.State().Splashes).To(Equal(1))
		})
	})

	for _, name := range experiment.NewRegistry().ListStabilizers() {
		name := name

		Context("with a light body and the "+name+" stabilizer", func() {
			var p sim.Params

			BeforeEach(func() {
				p = sim.DefaultParams()
				p.Mass = 50
				p.AngleDeg = 90
				p.Speed = 5
			})

			withStabilizer := func(opts ...sim.Option) *sim.Simulation {
				st, err := experiment.NewRegistry().GetStabilizer(name)
				Expect(err).NotTo(HaveOccurred())
				return throwWith(p, append(opts, sim.WithStabilizer(st))...)
			}

			It("settles at the surface of calm water without touching the floor", func() {
				s := withStabilizer(calmOptions()...)
				floor := dynamo.DefaultFloorHeight
				splashes := 0

				runFor(s, 4, func(snap dynamo.Snapshot) {
					Expect(snap.Body.Bottom()).To(BeNumerically(">", floor))
					if snap.Splash {
						splashes++
					}
				})
				runFor(s, 4, func(snap dynamo.Snapshot) {
					Expect(snap.Body.Speed()).To(BeNumerically("<", 0.05))
					Expect(snap.Regime).To(Equal(dynamo.RegimeFloating))
					if snap.Splash {
						splashes++
					}
				})

				Expect(splashes).To(Equal(1))
				Expect(s.Readouts().Status).To(Equal("floating"))
				Expect(s.Body().Position[1]).To(BeNumerically("~", 0, 0.3))
			})

			It("rides the default waves and current without sinking or running away", func() {
				env := dynamo.DefaultEnvironment()
				s := withStabilizer(sim.WithEnvironment(env), sim.WithWaves(physics.DefaultWaveField()))
				floor := dynamo.DefaultFloorHeight
				drift := env.WaterCurrent().Len()
				splashes := 0

				runFor(s, 4, func(snap dynamo.Snapshot) {
					Expect(snap.Body.Bottom()).To(BeNumerically(">", floor))
					if snap.Splash {
						splashes++
					}
				})
				runFor(s, 8, func(snap dynamo.Snapshot) {
					b := snap.Body
					Expect(b.Bottom()).To(BeNumerically(">", floor))
					Expect(b.Position[1]).To(BeNumerically("~", 0, 0.4))
					Expect(b.Velocity[1]).To(BeNumerically("~", 0, 0.3))
					Expect(b.Velocity[0]).To(BeNumerically("<=", drift+0.1))
					Expect(b.Velocity[0]).To(BeNumerically(">=", 0))
					if snap.Splash {
						splashes++
					}
				})

				Expect(splashes).To(Equal(1))
			})
		})
	}

	Context("with a long throw", func() {
		It("keeps the recorded path within its cap", func() {
			s := throwWith(sim.DefaultParams(), sim.WithHistoryCap(20))
			runFor(s, 5, func(dynamo.Snapshot) {
				Expect(s.History().Len()).To(BeNumerically("<=", 20))
			})
			Expect(s.History().Len()).To(Equal(20))
		})

		It("resets body, path and effects in one tick", func() {
			s := throwWith(sim.DefaultParams(), sim.WithSeed(3))
			runFor(s, 4, nil)
			Expect(s.Effects().Len()).To(BeNumerically(">", 0))

			s.Enqueue(sim.Reset{}, sim.SetAngle(30))
			snap := s.Tick(frame)

			Expect(snap.Phase).To(Equal(dynamo.PhaseIdle))
			Expect(snap.Body.Position).To(Equal(dynamo.Vec3{0, 2, 0}))
			Expect(s.History().Len()).To(BeZero())
			Expect(s.Effects().Len()).To(BeZero())
			Expect(s.Prediction()).NotTo(BeNil())
			Expect(s.Params().AngleDeg).To(Equal(30.0))
		})
	})

	Context("before a throw", func() {
		It("holds the body and keeps the clock still", func() {
			s, err := sim.New(sim.DefaultParams())
			Expect(err).NotTo(HaveOccurred())

			runFor(s, 1, func(snap dynamo.Snapshot) {
				Expect(snap.Dt).To(BeZero())
				Expect(snap.Phase).To(Equal(dynamo.PhaseIdle))
			})
			Expect(s.State().Time).To(BeZero())
			Expect(s.History().Len()).To(BeZero())
		})
	})
})

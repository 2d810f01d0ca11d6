// Package dynamo provides the core primitives shared by the splash simulator.
//
// The package defines the value types every other package passes around:
//
//   - [Vec3], [Vec2]: mathgl vectors used for positions, velocities and forces
//   - [Body]: the thrown sphere (position, velocity, mass, radius)
//   - [Environment]: fluid densities, drag coefficient, current, gravity, floor
//   - [Phase], [Regime], [DensityClass]: body state classifications
//   - [Snapshot], [Observer], [Metric]: per-tick read-only views for consumers
//
// # Example
//
//	env := dynamo.DefaultEnvironment()
//	b := dynamo.NewBody(113.1, 0.3, dynamo.Vec3{0, 2, 0})
//	class := dynamo.ClassifyDensity(b.Density(), env.WaterDensity)
//
// # Thread Safety
//
// Nothing in this package synchronises. Bodies are owned by a single tick loop.
package dynamo

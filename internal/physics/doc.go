// Package physics provides the force and geometry models of the splash simulator.
//
//   - [WaveField]: superposed travelling sine waves giving the water height
//   - [Submerge]: spherical-cap geometry for a sphere cut by the surface
//   - [ForceModel]: gravity, buoyancy and quadratic drag blended by the
//     air and submerged volume fractions
//
// All functions are pure. The same [WaveField] must be shared by every caller
// that needs a surface height so physics and effects never disagree.
//
//	field := physics.DefaultWaveField()
//	surface := field.HeightAt(x, z, t)
//	forces := physics.NewForceModel(env).Net(body, surface)
package physics

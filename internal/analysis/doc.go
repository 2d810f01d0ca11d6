// Package analysis looks at how a body moves once it reaches the water.
//
//   - [PhaseTrace]: observer that records height against vertical velocity
//   - [PhasePortraitToASCII]: terminal plot of a phase trace
//   - [DominantFrequency]: bobbing frequency of a height trace
//
// A floating body bobs around its rest height before it settles:
//
//	trace := analysis.NewPhaseTrace(0)
//	s.AddObserver(trace)
//	// ... tick ...
//	hz, err := analysis.DominantFrequency(trace.Heights(), dt)
package analysis

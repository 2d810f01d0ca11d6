// Package sim runs the thrown body through air and water one frame at a time.
//
// A Simulation owns the body, its recorded path, the splash and sand effects
// and a queue of commands. Each Tick drains the queue, integrates one clamped
// step, records the path, advances the effects and notifies observers, in that
// order.
package sim

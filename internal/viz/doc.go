// Package viz is the terminal renderer for a live splash simulation.
//
// [Model] is a Bubble Tea program that ticks a [sim.Simulation] once per
// frame and draws a side view on a braille [Canvas]: the water line, the
// floor, the dashed preview arc, the recorded path, splash rings, droplets,
// sand and the body coloured by its density class. A lipgloss panel shows the
// readouts, an asciigraph height plot and the launch parameters.
//
// # Key Bindings
//
//	Space  - Throw
//	R      - Reset body, path and effects
//	P      - Pause/Resume
//	Tab    - Select next parameter
//	Up/K   - Increase selected parameter
//	Down/J - Decrease selected parameter
//	0      - Restore selected parameter default
//	T      - Cycle color themes
//	?      - Show help overlay
package viz

// Package viz renders tableaus and integration runs in the terminal.
//
//   - [SparsityReport]: per-stage table of weights, nodes and buffer slots
//   - [Plot]: asciigraph line chart of a solution
//   - [LiveModel]: Bubble Tea program stepping a simulator one step per tick
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial point
//	T     - Cycle color themes
//	Q     - Quit
package viz

// Package viz draws the rod diagram in the terminal.
//
// [Terminal] is a scene backend that rasterizes shapes onto a Braille
// [Canvas], replaying their transitions against wall-clock time. [App] wraps
// it in a Bubble Tea program:
//
//	Tab   - select parameter
//	Up/Dn - adjust by ±5%
//	U     - toggle meters/centimeters
//	R     - reset
//	T     - cycle color themes
//	?     - help overlay
//
// Terminal resizes are forwarded to the scheduler, which debounces them
// like any other resize.
package viz

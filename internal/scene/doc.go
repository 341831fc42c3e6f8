// Package scene describes the rod diagram as backend-neutral shapes.
//
// A render pass is a full [Backend.Clear] followed by an ordered series of
// [Backend.Append] calls. Each [Shape] carries its initial attributes and an
// optional [Transition] that the backend plays on its own clock:
//
//   - two axes fade in
//   - the rod grows from its left end to its right end
//   - the field lines grow upward, all together
//   - the measurement point grows from radius 0
//
// One arrowhead [Marker] is registered per pass and referenced by every
// field line.
package scene

// Package schedule owns the live diagram state and decides when to redraw.
//
// A [Scheduler] recomputes the field on every parameter change and funnels
// both parameter changes and viewport resizes into one [Debouncer], so at
// most one render pass is pending at any time and only the settled viewport
// is drawn.
//
// # Thread Safety
//
// Scheduler methods may be called from any goroutine. Debounced passes run
// on the [Clock]'s timer goroutine.
package schedule

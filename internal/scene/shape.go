package scene

import (
	"maps"
	"time"
)

type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindAxis
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindAxis:
		return "axis"
	case KindMarker:
		return "marker"
	}
	return "unknown"
}

// Attrs holds geometric attributes keyed by their SVG names (x1, cy, r, ...).
type Attrs map[string]float64

func (a Attrs) Clone() Attrs {
	return maps.Clone(a)
}

// Transition animates attributes from their initial values to To.
type Transition struct {
	Delay    time.Duration
	Duration time.Duration
	To       Attrs
}

// End is the time at which the transition settles.
func (t *Transition) End() time.Duration {
	if t == nil {
		return 0
	}
	return t.Delay + t.Duration
}

// Progress is the eased fraction [0, 1] of the transition at elapsed.
func (t *Transition) Progress(elapsed time.Duration) float64 {
	if t == nil || elapsed >= t.End() {
		return 1
	}
	if elapsed <= t.Delay {
		return 0
	}
	if t.Duration <= 0 {
		return 1
	}
	return easeCubicInOut(float64(elapsed-t.Delay) / float64(t.Duration))
}

func easeCubicInOut(x float64) float64 {
	x *= 2
	if x <= 1 {
		return x * x * x / 2
	}
	x -= 2
	return (x*x*x + 2) / 2
}

type Style struct {
	Stroke      string
	Fill        string
	StrokeWidth float64
	// MarkerEnd names a marker definition drawn at the end of a line.
	MarkerEnd string
}

type Orient int

const (
	OrientBottom Orient = iota
	OrientLeft
)

type Tick struct {
	Pos   float64 // device units along the axis
	Label string
}

// Axis is a tick-labelled axis placed at Offset (y for bottom, x for left)
// spanning From..To in device units.
type Axis struct {
	Orient   Orient
	Offset   float64
	From, To float64
	Ticks    []Tick
}

// Marker is a reusable path definition such as an arrowhead.
type Marker struct {
	ID            string
	ViewBox       [4]float64
	RefX, RefY    float64
	Width, Height float64
	Path          string
	Fill          string
}

type Shape struct {
	Kind       Kind
	ID         string
	Attrs      Attrs
	Style      Style
	Transition *Transition
	Axis       *Axis
	Marker     *Marker
}

// At returns the attributes at elapsed time into the pass.
func (s Shape) At(elapsed time.Duration) Attrs {
	out := s.Attrs.Clone()
	if out == nil {
		out = Attrs{}
	}
	if s.Transition == nil {
		return out
	}
	p := s.Transition.Progress(elapsed)
	for k, to := range s.Transition.To {
		if p >= 1 {
			out[k] = to
			continue
		}
		from := out[k]
		out[k] = from + (to-from)*p
	}
	return out
}

// Final returns the settled attributes.
func (s Shape) Final() Attrs {
	return s.At(s.Transition.End())
}

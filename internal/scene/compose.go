package scene

import (
	"fmt"
	"time"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
)

const (
	ArrowheadID = "arrowhead"
	AxisTicks   = 10
	PointRadius = 6.0
)

// Palette of the diagram.
const (
	ColorAxis  = "#888"
	ColorRod   = "#ff4d4d"
	ColorField = "#4d88ff"
	ColorPoint = "#33cc33"
	ColorRing  = "#fff"
)

// Choreography sets the reveal timings.
type Choreography struct {
	Axes    time.Duration
	Rod     time.Duration
	Lines   time.Duration
	Point   time.Duration
	// Stagger starts each group when the previous one has settled.
	Stagger bool
}

func DefaultChoreography() Choreography {
	return Choreography{
		Axes:    500 * time.Millisecond,
		Rod:     800 * time.Millisecond,
		Lines:   600 * time.Millisecond,
		Point:   800 * time.Millisecond,
		Stagger: true,
	}
}

// Total is the time until the last shape settles.
func (c Choreography) Total() time.Duration {
	if c.Stagger {
		return c.Axes + c.Rod + c.Lines + c.Point
	}
	return max(c.Axes, c.Rod, c.Lines, c.Point)
}

func (c Choreography) delays() (axes, rod, lines, point time.Duration) {
	if !c.Stagger {
		return 0, 0, 0, 0
	}
	rod = c.Axes
	lines = rod + c.Rod
	point = lines + c.Lines
	return 0, rod, lines, point
}

// Compose builds the ordered shape sequence of one render pass: axes, rod,
// field lines, measurement point and the shared arrowhead marker.
func Compose(l layout.Layout, u field.Unit, c Choreography) []Shape {
	axesDelay, rodDelay, linesDelay, pointDelay := c.delays()

	shapes := make([]Shape, 0, len(l.FieldLines)+5)
	shapes = append(shapes, axes(l, u, c.Axes, axesDelay)...)

	rodStart, rodEnd := l.Px(l.RodStart), l.Px(l.RodEnd)
	shapes = append(shapes, Shape{
		Kind:  KindLine,
		ID:    "rod",
		Attrs: Attrs{"x1": rodStart.X, "y1": rodStart.Y, "x2": rodStart.X, "y2": rodStart.Y},
		Style: Style{Stroke: ColorRod, StrokeWidth: 4},
		Transition: &Transition{
			Delay:    rodDelay,
			Duration: c.Rod,
			To:       Attrs{"x2": rodEnd.X},
		},
	})

	for i, fl := range l.FieldLines {
		base := l.Px(layout.Point{X: fl.X, Y: fl.Y0})
		top := l.Y.Map(fl.Y1)
		shapes = append(shapes, Shape{
			Kind:  KindLine,
			ID:    fmt.Sprintf("field-%d", i),
			Attrs: Attrs{"x1": base.X, "y1": base.Y, "x2": base.X, "y2": base.Y},
			Style: Style{Stroke: ColorField, StrokeWidth: 1.5, MarkerEnd: ArrowheadID},
			Transition: &Transition{
				Delay:    linesDelay,
				Duration: c.Lines,
				To:       Attrs{"y2": top},
			},
		})
	}

	pt := l.Px(l.Point)
	shapes = append(shapes, Shape{
		Kind:  KindCircle,
		ID:    "point",
		Attrs: Attrs{"cx": pt.X, "cy": pt.Y, "r": 0},
		Style: Style{Fill: ColorPoint, Stroke: ColorRing, StrokeWidth: 1},
		Transition: &Transition{
			Delay:    pointDelay,
			Duration: c.Point,
			To:       Attrs{"r": PointRadius},
		},
	})

	shapes = append(shapes, Shape{
		Kind: KindMarker,
		ID:   ArrowheadID,
		Marker: &Marker{
			ID:      ArrowheadID,
			ViewBox: [4]float64{0, -5, 10, 10},
			RefX:    8,
			RefY:    0,
			Width:   8,
			Height:  8,
			Path:    "M 0,-5 L 10,0 L 0,5",
			Fill:    ColorField,
		},
	})
	return shapes
}

func axes(l layout.Layout, u field.Unit, d, delay time.Duration) []Shape {
	fade := func() *Transition {
		return &Transition{Delay: delay, Duration: d, To: Attrs{"opacity": 1}}
	}

	bottom := &Axis{
		Orient: OrientBottom,
		Offset: l.Y.Map(0),
		From:   l.X.R0,
		To:     l.X.R1,
		Ticks:  ticks(l.X, u),
	}
	left := &Axis{
		Orient: OrientLeft,
		Offset: l.X.Map(0),
		From:   l.Y.R0,
		To:     l.Y.R1,
		Ticks:  ticks(l.Y, u),
	}

	return []Shape{
		{Kind: KindAxis, ID: "axis-x", Attrs: Attrs{"opacity": 0}, Style: Style{Stroke: ColorAxis}, Axis: bottom, Transition: fade()},
		{Kind: KindAxis, ID: "axis-y", Attrs: Attrs{"opacity": 0}, Style: Style{Stroke: ColorAxis}, Axis: left, Transition: fade()},
	}
}

// ticks labels domain values (meters) in the displayed unit.
func ticks(s layout.Linear, u field.Unit) []Tick {
	values := s.Ticks(AxisTicks)
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{
			Pos:   s.Map(v),
			Label: fmt.Sprintf("%.1f%s", field.FromMeters(v, u), u.Suffix()),
		}
	}
	return out
}

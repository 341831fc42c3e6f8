package layout

import (
	"fmt"
	"math"

	"github.com/san-kum/rodfield/internal/field"
)

const (
	// DomainPadding widens the horizontal domain beyond the rod ends.
	DomainPadding = 1.2
	// FloorY is the headroom below the rod axis.
	FloorY = -0.5
	// MinCeilY keeps the vertical domain open for tiny distances.
	MinCeilY = 3.0
	// CeilPadding scales the distance into the vertical domain maximum.
	CeilPadding = 1.2
	// MinFieldLines is the fewest field lines ever drawn.
	MinFieldLines = 12
)

type Point struct {
	X, Y float64
}

// FieldLine is a vertical stroke anchored on the rod, in domain units.
type FieldLine struct {
	X, Y0, Y1 float64
}

// Layout is the diagram geometry for one set of parameters and one viewport.
type Layout struct {
	Viewport   Viewport
	X, Y       Linear
	RodStart   Point
	RodEnd     Point
	FieldLines []FieldLine
	Point      Point
}

// LineCount is the number of field lines for a rod of the given length in
// meters. It depends on nothing else.
func LineCount(length float64) int {
	return max(MinFieldLines, int(math.Floor(2*length)))
}

// CeilY is the vertical domain maximum for a measurement distance in meters.
func CeilY(distance float64) float64 {
	return math.Max(MinCeilY, CeilPadding*distance)
}

// Compute lays out the diagram. Length and distance must be positive;
// anything else is a caller bug and panics.
func Compute(p field.Parameters, vp Viewport) Layout {
	if !(p.Length > 0) || !(p.Distance > 0) {
		panic(fmt.Sprintf("layout: non-positive geometry (length=%v, distance=%v)", p.Length, p.Distance))
	}

	half := p.Length / 2
	ceil := CeilY(p.Distance)

	l := Layout{
		Viewport: vp,
		X:        NewLinear(-DomainPadding*half, DomainPadding*half, MarginLeft, vp.Width-MarginRight),
		Y:        NewLinear(FloorY, ceil, vp.Height-MarginBottom, MarginTop),
		RodStart: Point{X: -half, Y: 0},
		RodEnd:   Point{X: half, Y: 0},
		Point:    Point{X: 0, Y: p.Distance},
	}

	n := LineCount(p.Length)
	l.FieldLines = make([]FieldLine, n)
	for i := range l.FieldLines {
		l.FieldLines[i] = FieldLine{
			X:  -half + (float64(i)+0.5)*p.Length/float64(n),
			Y0: 0,
			Y1: ceil,
		}
	}
	return l
}

// Px projects a domain point to device coordinates.
func (l Layout) Px(pt Point) Point {
	return Point{X: l.X.Map(pt.X), Y: l.Y.Map(pt.Y)}
}

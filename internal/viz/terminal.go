package viz

import (
	"math"
	"sync"
	"time"

	"github.com/san-kum/rodfield/internal/scene"
)

// Terminal is a scene.Backend that rasterizes the scene onto a Braille
// canvas. Device units are canvas sub-pixels. Transitions play against the
// time elapsed since the last Clear.
type Terminal struct {
	now func() time.Time

	mu      sync.Mutex
	started time.Time
	shapes  []scene.Shape
}

func NewTerminal(now func() time.Time) *Terminal {
	if now == nil {
		now = time.Now
	}
	return &Terminal{now: now, started: now()}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shapes = nil
	t.started = t.now()
}

func (t *Terminal) Append(s scene.Shape) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shapes = append(t.shapes, s)
}

// Elapsed is the time since the current pass started.
func (t *Terminal) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.started)
}

// Animating reports whether any transition is still running.
func (t *Terminal) Animating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.now().Sub(t.started)
	for _, s := range t.shapes {
		if s.Transition != nil && elapsed < s.Transition.End() {
			return true
		}
	}
	return false
}

// Frame draws the scene as it looks now onto a cols x rows canvas.
func (t *Terminal) Frame(cols, rows int) *Canvas {
	t.mu.Lock()
	shapes := make([]scene.Shape, len(t.shapes))
	copy(shapes, t.shapes)
	elapsed := t.now().Sub(t.started)
	t.mu.Unlock()

	return Rasterize(shapes, elapsed, cols, rows)
}

// Rasterize draws shapes at elapsed time into the pass.
func Rasterize(shapes []scene.Shape, elapsed time.Duration, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows)
	for _, s := range shapes {
		a := s.At(elapsed)
		switch s.Kind {
		case scene.KindAxis:
			drawAxis(c, s, a)
		case scene.KindLine:
			if a["x1"] == a["x2"] && a["y1"] == a["y2"] {
				continue
			}
			ink := InkField
			if s.ID == "rod" {
				ink = InkRod
			}
			c.DrawLine(px(a["x1"]), px(a["y1"]), px(a["x2"]), px(a["y2"]), ink)
			if s.Style.MarkerEnd != "" && a["y2"] != a["y1"] {
				drawArrowhead(c, px(a["x2"]), px(a["y2"]), ink)
			}
		case scene.KindCircle:
			c.FillCircle(px(a["cx"]), px(a["cy"]), a["r"], InkPoint)
		}
	}
	return c
}

func drawAxis(c *Canvas, s scene.Shape, a scene.Attrs) {
	ax := s.Axis
	if ax == nil || a["opacity"] < 0.5 {
		return
	}
	off := px(ax.Offset)
	switch ax.Orient {
	case scene.OrientBottom:
		c.DrawLine(px(ax.From), off, px(ax.To), off, InkAxis)
		for _, t := range ax.Ticks {
			x := px(t.Pos)
			c.DrawLine(x, off, x, off+2, InkAxis)
		}
		labelBottom(c, ax, off+4)
	case scene.OrientLeft:
		c.DrawLine(off, px(ax.From), off, px(ax.To), InkAxis)
		for _, t := range ax.Ticks {
			y := px(t.Pos)
			c.DrawLine(off-2, y, off, y, InkAxis)
		}
	}
}

// labelBottom writes as many tick labels as fit without overlapping.
func labelBottom(c *Canvas, ax *scene.Axis, y int) {
	nextFree := -1
	for _, t := range ax.Ticks {
		col := px(t.Pos)/2 - len([]rune(t.Label))/2
		if col <= nextFree {
			continue
		}
		c.Text(col*2, y, t.Label)
		nextFree = col + len([]rune(t.Label))
	}
}

func drawArrowhead(c *Canvas, x, y int, ink Ink) {
	c.DrawLine(x-2, y+2, x, y, ink)
	c.DrawLine(x+2, y+2, x, y, ink)
}

func px(v float64) int {
	return int(math.Round(v))
}

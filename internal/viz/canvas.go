package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Ink tags what was drawn into a cell so it can be colored.
type Ink int

const (
	InkNone Ink = iota
	InkAxis
	InkField
	InkRod
	InkPoint
	InkText
)

// Canvas is a Braille pixel canvas of Width x Height cells, i.e.
// (Width*2) x (Height*4) sub-pixels. Each cell remembers the ink that last
// touched it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]Ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]Ink, w)
	}
	c.Clear()
	return c
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Ink[i][j] = InkNone
		}
	}
}

// Set sets a sub-pixel. Cells holding text are left alone.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	if c.Ink[row][col] == InkText {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if ink >= c.Ink[row][col] {
		c.Ink[row][col] = ink
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle fills a disc of radius r sub-pixels.
func (c *Canvas) FillCircle(cx, cy int, r float64, ink Ink) {
	if r <= 0 {
		return
	}
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.Set(cx+dx, cy+dy, ink)
			}
		}
	}
}

// Text writes s into whole cells starting at the cell containing the
// sub-pixel (x, y).
func (c *Canvas) Text(x, y int, s string) {
	row := y / 4
	if row < 0 || row >= c.Height {
		return
	}
	col := x / 2
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.Grid[row][col] = r
			c.Ink[row][col] = InkText
		}
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each cell by its ink using the theme.
func (c *Canvas) Render(th Theme) string {
	styles := map[Ink]lipgloss.Style{
		InkAxis:  lipgloss.NewStyle().Foreground(th.Axis),
		InkField: lipgloss.NewStyle().Foreground(th.Field),
		InkRod:   lipgloss.NewStyle().Foreground(th.Rod),
		InkPoint: lipgloss.NewStyle().Foreground(th.Point),
		InkText:  lipgloss.NewStyle().Foreground(th.Muted),
	}

	var b strings.Builder
	for i, row := range c.Grid {
		run := InkNone
		var seg strings.Builder
		flush := func() {
			if seg.Len() == 0 {
				return
			}
			if st, ok := styles[run]; ok {
				b.WriteString(st.Render(seg.String()))
			} else {
				b.WriteString(seg.String())
			}
			seg.Reset()
		}
		for j, r := range row {
			if ink := c.Ink[i][j]; ink != run {
				flush()
				run = ink
			}
			seg.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

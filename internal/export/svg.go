package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/rodfield/internal/layout"
	"github.com/san-kum/rodfield/internal/scene"
)

// easeInOut approximates cubic in-out easing for SMIL splines.
const easeInOut = `calcMode="spline" keyTimes="0;1" keySplines="0.65 0 0.35 1"`

type SVGOption func(*SVG)

// WithBackground paints a full-size rectangle behind the scene.
func WithBackground(color string) SVGOption { return func(s *SVG) { s.background = color } }

// WithStatic writes every shape in its settled state, without animation.
func WithStatic() SVGOption { return func(s *SVG) { s.static = true } }

// SVG is a scene.Backend that serializes the scene as an SVG document whose
// transitions play as SMIL animations in the viewer.
type SVG struct {
	background string
	static     bool

	mu     sync.Mutex
	shapes []scene.Shape
}

func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = nil
}

func (s *SVG) Append(sh scene.Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = append(s.shapes, sh)
}

// Render writes the current scene sized to vp.
func (s *SVG) Render(w io.Writer, vp layout.Viewport) error {
	_, err := w.Write(s.Bytes(vp))
	return err
}

// Bytes returns the current scene as an SVG document sized to vp.
func (s *SVG) Bytes(vp layout.Viewport) []byte {
	s.mu.Lock()
	shapes := make([]scene.Shape, len(s.shapes))
	copy(shapes, s.shapes)
	s.mu.Unlock()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		vp.Width, vp.Height, vp.Width, vp.Height)

	if s.background != "" {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.background)
	}

	renderDefs(&buf, shapes)
	for _, sh := range shapes {
		switch sh.Kind {
		case scene.KindAxis:
			s.renderAxis(&buf, sh)
		case scene.KindLine:
			s.renderLine(&buf, sh)
		case scene.KindCircle:
			s.renderCircle(&buf, sh)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, shapes []scene.Shape) {
	var markers []*scene.Marker
	for _, sh := range shapes {
		if sh.Kind == scene.KindMarker && sh.Marker != nil {
			markers = append(markers, sh.Marker)
		}
	}
	if len(markers) == 0 {
		return
	}

	buf.WriteString("<defs>\n")
	for _, m := range markers {
		fmt.Fprintf(buf, `  <marker id="%s" viewBox="%s" refX="%s" refY="%s" orient="auto" markerWidth="%s" markerHeight="%s">`+"\n",
			html.EscapeString(m.ID), joinNums(m.ViewBox[:]), num(m.RefX), num(m.RefY), num(m.Width), num(m.Height))
		fmt.Fprintf(buf, `    <path d="%s" fill="%s"/>`+"\n", m.Path, m.Fill)
		buf.WriteString("  </marker>\n")
	}
	buf.WriteString("</defs>\n")
}

func (s *SVG) renderAxis(buf *bytes.Buffer, sh scene.Shape) {
	ax := sh.Axis
	if ax == nil {
		return
	}
	attrs := s.initial(sh)

	transform := fmt.Sprintf("translate(0,%s)", num(ax.Offset))
	if ax.Orient == scene.OrientLeft {
		transform = fmt.Sprintf("translate(%s,0)", num(ax.Offset))
	}
	fmt.Fprintf(buf, `<g id="%s" class="axis" transform="%s" color="%s" opacity="%s" font-size="10" font-family="sans-serif">`+"\n",
		sh.ID, transform, sh.Style.Stroke, num(attrs["opacity"]))

	if ax.Orient == scene.OrientBottom {
		fmt.Fprintf(buf, `  <path class="domain" stroke="currentColor" d="M%s,6V0H%sV6"/>`+"\n", num(ax.From), num(ax.To))
	} else {
		fmt.Fprintf(buf, `  <path class="domain" stroke="currentColor" d="M-6,%sH0V%sH-6"/>`+"\n", num(ax.From), num(ax.To))
	}

	for _, t := range ax.Ticks {
		label := html.EscapeString(t.Label)
		if ax.Orient == scene.OrientBottom {
			fmt.Fprintf(buf, `  <g class="tick" transform="translate(%s,0)"><line stroke="currentColor" y2="6"/><text fill="currentColor" y="9" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
				num(t.Pos), label)
		} else {
			fmt.Fprintf(buf, `  <g class="tick" transform="translate(0,%s)"><line stroke="currentColor" x2="-6"/><text fill="currentColor" x="-9" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
				num(t.Pos), label)
		}
	}

	s.renderAnimations(buf, sh, "  ")
	buf.WriteString("</g>\n")
}

func (s *SVG) renderLine(buf *bytes.Buffer, sh scene.Shape) {
	a := s.initial(sh)
	fmt.Fprintf(buf, `<line id="%s" x1="%s" y1="%s" x2="%s" y2="%s"%s>`,
		sh.ID, num(a["x1"]), num(a["y1"]), num(a["x2"]), num(a["y2"]), styleAttrs(sh.Style))
	s.closeShape(buf, sh, "line")
}

func (s *SVG) renderCircle(buf *bytes.Buffer, sh scene.Shape) {
	a := s.initial(sh)
	fmt.Fprintf(buf, `<circle id="%s" cx="%s" cy="%s" r="%s"%s>`,
		sh.ID, num(a["cx"]), num(a["cy"]), num(a["r"]), styleAttrs(sh.Style))
	s.closeShape(buf, sh, "circle")
}

func (s *SVG) closeShape(buf *bytes.Buffer, sh scene.Shape, tag string) {
	if s.static || sh.Transition == nil {
		fmt.Fprintf(buf, "</%s>\n", tag)
		return
	}
	buf.WriteString("\n")
	s.renderAnimations(buf, sh, "  ")
	fmt.Fprintf(buf, "</%s>\n", tag)
}

func (s *SVG) initial(sh scene.Shape) scene.Attrs {
	if s.static {
		return sh.Final()
	}
	return sh.At(0)
}

func (s *SVG) renderAnimations(buf *bytes.Buffer, sh scene.Shape, indent string) {
	tr := sh.Transition
	if s.static || tr == nil {
		return
	}
	for _, k := range sortedKeys(tr.To) {
		fmt.Fprintf(buf, `%s<animate attributeName="%s" from="%s" to="%s" begin="%s" dur="%s" fill="freeze" %s/>`+"\n",
			indent, k, num(sh.Attrs[k]), num(tr.To[k]), seconds(tr.Delay), seconds(tr.Duration), easeInOut)
	}
}

func styleAttrs(st scene.Style) string {
	var b strings.Builder
	if st.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, st.Stroke)
	}
	if st.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, num(st.StrokeWidth))
	}
	if st.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, st.Fill)
	}
	if st.MarkerEnd != "" {
		fmt.Fprintf(&b, ` marker-end="url(#%s)"`, st.MarkerEnd)
	}
	return b.String()
}

func sortedKeys(a scene.Attrs) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func seconds(d time.Duration) string {
	return num(d.Seconds()) + "s"
}

func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func joinNums(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

package renderer

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/systems"
)

// GraphRenderer draws one frame of the background: connections first, then
// every particle on top.
type GraphRenderer struct {
	style Style
	dots  *DotRenderer

	// Scratch polyline reused across frames
	line []r2.Vec
}

// NewGraphRenderer creates a renderer for style.
func NewGraphRenderer(style Style) *GraphRenderer {
	return &GraphRenderer{
		style: style,
		dots:  NewDotRenderer(style),
	}
}

// Style returns the renderer's style.
func (r *GraphRenderer) Style() Style {
	return r.style
}

// Clear fills the surface with the background colour.
func (r *GraphRenderer) Clear(s Surface) {
	s.Clear(r.style.Background)
}

// Draw renders g over points. prox may be nil; when set it modulates dot
// opacity. Edge opacity is already resolved in g.
func (r *GraphRenderer) Draw(s Surface, points []r2.Vec, g systems.Graph, prox *systems.Proximity) {
	for _, e := range g.Edges {
		r.line = append(r.line[:0], points[e.A], points[e.B])
		s.StrokePolyline(r.line, false, WithOpacity(r.style.LineColor, e.Opacity), r.style.LineWidth)
	}
	for _, p := range g.Paths {
		r.line = r.line[:0]
		for _, idx := range p.Vertices() {
			r.line = append(r.line, points[idx])
		}
		s.StrokePolyline(r.line, false, WithOpacity(r.style.LineColor, p.Opacity), r.style.LineWidth)
	}
	r.dots.Draw(s, points, prox)
}

package renderer

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/systems"
)

// DotRenderer renders particles as a faint halo under a core disc.
type DotRenderer struct {
	style Style
}

// NewDotRenderer creates a dot renderer.
func NewDotRenderer(style Style) *DotRenderer {
	return &DotRenderer{style: style}
}

// Draw renders all particles. With an active pointer the core opacity follows
// pointer proximity instead of the configured opacity.
func (r *DotRenderer) Draw(s Surface, points []r2.Vec, prox *systems.Proximity) {
	tracking := false
	if prox != nil {
		_, tracking = prox.Pointer()
	}

	for _, p := range points {
		if r.style.HaloRadius > 0 {
			s.FillCircle(p, r.style.HaloRadius, WithOpacity(r.style.PointColor, r.style.HaloAlpha))
		}

		alpha := r.style.PointAlpha
		if tracking {
			alpha = prox.Opacity(p)
		}
		s.FillCircle(p, r.style.PointRadius, WithOpacity(r.style.PointColor, alpha))
	}
}

// Package renderer draws the particle field and its connection graph onto a
// 2-D surface.
package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is a drawable 2-D context. Drawing calls cannot fail; a backend that
// can report errors keeps them to itself.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Resize changes the backing store to width x height.
	Resize(width, height int) error
	// Clear fills the whole surface.
	Clear(c color.NRGBA)
	// StrokePolyline draws line segments through pts.
	StrokePolyline(pts []r2.Vec, closed bool, c color.NRGBA, width float64)
	// FillCircle draws a filled disc.
	FillCircle(center r2.Vec, radius float64, c color.NRGBA)
}

package renderer

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// RasterSurface is an offscreen software surface backed by a gg context.
// Headless runs draw into it and save frames as PNG.
type RasterSurface struct {
	dc  *gg.Context
	err error
}

// NewRasterSurface creates a width x height surface.
func NewRasterSurface(width, height int) (*RasterSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return &RasterSurface{dc: gg.NewContext(width, height)}, nil
}

// Size returns the surface size.
func (s *RasterSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Resize reallocates the pixmap.
func (s *RasterSurface) Resize(width, height int) error {
	if err := s.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resizing raster surface: %w", err)
	}
	return nil
}

// Clear fills the surface with c.
func (s *RasterSurface) Clear(c color.NRGBA) {
	s.dc.ClearWithColor(toRGBA(c))
}

// StrokePolyline strokes a path through pts.
func (s *RasterSurface) StrokePolyline(pts []r2.Vec, closed bool, c color.NRGBA, width float64) {
	if len(pts) < 2 {
		return
	}
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	if closed {
		s.dc.ClosePath()
	}
	s.setColor(c)
	s.dc.SetLineWidth(width)
	s.record(s.dc.Stroke())
}

// FillCircle fills a disc.
func (s *RasterSurface) FillCircle(center r2.Vec, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	s.dc.DrawCircle(center.X, center.Y, radius)
	s.setColor(c)
	s.record(s.dc.Fill())
}

// Image returns the current pixels.
func (s *RasterSurface) Image() image.Image {
	return s.dc.Image()
}

// Err returns the first drawing error since the last SavePNG.
func (s *RasterSurface) Err() error {
	return s.err
}

// SavePNG writes the current frame to path, creating parent directories.
func (s *RasterSurface) SavePNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	s.err = nil
	return nil
}

// Close releases the context.
func (s *RasterSurface) Close() error {
	return s.dc.Close()
}

func (s *RasterSurface) setColor(c color.NRGBA) {
	s.dc.SetRGBA(
		float64(c.R)/255,
		float64(c.G)/255,
		float64(c.B)/255,
		float64(c.A)/255,
	)
}

func (s *RasterSurface) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
		slog.Warn("raster draw failed", "error", err)
	}
}

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/renderer"
)

// WindowSurface draws on the raylib window between BeginDrawing and
// EndDrawing.
type WindowSurface struct{}

// Size returns the window's render size.
func (WindowSurface) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Resize is a no-op: the window owns its framebuffer and has already changed
// size when the resize notification arrives.
func (WindowSurface) Resize(int, int) error {
	return nil
}

// Clear fills the window.
func (WindowSurface) Clear(c color.NRGBA) {
	rl.ClearBackground(toColor(c))
}

// StrokePolyline draws consecutive segments.
func (WindowSurface) StrokePolyline(pts []r2.Vec, closed bool, c color.NRGBA, width float64) {
	if len(pts) < 2 {
		return
	}
	col := toColor(c)
	thick := float32(width)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(vector(pts[i-1]), vector(pts[i]), thick, col)
	}
	if closed {
		rl.DrawLineEx(vector(pts[len(pts)-1]), vector(pts[0]), thick, col)
	}
}

// FillCircle draws a filled disc.
func (WindowSurface) FillCircle(center r2.Vec, radius float64, c color.NRGBA) {
	rl.DrawCircleV(vector(center), float32(radius), toColor(c))
}

// raylib colours carry straight alpha, like NRGBA.
func toColor(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// WindowCanvas exposes the raylib window as the engine's canvas.
// The whole window is the drawing area, so the client origin is (0, 0).
type WindowCanvas struct{}

// Context2D returns the window surface, or nil before the window exists.
func (WindowCanvas) Context2D() (renderer.Surface, error) {
	if !rl.IsWindowReady() {
		return nil, nil
	}
	return WindowSurface{}, nil
}

// ClientOrigin returns the canvas origin in window coordinates.
func (WindowCanvas) ClientOrigin() (float64, float64) {
	return 0, 0
}

package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a card background with the accent strip along its top edge.
func (r *Renderer) DrawPanel(rect Rect, accent float64) {
	rl.DrawRectangleRec(rect.rl(), r.Theme.CardBg)
	strip := Rect{X: rect.X, Y: rect.Y, W: rect.W, H: accent}
	rl.DrawRectangleRec(strip.rl(), r.Theme.Accent)
}

// DrawText draws text with its top-left corner at (x, y).
func (r *Renderer) DrawText(text string, x, y float64, size int32, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), size, color)
}

// DrawLine draws a connector segment.
func (r *Renderer) DrawLine(from, to r2.Vec, width float64, color rl.Color) {
	rl.DrawLineEx(vector(from), vector(to), float32(width), color)
}

// DrawDot draws a small filled marker.
func (r *Renderer) DrawDot(at r2.Vec, radius float64, color rl.Color) {
	rl.DrawCircleV(vector(at), float32(radius), color)
}

func vector(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

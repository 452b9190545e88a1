// Package ui draws the page chrome over the animated background in a raylib
// window: navigation links, the rotating headline and the floating cards.
// Layout and hover logic works on plain rectangles so it can run without a
// window; only the Draw methods touch raylib.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the rectangle's centre point.
func (r Rect) Center() r2.Vec {
	return r2.Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) rl() rl.Rectangle {
	return rl.Rectangle{X: float32(r.X), Y: float32(r.Y), Width: float32(r.W), Height: float32(r.H)}
}

// MeasureFunc returns the rendered width of text at fontSize.
type MeasureFunc func(text string, fontSize int32) float64

// MeasureText measures with raylib's default font.
func MeasureText(text string, fontSize int32) float64 {
	return float64(rl.MeasureText(text, fontSize))
}

// Theme holds UI styling constants.
type Theme struct {
	Accent      rl.Color
	CardBg      rl.Color
	CardText    rl.Color
	TitleColor  rl.Color
	NavColor    rl.Color
	NavActive   rl.Color
	Connector   rl.Color
	HUDColor    rl.Color
	Headline    rl.Color
	Padding     float64
	LineHeight  float64
	CardWidth   float64
	AccentWidth float64

	FontSize      int32
	CardTitleSize int32
	NavFontSize   int32
	HeadlineSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Accent:        rl.Color{R: 0x32, G: 0xc8, B: 0xf4, A: 255},
		CardBg:        rl.Color{R: 0, G: 0, B: 0, A: 204},
		CardText:      rl.Color{R: 209, G: 213, B: 219, A: 255},
		TitleColor:    rl.White,
		NavColor:      rl.Color{R: 128, G: 128, B: 128, A: 255},
		NavActive:     rl.Color{R: 0x32, G: 0xc8, B: 0xf4, A: 255},
		Connector:     rl.Color{R: 0x32, G: 0xc8, B: 0xf4, A: 90},
		HUDColor:      rl.Gray,
		Headline:      rl.Color{R: 17, G: 17, B: 17, A: 255},
		Padding:       16,
		LineHeight:    22,
		CardWidth:     260,
		AccentWidth:   2,
		FontSize:      16,
		CardTitleSize: 20,
		NavFontSize:   18,
		HeadlineSize:  48,
	}
}

// Label is a text-bearing element driven by a scrambler.
type Label struct {
	text string
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// Text returns the displayed text.
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the displayed text.
func (l *Label) SetText(text string) {
	l.text = text
}

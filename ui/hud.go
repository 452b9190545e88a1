package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Variant     string
	Particles   int
	Connections int
	Frame       uint64
	FPS         int32
	Pointer     bool
}

// HUD renders a small diagnostics readout in the bottom-left corner.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a hidden HUD.
func NewHUD(r *Renderer) *HUD {
	return &HUD{renderer: r}
}

// Toggle switches visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible reports whether the HUD is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD when visible.
func (h *HUD) Draw(data HUDData, screenHeight float64) {
	if !h.visible {
		return
	}
	t := h.renderer.Theme
	pointer := "off"
	if data.Pointer {
		pointer = "on"
	}
	h.renderer.DrawText(
		fmt.Sprintf("%s | particles %d | connections %d | frame %d | FPS %d | pointer %s",
			data.Variant, data.Particles, data.Connections, data.Frame, data.FPS, pointer),
		t.Padding, screenHeight-t.Padding-float64(t.FontSize), t.FontSize, t.HUDColor,
	)
}

// DrawControls renders the key legend above the HUD line.
func (h *HUD) DrawControls(screenHeight float64, controls string) {
	if !h.visible {
		return
	}
	t := h.renderer.Theme
	rl.DrawText(controls, int32(t.Padding), int32(screenHeight-t.Padding-2*t.LineHeight), 14, rl.Gray)
}

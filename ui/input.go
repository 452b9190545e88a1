package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/catyyy/hp-catyyy/loop"
)

// PointerState is the pointer as seen by the page this frame.
type PointerState struct {
	X, Y    float64
	Inside  bool
	Clicked bool
}

// Input turns raylib's polled window state into loop notifications.
type Input struct {
	width, height int
	lastX, lastY  float64
	inside        bool
}

// NewInput creates an input tracker for a window of the given size.
func NewInput(width, height int) *Input {
	return &Input{width: width, height: height}
}

// Poll dispatches resize and pointer changes to l and returns the pointer.
func (in *Input) Poll(l *loop.Loop) PointerState {
	in.handleResize(l)

	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)
	inside := rl.IsCursorOnScreen()

	switch {
	case inside && (!in.inside || x != in.lastX || y != in.lastY):
		l.DispatchPointer(loop.PointerEvent{X: x, Y: y})
	case !inside && in.inside:
		l.DispatchPointer(loop.PointerEvent{Left: true})
	}
	in.lastX, in.lastY, in.inside = x, y, inside

	return PointerState{
		X:       x,
		Y:       y,
		Inside:  inside,
		Clicked: inside && rl.IsMouseButtonPressed(rl.MouseButtonLeft),
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (in *Input) handleResize(l *loop.Loop) {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == in.width && h == in.height {
		return
	}
	in.width, in.height = w, h
	l.DispatchResize(w, h)
}

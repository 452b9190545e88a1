// Package engine runs the animated particle-graph background on a host loop.
//
// An Engine acquires a 2-D surface from its canvas, registers for viewport
// resize and pointer notifications, and redraws the whole surface on every
// frame the host grants it. Dispose releases all of that again.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/renderer"
	"github.com/catyyy/hp-catyyy/systems"
	"github.com/catyyy/hp-catyyy/telemetry"
)

// ErrNoContext is returned when the canvas yields no drawable surface.
var ErrNoContext = errors.New("engine: no 2-D rendering context")

// Canvas is the drawable element the engine renders into.
type Canvas interface {
	// Context2D returns the surface to draw on.
	Context2D() (renderer.Surface, error)
	// ClientOrigin returns the surface's top-left corner in client coordinates.
	ClientOrigin() (x, y float64)
}

// Host provides frame scheduling and viewport notifications. *loop.Loop
// implements it.
type Host interface {
	RequestFrame(fn func(now time.Time)) loop.FrameID
	CancelFrame(id loop.FrameID)
	OnResize(fn func(w, h int)) loop.ListenerID
	OnPointer(fn func(loop.PointerEvent)) loop.ListenerID
	RemoveListener(id loop.ListenerID)
}

// Engine is one running background animation.
type Engine struct {
	canvas  Canvas
	host    Host
	surface renderer.Surface
	opts    Options

	field    *systems.Field
	prox     *systems.Proximity
	renderer *renderer.GraphRenderer
	graph    systems.Graph

	frameID   loop.FrameID
	hasFrame  bool
	resizeID  loop.ListenerID
	pointerID loop.ListenerID
	disposed  bool

	frames uint64
}

// New acquires the canvas surface, populates the field for its current size
// and schedules the first frame.
func New(canvas Canvas, host Host, opts Options) (*Engine, error) {
	surface, err := canvas.Context2D()
	if err != nil {
		return nil, fmt.Errorf("acquiring 2-D context: %w", err)
	}
	if surface == nil {
		return nil, ErrNoContext
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w, h := surface.Size()
	e := &Engine{
		canvas:   canvas,
		host:     host,
		surface:  surface,
		opts:     opts,
		field:    systems.NewField(opts.Field, systems.Bounds{Width: float64(w), Height: float64(h)}, rng),
		renderer: renderer.NewGraphRenderer(opts.Style),
	}
	if opts.Pointer.Enabled {
		e.prox = systems.NewProximity(opts.Pointer.Radius, opts.Pointer.Near, opts.Pointer.Far)
	}

	e.resizeID = host.OnResize(e.handleResize)
	e.pointerID = host.OnPointer(e.handlePointer)
	e.schedule()

	slog.Info("engine started",
		"width", w,
		"height", h,
		"particles", e.field.Count(),
		"topology", opts.Graph.Topology.String(),
		"boundary", opts.Field.Boundary.String(),
	)
	return e, nil
}

// Field returns the particle field.
func (e *Engine) Field() *systems.Field {
	return e.field
}

// Graph returns the connections drawn in the last frame.
func (e *Engine) Graph() systems.Graph {
	return e.graph
}

// Proximity returns the pointer tracker, or nil when highlighting is disabled.
func (e *Engine) Proximity() *systems.Proximity {
	return e.prox
}

// Surface returns the surface the engine draws on.
func (e *Engine) Surface() renderer.Surface {
	return e.surface
}

// Frames returns the number of frames drawn.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Disposed reports whether Dispose has run.
func (e *Engine) Disposed() bool {
	return e.disposed
}

// Dispose cancels the pending frame and removes the viewport listeners.
// Calling it more than once is a no-op.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	if e.hasFrame {
		e.host.CancelFrame(e.frameID)
		e.hasFrame = false
	}
	e.host.RemoveListener(e.resizeID)
	e.host.RemoveListener(e.pointerID)
	slog.Debug("engine disposed", "frames", e.frames)
}

func (e *Engine) schedule() {
	e.frameID = e.host.RequestFrame(e.frame)
	e.hasFrame = true
}

// frame runs one animation tick: clear, step, publish, connect, draw.
func (e *Engine) frame(time.Time) {
	e.hasFrame = false
	if e.disposed {
		return
	}

	perf := e.opts.Perf
	if perf != nil {
		perf.BeginFrame()
		perf.StartPhase(telemetry.PhaseClear)
	}
	e.renderer.Clear(e.surface)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseStep)
	}
	e.field.Step()
	points := e.field.Positions()
	if e.opts.Snapshot && e.opts.OnSnapshot != nil {
		e.opts.OnSnapshot(e.field.Snapshot())
	}

	if perf != nil {
		perf.StartPhase(telemetry.PhaseGraph)
	}
	e.graph = systems.ComputeEdges(points, e.opts.Graph, e.prox)

	if perf != nil {
		perf.StartPhase(telemetry.PhaseDraw)
	}
	e.renderer.Draw(e.surface, points, e.graph, e.prox)

	e.frames++
	if perf != nil {
		perf.StartPhase(telemetry.PhaseTelemetry)
	}
	e.recordTelemetry()
	if perf != nil {
		perf.EndFrame()
	}

	e.schedule()
}

func (e *Engine) handleResize(w, h int) {
	if err := e.surface.Resize(w, h); err != nil {
		slog.Warn("surface resize failed", "width", w, "height", h, "error", err)
	}
	e.field.Resize(systems.Bounds{Width: float64(w), Height: float64(h)})
	if e.opts.Collector != nil {
		e.opts.Collector.RecordResize()
	}
	slog.Debug("field repopulated", "width", w, "height", h, "particles", e.field.Count())
}

func (e *Engine) handlePointer(ev loop.PointerEvent) {
	if e.opts.Collector != nil {
		e.opts.Collector.RecordPointer()
	}
	if e.prox == nil {
		return
	}
	if ev.Left {
		e.prox.Clear()
		return
	}
	ox, oy := e.canvas.ClientOrigin()
	e.prox.Set(r2.Vec{X: ev.X - ox, Y: ev.Y - oy})
}

// Package headless runs the background engine without a window. Frames are
// rasterised in software and can be dumped as PNG files.
package headless

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/engine"
	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/renderer"
	"github.com/catyyy/hp-catyyy/telemetry"
)

// DefaultStep is the simulated time between frames.
const DefaultStep = time.Second / 60

// Options configures a headless run.
type Options struct {
	Variant string // Empty = cfg.Variant
	Seed    int64
	Width   int // 0 = cfg.Screen.Width
	Height  int // 0 = cfg.Screen.Height
	Step    time.Duration

	// FrameDir receives frame_NNNNNN.png every FrameEvery frames. Empty = off.
	FrameDir   string
	FrameEvery int

	// OnSnapshot receives positions every frame. Setting it turns publishing
	// on even for variants that leave it off.
	OnSnapshot func(points []r2.Vec)

	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
	OnStats   func(telemetry.WindowStats, telemetry.PerfStats)
}

// canvas hands the raster surface to the engine.
type canvas struct {
	surface *renderer.RasterSurface
}

func (c canvas) Context2D() (renderer.Surface, error) { return c.surface, nil }

func (c canvas) ClientOrigin() (float64, float64) { return 0, 0 }

// Runner owns a simulated loop, a raster surface and one engine.
type Runner struct {
	opts    Options
	loop    *loop.Loop
	surface *renderer.RasterSurface
	engine  *engine.Engine
	saved   int
}

// New starts an engine for the configured variant on a fresh loop.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	if opts.Variant == "" {
		opts.Variant = cfg.Variant
	}
	if opts.Width == 0 {
		opts.Width = cfg.Screen.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Screen.Height
	}
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.FrameEvery < 1 {
		opts.FrameEvery = 1
	}

	v, ok := cfg.Variants[opts.Variant]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", opts.Variant)
	}
	eopts, err := engine.OptionsFromConfig(v)
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", opts.Variant, err)
	}
	eopts.Rand = rand.New(rand.NewSource(opts.Seed))
	eopts.Collector = opts.Collector
	eopts.Perf = opts.Perf
	eopts.OnStats = opts.OnStats
	if opts.OnSnapshot != nil {
		eopts.Snapshot = true
		eopts.OnSnapshot = opts.OnSnapshot
	}

	surface, err := renderer.NewRasterSurface(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	l := loop.New(time.Unix(0, 0))
	e, err := engine.New(canvas{surface: surface}, l, eopts)
	if err != nil {
		surface.Close()
		return nil, err
	}
	return &Runner{opts: opts, loop: l, surface: surface, engine: e}, nil
}

// Engine returns the running engine.
func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Loop returns the simulated loop.
func (r *Runner) Loop() *loop.Loop {
	return r.loop
}

// Surface returns the raster surface frames are drawn into.
func (r *Runner) Surface() *renderer.RasterSurface {
	return r.surface
}

// Saved returns the number of PNG frames written.
func (r *Runner) Saved() int {
	return r.saved
}

// Resize simulates a viewport resize.
func (r *Runner) Resize(w, h int) {
	r.loop.DispatchResize(w, h)
}

// Pointer simulates a pointer move, or the pointer leaving when left is set.
func (r *Runner) Pointer(x, y float64, left bool) {
	r.loop.DispatchPointer(loop.PointerEvent{X: x, Y: y, Left: left})
}

// Step advances the clock by one step and renders one frame.
func (r *Runner) Step() error {
	r.loop.Advance(r.opts.Step)
	r.loop.Frame()
	if err := r.surface.Err(); err != nil {
		return fmt.Errorf("frame %d: %w", r.engine.Frames(), err)
	}
	if r.opts.FrameDir == "" || r.engine.Frames()%uint64(r.opts.FrameEvery) != 0 {
		return nil
	}
	path := filepath.Join(r.opts.FrameDir, fmt.Sprintf("frame_%06d.png", r.engine.Frames()))
	if err := r.surface.SavePNG(path); err != nil {
		return err
	}
	r.saved++
	slog.Debug("frame saved", "path", path)
	return nil
}

// Run steps until maxFrames frames have rendered (0 = unlimited) or ctx is done.
func (r *Runner) Run(ctx context.Context, maxFrames uint64) error {
	for maxFrames == 0 || r.engine.Frames() < maxFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Step(); err != nil {
			return err
		}
	}
	slog.Info("max frames reached", "frames", r.engine.Frames(), "saved", r.saved)
	return nil
}

// Close disposes the engine and releases the surface.
func (r *Runner) Close() error {
	r.engine.Dispose()
	return r.surface.Close()
}

package ui

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/engine"
	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/telemetry"
)

// PageOptions carries run-wide hooks into every engine the page creates.
type PageOptions struct {
	Seed       int64
	Collector  *telemetry.Collector
	Perf       *telemetry.PerfCollector
	OnStats    func(telemetry.WindowStats, telemetry.PerfStats)
	OnSnapshot func(points []r2.Vec)
}

// Page is the windowed site: one background engine plus its overlays.
// Navigation links switch the engine variant.
type Page struct {
	cfg  *config.Config
	loop *loop.Loop
	opts PageOptions
	rng  *rand.Rand

	renderer *Renderer
	input    *Input
	nav      *Nav
	title    *Title
	cards    *Cards
	hud      *HUD

	variant      string
	engine       *engine.Engine
	titleStarted bool
}

// NewPage builds the overlays and starts the configured variant.
// The raylib window must already be open.
func NewPage(cfg *config.Config, l *loop.Loop, opts PageOptions) (*Page, error) {
	r := NewRenderer()
	sc := cfg.Scrambler
	p := &Page{
		cfg:      cfg,
		loop:     l,
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		renderer: r,
		input:    NewInput(rl.GetScreenWidth(), rl.GetScreenHeight()),
		nav: NewNav(cfg.Nav.Links, l,
			time.Duration(sc.HoverMs)*time.Millisecond,
			time.Duration(sc.IntroStepMs)*time.Millisecond,
			r.Theme),
		title: NewTitle(cfg.Titles, l, r.Theme),
		cards: NewCards(cfg.Cards, l, time.Duration(sc.CardMs)*time.Millisecond, r.Theme),
		hud:   NewHUD(r),
	}
	if err := p.Show(cfg.Variant); err != nil {
		p.nav.Close()
		p.title.Close()
		p.cards.Close()
		return nil, err
	}
	return p, nil
}

// Variant returns the active variant name.
func (p *Page) Variant() string {
	return p.variant
}

// Show replaces the background engine with one running variant.
func (p *Page) Show(variant string) error {
	v, ok := p.cfg.Variants[variant]
	if !ok {
		return fmt.Errorf("unknown variant %q", variant)
	}
	opts, err := engine.OptionsFromConfig(v)
	if err != nil {
		return fmt.Errorf("variant %s: %w", variant, err)
	}
	opts.Rand = p.rng
	opts.Collector = p.opts.Collector
	opts.Perf = p.opts.Perf
	opts.OnStats = p.opts.OnStats
	opts.OnSnapshot = func(points []r2.Vec) {
		p.cards.SetPoints(points)
		if p.opts.OnSnapshot != nil {
			p.opts.OnSnapshot(points)
		}
	}

	e, err := engine.New(WindowCanvas{}, p.loop, opts)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	if p.engine != nil {
		p.engine.Dispose()
	}
	p.engine = e
	p.variant = variant
	p.nav.SetActive(variant)
	p.cards.SetPoints(nil)

	if v.ShowTitle && !p.titleStarted {
		p.title.Start()
		p.titleStarted = true
	}
	slog.Info("page shown", "variant", variant)
	return nil
}

// Engine returns the running engine.
func (p *Page) Engine() *engine.Engine {
	return p.engine
}

// Update processes input for this frame.
func (p *Page) Update() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		p.hud.Toggle()
	}

	ptr := p.input.Poll(p.loop)
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	v := p.cfg.Variants[p.variant]

	p.nav.Layout(w, MeasureText)
	p.nav.Hover(ptr.X, ptr.Y, ptr.Inside)

	p.cards.Layout(w, h)
	p.cards.Hover(ptr.X, ptr.Y, ptr.Inside && v.ShowCards)

	if !ptr.Clicked {
		return
	}
	link, ok := p.nav.Hit(ptr.X, ptr.Y)
	if !ok || link.Variant == "" || link.Variant == p.variant {
		return
	}
	if err := p.Show(link.Variant); err != nil {
		slog.Error("failed to switch page", "variant", link.Variant, "error", err)
	}
}

// Draw renders one frame: the engine's background first, then the overlays.
func (p *Page) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	p.loop.Frame()

	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	v := p.cfg.Variants[p.variant]
	if v.ShowCards {
		p.cards.Draw(p.renderer)
	}
	if v.ShowTitle {
		p.title.Draw(p.renderer, w, h, MeasureText)
	}
	p.nav.Draw(p.renderer)

	pointer := false
	if prox := p.engine.Proximity(); prox != nil {
		_, pointer = prox.Pointer()
	}
	p.hud.Draw(HUDData{
		Variant:     p.variant,
		Particles:   p.engine.Field().Count(),
		Connections: p.engine.Graph().Len(),
		Frame:       p.engine.Frames(),
		FPS:         rl.GetFPS(),
		Pointer:     pointer,
	}, h)
	p.hud.DrawControls(h, "[H] HUD  [F11] Fullscreen  click a link to switch page")
}

// Close disposes the engine and cancels every pending scramble.
func (p *Page) Close() {
	if p.engine != nil {
		p.engine.Dispose()
	}
	p.nav.Close()
	p.title.Close()
	p.cards.Close()
}

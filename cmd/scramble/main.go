// Terminal scramble demo - the navigation links and rotating headline drawn
// with tcell. Hover a link with the mouse to scramble it.
//
// Usage: go run ./cmd/scramble
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/scramble"
)

const frameInterval = time.Second / 30

// label is a row of terminal cells.
type label struct {
	text string
	x, y int
}

func (l *label) Text() string { return l.text }

func (l *label) SetText(s string) { l.text = s }

func (l *label) width() int { return len([]rune(l.text)) }

func (l *label) contains(x, y int) bool {
	return y == l.y && x >= l.x && x < l.x+l.width()
}

type link struct {
	label *label
	hover *scramble.Hover
}

type demo struct {
	screen tcell.Screen
	loop   *loop.Loop
	cancel context.CancelFunc

	links   []link
	title   *label
	rotator *scramble.Rotator
	titleS  *scramble.Scrambler
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := newDemo(cfg, screen, loop.New(time.Now()), cancel)
	defer d.close()

	// tcell blocks in PollEvent, so events are handed to the loop goroutine
	inbox := make(chan func(), 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			inbox <- func() { d.handle(ev) }
		}
	}()

	if err := d.loop.Run(ctx, frameInterval, inbox); err != nil && err != context.Canceled {
		slog.Error("loop stopped", "error", err)
	}
}

func newDemo(cfg *config.Config, screen tcell.Screen, l *loop.Loop, cancel context.CancelFunc) *demo {
	d := &demo{screen: screen, loop: l, cancel: cancel}
	sc := cfg.Scrambler

	for i, nl := range cfg.Nav.Links {
		lb := &label{text: nl.Label}
		h := scramble.NewHover(scramble.New(lb, l), time.Duration(sc.HoverMs)*time.Millisecond)
		h.ScheduleIntro(time.Duration(i*sc.IntroStepMs) * time.Millisecond)
		d.links = append(d.links, link{label: lb, hover: h})
	}

	first := ""
	if len(cfg.Titles.Items) > 0 {
		first = cfg.Titles.Items[0]
	}
	d.title = &label{text: first}
	d.titleS = scramble.New(d.title, l)
	d.rotator = scramble.NewRotator(d.titleS, cfg.Titles.Items,
		time.Duration(cfg.Titles.IntervalMs)*time.Millisecond,
		time.Duration(cfg.Titles.DurationMs)*time.Millisecond)
	d.rotator.Start()

	d.layout()
	l.RequestFrame(d.draw)
	return d
}

// layout right-aligns the links on the first row and centres the title.
// Positions come from the original text so scrambling never moves a label.
func (d *demo) layout() {
	w, h := d.screen.Size()
	x := w - 2
	for i := len(d.links) - 1; i >= 0; i-- {
		lk := d.links[i]
		x -= len([]rune(lk.hover.Scrambler().OriginalText()))
		lk.label.x, lk.label.y = x, 1
		x -= 4
	}
	d.title.x = (w - len([]rune(d.titleS.OriginalText()))) / 2
	d.title.y = h / 2
}

func (d *demo) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			d.cancel()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		for _, lk := range d.links {
			lk.hover.SetHovered(lk.label.contains(x, y))
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
}

func (d *demo) draw(time.Time) {
	d.layout()
	d.screen.Clear()

	linkStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	hoverStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x32, 0xc8, 0xf4))
	for _, lk := range d.links {
		style := linkStyle
		if lk.hover.Hovered() {
			style = hoverStyle
		}
		put(d.screen, lk.label, style)
	}
	put(d.screen, d.title, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	d.screen.Show()
	d.loop.RequestFrame(d.draw)
}

func put(s tcell.Screen, l *label, style tcell.Style) {
	for i, r := range []rune(l.text) {
		s.SetContent(l.x+i, l.y, r, nil, style)
	}
}

func (d *demo) close() {
	for _, lk := range d.links {
		lk.hover.Close()
	}
	d.rotator.Stop()
	d.titleS.Close()
}

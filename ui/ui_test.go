package ui

import (
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/scramble"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// monospace measures 10 pixels per byte regardless of size.
func monospace(text string, _ int32) float64 {
	return float64(len(text)) * 10
}

func seeded() scramble.Option {
	return scramble.WithRand(rand.New(rand.NewSource(1)))
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{109, 69, true},
		{110, 40, false},
		{50, 70, false},
		{9, 40, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if c := r.Center(); c != (r2.Vec{X: 60, Y: 45}) {
		t.Errorf("Center = %v", c)
	}
}

func TestNavLayoutAndHover(t *testing.T) {
	l := loop.New(epoch)
	theme := DefaultTheme()
	links := []config.NavLink{
		{Label: "Home", Variant: "web"},
		{Label: "About", Variant: "constellation"},
		{Label: "Projects"},
	}
	nav := NewNav(links, l, 150*time.Millisecond, 500*time.Millisecond, theme, seeded())
	defer nav.Close()
	nav.Layout(1000, monospace)

	items := nav.Items()
	last := items[2].Bounds
	if got := last.X + last.W; got != 1000-theme.Padding {
		t.Errorf("last link ends at %v, want %v", got, 1000-theme.Padding)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Bounds.X+items[i-1].Bounds.W >= items[i].Bounds.X {
			t.Errorf("links %d and %d overlap", i-1, i)
		}
	}

	// Let the staggered intros finish
	l.Advance(2 * time.Second)
	for _, it := range items {
		if it.Label.Text() != it.Link.Label {
			t.Fatalf("label %q after intro, want %q", it.Label.Text(), it.Link.Label)
		}
	}

	c := items[1].Bounds.Center()
	nav.Hover(c.X, c.Y, true)
	if items[1].Hover.Scrambler().State() != scramble.StateScrambling {
		t.Errorf("hovered link state = %v, want scrambling", items[1].Hover.Scrambler().State())
	}
	if items[0].Hover.Hovered() {
		t.Error("unrelated link marked hovered")
	}

	link, ok := nav.Hit(c.X, c.Y)
	if !ok || link.Variant != "constellation" {
		t.Errorf("Hit = %+v, %v", link, ok)
	}

	nav.Hover(c.X, c.Y, false)
	if items[1].Label.Text() != "About" {
		t.Errorf("label after leave = %q, want About", items[1].Label.Text())
	}
}

func TestNavIntroStagger(t *testing.T) {
	l := loop.New(epoch)
	links := []config.NavLink{{Label: "Home"}, {Label: "About"}}
	nav := NewNav(links, l, 150*time.Millisecond, 500*time.Millisecond, DefaultTheme(), seeded())
	defer nav.Close()

	l.Advance(0)
	items := nav.Items()
	if items[0].Hover.Scrambler().State() != scramble.StateScrambling {
		t.Error("first link should start its intro immediately")
	}
	if items[1].Hover.Scrambler().State() != scramble.StateIdle {
		t.Error("second link started early")
	}
	l.Advance(500 * time.Millisecond)
	if items[1].Hover.Scrambler().State() != scramble.StateScrambling {
		t.Error("second link should start after 500ms")
	}
}

func TestCardsHoverAndConnectors(t *testing.T) {
	l := loop.New(epoch)
	theme := DefaultTheme()
	cfgs := []config.CardConfig{
		{Title: "Property", Lines: []string{"a", "b"}, Top: 0.2, Left: 0.2},
		{Title: "Contact", Lines: []string{"c"}, Top: 0.3, Left: 0.6},
	}
	cards := NewCards(cfgs, l, 800*time.Millisecond, theme, seeded())
	defer cards.Close()
	cards.Layout(1000, 1000)

	all := cards.Cards()
	if all[0].Bounds.X != 200 || all[0].Bounds.Y != 200 {
		t.Errorf("card 0 at %v, want (200, 200)", all[0].Bounds)
	}
	collapsed := all[0].Bounds.H

	c := all[0].Bounds.Center()
	cards.Hover(c.X, c.Y, true)
	if cards.Active() != 0 {
		t.Fatalf("Active = %d, want 0", cards.Active())
	}
	if all[0].Bounds.H <= collapsed {
		t.Errorf("hovered card height %v, want more than %v", all[0].Bounds.H, collapsed)
	}
	if all[0].Hover.Scrambler().State() != scramble.StateScrambling {
		t.Error("hovered card title should scramble")
	}

	cards.Hover(0, 0, true)
	if cards.Active() != -1 || all[0].Title.Text() != "Property" {
		t.Errorf("after leave active %d title %q", cards.Active(), all[0].Title.Text())
	}
	if all[0].Bounds.H != collapsed {
		t.Errorf("card did not collapse: %v", all[0].Bounds.H)
	}

	if got := cards.Connectors(); got != nil {
		t.Errorf("connectors without snapshot = %v", got)
	}
	points := []r2.Vec{{X: 0, Y: 0}, {X: 320, Y: 240}, {X: 900, Y: 900}}
	cards.SetPoints(points)
	conns := cards.Connectors()
	if len(conns) != 2 {
		t.Fatalf("connectors = %d, want 2", len(conns))
	}
	if conns[0].To != points[1] {
		t.Errorf("card 0 connects to %v, want %v", conns[0].To, points[1])
	}
	if conns[0].From != all[0].Bounds.Center() {
		t.Errorf("connector starts at %v, want card centre", conns[0].From)
	}
}

func TestTitleRotates(t *testing.T) {
	l := loop.New(epoch)
	cfg := config.TitlesConfig{
		Items:      []string{"Full-stack Engineer", "Tech Enthusiast", "Continuous Learner"},
		IntervalMs: 4000,
		DurationMs: 800,
	}
	title := NewTitle(cfg, l, DefaultTheme(), seeded())
	defer title.Close()

	if title.Text() != "Full-stack Engineer" {
		t.Fatalf("initial title = %q", title.Text())
	}
	title.Start()
	l.Advance(4800 * time.Millisecond)
	if title.Text() != "Tech Enthusiast" {
		t.Errorf("title after one rotation = %q, want Tech Enthusiast", title.Text())
	}
}

package ui

import (
	"time"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/scramble"
)

// Title is the rotating headline in the middle of the home page.
type Title struct {
	label   *Label
	scr     *scramble.Scrambler
	rotator *scramble.Rotator
	theme   Theme
}

// NewTitle creates the headline showing the first configured title.
func NewTitle(cfg config.TitlesConfig, timers scramble.Timers, theme Theme, opts ...scramble.Option) *Title {
	first := ""
	if len(cfg.Items) > 0 {
		first = cfg.Items[0]
	}
	label := NewLabel(first)
	scr := scramble.New(label, timers, opts...)
	interval := time.Duration(cfg.IntervalMs) * time.Millisecond
	duration := time.Duration(cfg.DurationMs) * time.Millisecond
	return &Title{
		label:   label,
		scr:     scr,
		rotator: scramble.NewRotator(scr, cfg.Items, interval, duration),
		theme:   theme,
	}
}

// Start begins rotating.
func (t *Title) Start() {
	t.rotator.Start()
}

// Text returns the displayed headline.
func (t *Title) Text() string {
	return t.label.Text()
}

// Rotator returns the underlying rotator.
func (t *Title) Rotator() *scramble.Rotator {
	return t.rotator
}

// Draw renders the headline centred in a width x height window. The anchor is
// computed from the settled title so scrambled frames do not jitter.
func (t *Title) Draw(r *Renderer, width, height float64, measure MeasureFunc) {
	size := t.theme.HeadlineSize
	w := measure(t.scr.OriginalText(), size)
	x := (width - w) / 2
	y := (height - float64(size)) / 2
	r.DrawText(t.label.Text(), x, y, size, t.theme.Headline)
}

// Close stops rotating and cancels pending scrambles.
func (t *Title) Close() {
	t.rotator.Stop()
	t.scr.Close()
}

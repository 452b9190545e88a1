// Package scramble implements the character-reveal animation used on UI labels.
//
// A Scrambler temporarily replaces a label's text with random glyphs and
// reveals the true text left to right over a fixed duration. It lives on a
// single-threaded loop: every transition runs either inside a timer tick or
// inside a direct method call, never concurrently.
package scramble

import (
	"math/rand"
	"time"

	"github.com/catyyy/hp-catyyy/loop"
)

// TextSurface is a text-bearing UI element.
type TextSurface interface {
	Text() string
	SetText(string)
}

// Timers schedules one-shot callbacks on the host loop.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) loop.TimerID
	CancelTimer(id loop.TimerID)
}

// State is the scrambler's animation state.
type State uint8

const (
	StateIdle       State = iota // Surface shows the original text
	StateScrambling              // Timer is revealing the text
	StateHeld                    // Reveal finished, scrambled rendering kept on screen
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScrambling:
		return "scrambling"
	case StateHeld:
		return "held"
	}
	return "unknown"
}

// Iteration counts and the duration that separates them.
const (
	ShortIterations = 8
	LongIterations  = 15
	LongThreshold   = 200 * time.Millisecond
	DefaultDuration = 150 * time.Millisecond

	firstGlyph = 33
	lastGlyph  = 126
	glyphCount = lastGlyph - firstGlyph + 1
)

// Iterations returns the number of reveal ticks for a scramble of duration d.
func Iterations(d time.Duration) int {
	if d < LongThreshold {
		return ShortIterations
	}
	return LongIterations
}

// Option configures a Scrambler.
type Option func(*Scrambler)

// WithRand sets the glyph source. Defaults to a time-seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scrambler) { s.rng = rng }
}

// Scrambler is the state machine for one label.
type Scrambler struct {
	surface TextSurface
	timers  Timers
	rng     *rand.Rand

	original string
	state    State

	timer    loop.TimerID
	hasTimer bool

	iteration     int
	maxIterations int
	interval      time.Duration
	keep          bool
}

// New creates a scrambler for surface, capturing its current text as the
// original text.
func New(surface TextSurface, timers Timers, opts ...Option) *Scrambler {
	s := &Scrambler{
		surface:  surface,
		timers:   timers,
		original: surface.Text(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// State returns the current state.
func (s *Scrambler) State() State {
	return s.state
}

// IsScrambled reports whether the surface shows anything but the original text.
func (s *Scrambler) IsScrambled() bool {
	return s.state != StateIdle
}

// OriginalText returns the true text.
func (s *Scrambler) OriginalText() string {
	return s.original
}

// Scramble starts a reveal lasting d. It is a no-op while a reveal is running.
// With keep set, the last scrambled frame stays on screen (StateHeld) instead
// of snapping back to the original text.
func (s *Scrambler) Scramble(d time.Duration, keep bool) {
	if s.state == StateScrambling {
		return
	}
	s.cancelTimer()

	s.state = StateScrambling
	s.iteration = 0
	s.maxIterations = Iterations(d)
	s.interval = d / time.Duration(s.maxIterations)
	s.keep = keep

	s.tick()
}

// Unscramble stops any reveal and shows the original text. Safe in any state.
func (s *Scrambler) Unscramble() {
	s.cancelTimer()
	s.surface.SetText(s.original)
	s.state = StateIdle
}

// UpdateText replaces the original text. A running or held scramble is
// cancelled first and the surface switches straight to the new text; an idle
// surface is left as it is.
func (s *Scrambler) UpdateText(text string) {
	wasScrambled := s.state != StateIdle
	s.cancelTimer()
	s.state = StateIdle
	s.original = text
	if wasScrambled {
		s.surface.SetText(text)
	}
}

// Close cancels any pending tick. Call it when the surface goes away.
func (s *Scrambler) Close() {
	s.cancelTimer()
	s.state = StateIdle
}

func (s *Scrambler) tick() {
	s.hasTimer = false
	if s.state != StateScrambling {
		return
	}
	if s.iteration >= s.maxIterations {
		s.finish()
		return
	}

	s.surface.SetText(s.render(s.iteration))
	s.iteration++
	s.timer = s.timers.AfterFunc(s.interval, s.tick)
	s.hasTimer = true
}

func (s *Scrambler) finish() {
	if s.keep {
		s.state = StateHeld
		return
	}
	s.surface.SetText(s.original)
	s.state = StateIdle
}

// render returns the original text with every rune at or past the reveal
// front replaced by a random glyph. Spaces are never replaced.
func (s *Scrambler) render(iteration int) string {
	runes := []rune(s.original)
	n := float64(len(runes))
	reveal := float64(iteration) / float64(s.maxIterations)

	for j, r := range runes {
		if r == ' ' {
			continue
		}
		if reveal > float64(j)/n {
			continue
		}
		runes[j] = rune(firstGlyph + s.rng.Intn(glyphCount))
	}
	return string(runes)
}

func (s *Scrambler) cancelTimer() {
	if s.hasTimer {
		s.timers.CancelTimer(s.timer)
		s.hasTimer = false
	}
}

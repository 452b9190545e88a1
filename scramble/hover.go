package scramble

import (
	"time"

	"github.com/catyyy/hp-catyyy/loop"
)

// Hover binds a scrambler to pointer enter/leave on its label: entering
// starts a reveal, leaving restores the text at once.
type Hover struct {
	s        *Scrambler
	duration time.Duration
	hovered  bool

	intro    loop.TimerID
	hasIntro bool
}

// NewHover creates a hover binding that scrambles for duration on enter.
func NewHover(s *Scrambler, duration time.Duration) *Hover {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Hover{s: s, duration: duration}
}

// Scrambler returns the bound scrambler.
func (h *Hover) Scrambler() *Scrambler {
	return h.s
}

// Hovered reports whether the pointer is over the label.
func (h *Hover) Hovered() bool {
	return h.hovered
}

// SetHovered feeds the latest hit-test result. Only transitions act.
func (h *Hover) SetHovered(on bool) {
	if on == h.hovered {
		return
	}
	h.hovered = on
	if on {
		h.s.Scramble(h.duration, false)
		return
	}
	h.s.Unscramble()
}

// ScheduleIntro plays one reveal after delay, used to stagger labels on mount.
func (h *Hover) ScheduleIntro(delay time.Duration) {
	h.cancelIntro()
	h.intro = h.s.timers.AfterFunc(delay, func() {
		h.hasIntro = false
		h.s.Scramble(h.duration, false)
	})
	h.hasIntro = true
}

// Close cancels the intro and any running reveal.
func (h *Hover) Close() {
	h.cancelIntro()
	h.s.Close()
}

func (h *Hover) cancelIntro() {
	if h.hasIntro {
		h.s.timers.CancelTimer(h.intro)
		h.hasIntro = false
	}
}

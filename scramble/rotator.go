package scramble

import (
	"time"

	"github.com/catyyy/hp-catyyy/loop"
)

// Rotator cycles a headline through a list of titles. Every interval it
// switches the scrambler to the next title, holds a scrambled reveal for the
// duration, then settles on the plain text.
type Rotator struct {
	s        *Scrambler
	items    []string
	index    int
	interval time.Duration
	duration time.Duration

	next      loop.TimerID
	hasNext   bool
	settle    loop.TimerID
	hasSettle bool
}

// NewRotator creates a rotator starting at items[0].
func NewRotator(s *Scrambler, items []string, interval, duration time.Duration) *Rotator {
	return &Rotator{
		s:        s,
		items:    append([]string(nil), items...),
		interval: interval,
		duration: duration,
	}
}

// Index returns the index of the settled title.
func (r *Rotator) Index() int {
	return r.index
}

// Current returns the settled title.
func (r *Rotator) Current() string {
	if len(r.items) == 0 {
		return ""
	}
	return r.items[r.index]
}

// Start schedules the first rotation. It does nothing without titles.
func (r *Rotator) Start() {
	if len(r.items) == 0 || r.hasNext {
		return
	}
	r.schedule()
}

// Stop cancels pending rotations. The scrambler keeps its current state.
func (r *Rotator) Stop() {
	if r.hasNext {
		r.s.timers.CancelTimer(r.next)
		r.hasNext = false
	}
	if r.hasSettle {
		r.s.timers.CancelTimer(r.settle)
		r.hasSettle = false
	}
}

func (r *Rotator) schedule() {
	r.next = r.s.timers.AfterFunc(r.interval, r.rotate)
	r.hasNext = true
}

func (r *Rotator) rotate() {
	r.hasNext = false
	nextIndex := (r.index + 1) % len(r.items)
	title := r.items[nextIndex]

	if r.s.IsScrambled() {
		r.s.Unscramble()
	}
	r.s.UpdateText(title)
	r.s.Scramble(r.duration, true)

	if r.hasSettle {
		r.s.timers.CancelTimer(r.settle)
	}
	r.settle = r.s.timers.AfterFunc(r.duration, func() {
		r.hasSettle = false
		r.index = nextIndex
		r.s.surface.SetText(title)
		r.s.Unscramble()
	})
	r.hasSettle = true

	r.schedule()
}

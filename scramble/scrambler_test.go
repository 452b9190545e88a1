package scramble

import (
	"math/rand"
	"testing"
	"time"

	"github.com/catyyy/hp-catyyy/loop"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// label records every text written to it.
type label struct {
	text   string
	writes []string
}

func (l *label) Text() string { return l.text }

func (l *label) SetText(s string) {
	l.text = s
	l.writes = append(l.writes, s)
}

func newScrambler(text string) (*Scrambler, *label, *loop.Loop) {
	lbl := &label{text: text}
	l := loop.New(epoch)
	s := New(lbl, l, WithRand(rand.New(rand.NewSource(1))))
	return s, lbl, l
}

func TestIterations(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 8},
		{150 * time.Millisecond, 8},
		{199 * time.Millisecond, 8},
		{200 * time.Millisecond, 15},
		{800 * time.Millisecond, 15},
	}
	for _, tt := range tests {
		if got := Iterations(tt.d); got != tt.want {
			t.Errorf("Iterations(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestUnscrambleRightAfterScramble(t *testing.T) {
	s, lbl, l := newScrambler("Tech Enthusiast")

	s.Scramble(800*time.Millisecond, true)
	if s.State() != StateScrambling {
		t.Fatalf("state = %v, want scrambling", s.State())
	}
	s.Unscramble()

	if lbl.text != "Tech Enthusiast" {
		t.Errorf("text = %q, want %q", lbl.text, "Tech Enthusiast")
	}
	if s.IsScrambled() {
		t.Error("IsScrambled after Unscramble")
	}
	if _, timers := l.Pending(); timers != 0 {
		t.Errorf("pending timers = %d, want 0", timers)
	}
}

func TestUnscrambleAtAnyProgress(t *testing.T) {
	for _, step := range []time.Duration{0, 10, 60, 200, 500, 900} {
		s, lbl, l := newScrambler("Full-stack Engineer")
		s.Scramble(800*time.Millisecond, true)
		l.Advance(step * time.Millisecond)
		s.Unscramble()
		if lbl.text != "Full-stack Engineer" {
			t.Errorf("after %dms text = %q", step, lbl.text)
		}
	}
}

func TestScrambleWhileScramblingIsNoop(t *testing.T) {
	s, lbl, l := newScrambler("Continuous Learner")

	s.Scramble(150*time.Millisecond, false)
	_, timers := l.Pending()
	writes := len(lbl.writes)

	s.Scramble(150*time.Millisecond, false)
	s.Scramble(800*time.Millisecond, true)

	if _, got := l.Pending(); got != timers {
		t.Errorf("pending timers = %d, want %d", got, timers)
	}
	if len(lbl.writes) != writes {
		t.Errorf("writes = %d, want %d", len(lbl.writes), writes)
	}
}

func TestShortScrambleRestoresText(t *testing.T) {
	s, lbl, l := newScrambler("About")

	s.Scramble(150*time.Millisecond, false)
	l.Advance(time.Second)

	// eight rendered frames, then the restore
	if len(lbl.writes) != ShortIterations+1 {
		t.Errorf("writes = %d, want %d", len(lbl.writes), ShortIterations+1)
	}
	if lbl.text != "About" {
		t.Errorf("text = %q, want %q", lbl.text, "About")
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestKeepScrambledHolds(t *testing.T) {
	s, lbl, l := newScrambler("Hello World!")

	s.Scramble(800*time.Millisecond, true)
	l.Advance(time.Second)

	if len(lbl.writes) != LongIterations {
		t.Errorf("writes = %d, want %d", len(lbl.writes), LongIterations)
	}
	if s.State() != StateHeld || !s.IsScrambled() {
		t.Errorf("state = %v, want held", s.State())
	}
	if _, timers := l.Pending(); timers != 0 {
		t.Errorf("held scrambler left %d timers", timers)
	}

	s.Unscramble()
	if lbl.text != "Hello World!" {
		t.Errorf("text = %q", lbl.text)
	}
}

func TestRevealLeftToRight(t *testing.T) {
	const text = "Tech Enthusiast"
	s, lbl, l := newScrambler(text)

	s.Scramble(150*time.Millisecond, false)
	interval := 150 * time.Millisecond / ShortIterations

	for i := 0; i < ShortIterations; i++ {
		got := []rune(lbl.text)
		want := []rune(text)
		if len(got) != len(want) {
			t.Fatalf("tick %d: length %d, want %d", i, len(got), len(want))
		}
		for j := range want {
			revealed := float64(i)/ShortIterations > float64(j)/float64(len(want))
			switch {
			case want[j] == ' ' && got[j] != ' ':
				t.Errorf("tick %d: space at %d replaced by %q", i, j, got[j])
			case revealed && got[j] != want[j]:
				t.Errorf("tick %d: revealed rune %d = %q, want %q", i, j, got[j], want[j])
			case got[j] < firstGlyph || got[j] > lastGlyph:
				if got[j] != ' ' {
					t.Errorf("tick %d: rune %q outside glyph set", i, got[j])
				}
			}
		}
		l.Advance(interval)
	}
}

func TestUpdateTextCycle(t *testing.T) {
	s, lbl, l := newScrambler("Home")

	s.Scramble(800*time.Millisecond, true)
	l.Advance(100 * time.Millisecond)

	s.UpdateText("X")
	if s.State() != StateIdle {
		t.Errorf("state after UpdateText = %v, want idle", s.State())
	}
	if _, timers := l.Pending(); timers != 0 {
		t.Errorf("UpdateText left %d timers", timers)
	}
	if lbl.text != "X" {
		t.Errorf("text after UpdateText = %q, want X", lbl.text)
	}

	s.Scramble(800*time.Millisecond, false)
	l.Advance(time.Second)
	s.Unscramble()

	if lbl.text != "X" {
		t.Errorf("text = %q, want X", lbl.text)
	}
	if s.OriginalText() != "X" {
		t.Errorf("OriginalText = %q, want X", s.OriginalText())
	}
}

func TestUpdateTextWhileIdleLeavesSurface(t *testing.T) {
	s, lbl, _ := newScrambler("Home")
	s.UpdateText("Projects")

	if lbl.text != "Home" {
		t.Errorf("idle surface text = %q, want Home", lbl.text)
	}
	s.Unscramble()
	if lbl.text != "Projects" {
		t.Errorf("text = %q, want Projects", lbl.text)
	}
}

func TestCloseCancelsTimer(t *testing.T) {
	s, lbl, l := newScrambler("Skills")
	s.Scramble(800*time.Millisecond, false)
	writes := len(lbl.writes)

	s.Close()
	l.Advance(time.Second)

	if len(lbl.writes) != writes {
		t.Errorf("timer fired after Close")
	}
	if _, timers := l.Pending(); timers != 0 {
		t.Errorf("pending timers = %d, want 0", timers)
	}
}

func TestHover(t *testing.T) {
	s, lbl, l := newScrambler("Projects")
	h := NewHover(s, 0)

	h.SetHovered(true)
	if s.State() != StateScrambling {
		t.Fatalf("state on enter = %v, want scrambling", s.State())
	}
	h.SetHovered(true)
	if _, timers := l.Pending(); timers != 1 {
		t.Errorf("pending timers = %d, want 1", timers)
	}

	h.SetHovered(false)
	if lbl.text != "Projects" || s.State() != StateIdle {
		t.Errorf("leave: text %q state %v", lbl.text, s.State())
	}

	h.ScheduleIntro(500 * time.Millisecond)
	l.Advance(499 * time.Millisecond)
	if s.State() != StateIdle {
		t.Fatal("intro ran early")
	}
	l.Advance(time.Millisecond)
	if s.State() != StateScrambling {
		t.Errorf("intro state = %v, want scrambling", s.State())
	}

	h.Close()
	if _, timers := l.Pending(); timers != 0 {
		t.Errorf("pending timers after Close = %d, want 0", timers)
	}
}

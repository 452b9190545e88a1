// Package loop provides the single-threaded host event loop that drives the
// background engine and the text scramblers.
//
// A Loop owns three kinds of scheduled work: per-frame callbacks, one-shot
// timers, and viewport listeners (resize and pointer). Everything runs on the
// goroutine that calls Advance, Frame or Run, so callbacks never race each
// other and need no locking. A Loop must not be touched from other goroutines;
// hand work to it through the Run inbox instead.
package loop

import (
	"context"
	"time"
)

// FrameID identifies a pending frame callback.
type FrameID uint64

// TimerID identifies a pending timer.
type TimerID uint64

// ListenerID identifies a registered resize or pointer listener.
type ListenerID uint64

// PointerEvent is a pointer position in client (window) coordinates.
// Left is set when the pointer leaves the viewport; X and Y are then stale.
type PointerEvent struct {
	X, Y float64
	Left bool
}

type resizeListener struct {
	id ListenerID
	fn func(w, h int)
}

type pointerListener struct {
	id ListenerID
	fn func(PointerEvent)
}

// Loop is a cooperative scheduler with its own notion of "now".
type Loop struct {
	now    time.Time
	nextID uint64

	frames     map[FrameID]func(time.Time)
	frameOrder []FrameID
	frameCount uint64

	timers     timerHeap
	timerIndex map[TimerID]*timer

	resize  []resizeListener
	pointer []pointerListener
}

// New creates a loop whose clock starts at start.
func New(start time.Time) *Loop {
	return &Loop{
		now:        start,
		frames:     make(map[FrameID]func(time.Time)),
		timerIndex: make(map[TimerID]*timer),
	}
}

func (l *Loop) id() uint64 {
	l.nextID++
	return l.nextID
}

// Now returns the loop clock.
func (l *Loop) Now() time.Time {
	return l.now
}

// FrameCount returns how many times Frame has run.
func (l *Loop) FrameCount() uint64 {
	return l.frameCount
}

// RequestFrame schedules fn for the next Frame call.
func (l *Loop) RequestFrame(fn func(now time.Time)) FrameID {
	id := FrameID(l.id())
	l.frames[id] = fn
	l.frameOrder = append(l.frameOrder, id)
	return id
}

// CancelFrame drops a pending frame callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	delete(l.frames, id)
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t := &timer{
		id: TimerID(l.id()),
		at: l.now.Add(d),
		fn: fn,
	}
	l.timers.push(t)
	l.timerIndex[t.id] = t
	return t.id
}

// CancelTimer drops a pending timer. Unknown or already fired ids are ignored.
func (l *Loop) CancelTimer(id TimerID) {
	t, ok := l.timerIndex[id]
	if !ok {
		return
	}
	delete(l.timerIndex, id)
	l.timers.remove(t)
}

// Pending returns the number of pending frame callbacks and timers.
func (l *Loop) Pending() (frames, timers int) {
	return len(l.frames), len(l.timerIndex)
}

// OnResize registers fn for viewport resize notifications.
func (l *Loop) OnResize(fn func(w, h int)) ListenerID {
	id := ListenerID(l.id())
	l.resize = append(l.resize, resizeListener{id: id, fn: fn})
	return id
}

// OnPointer registers fn for pointer notifications.
func (l *Loop) OnPointer(fn func(PointerEvent)) ListenerID {
	id := ListenerID(l.id())
	l.pointer = append(l.pointer, pointerListener{id: id, fn: fn})
	return id
}

// RemoveListener unregisters a resize or pointer listener. Unknown ids are ignored.
func (l *Loop) RemoveListener(id ListenerID) {
	for i, r := range l.resize {
		if r.id == id {
			l.resize = append(l.resize[:i:i], l.resize[i+1:]...)
			return
		}
	}
	for i, p := range l.pointer {
		if p.id == id {
			l.pointer = append(l.pointer[:i:i], l.pointer[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of registered listeners.
func (l *Loop) Listeners() int {
	return len(l.resize) + len(l.pointer)
}

// DispatchResize notifies resize listeners in registration order.
func (l *Loop) DispatchResize(w, h int) {
	for _, r := range append([]resizeListener(nil), l.resize...) {
		r.fn(w, h)
	}
}

// DispatchPointer notifies pointer listeners in registration order.
func (l *Loop) DispatchPointer(ev PointerEvent) {
	for _, p := range append([]pointerListener(nil), l.pointer...) {
		p.fn(ev)
	}
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// The clock reads each timer's deadline while its callback runs. Timers
// scheduled by a callback fire in the same call if they fall due within d.
func (l *Loop) Advance(d time.Duration) {
	target := l.now.Add(d)
	for {
		t := l.timers.peek()
		if t == nil || t.at.After(target) {
			break
		}
		l.timers.pop()
		delete(l.timerIndex, t.id)
		if t.at.After(l.now) {
			l.now = t.at
		}
		t.fn()
	}
	if target.After(l.now) {
		l.now = target
	}
}

// Frame runs every frame callback requested before the call, in request order.
// Callbacks requested while the frame runs wait for the next Frame.
// Returns the number of callbacks run.
func (l *Loop) Frame() int {
	order := l.frameOrder
	l.frameOrder = nil
	l.frameCount++

	ran := 0
	for _, id := range order {
		fn, ok := l.frames[id]
		if !ok {
			continue
		}
		delete(l.frames, id)
		fn(l.now)
		ran++
	}
	return ran
}

// Run drives the loop in real time: every interval it advances the clock by
// the wall time elapsed and runs a frame. Functions received on inbox run on
// the loop goroutine between frames; inbox may be nil. Run returns when ctx is
// done.
func (l *Loop) Run(ctx context.Context, interval time.Duration, inbox <-chan func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-inbox:
			fn()
		case now := <-ticker.C:
			l.Advance(now.Sub(last))
			last = now
			l.Frame()
		}
	}
}

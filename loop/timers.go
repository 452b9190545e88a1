package loop

import (
	"container/heap"
	"time"
)

type timer struct {
	id    TimerID
	at    time.Time
	fn    func()
	index int
}

// timerHeap orders timers by deadline, then by scheduling order.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].id < h[j].id
	}
	return h[i].at.Before(h[j].at)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

func (h *timerHeap) push(t *timer) {
	heap.Push(h, t)
}

func (h *timerHeap) pop() *timer {
	return heap.Pop(h).(*timer)
}

func (h *timerHeap) peek() *timer {
	if len(*h) == 0 {
		return nil
	}
	return (*h)[0]
}

func (h *timerHeap) remove(t *timer) {
	if t.index < 0 || t.index >= len(*h) || (*h)[t.index] != t {
		return
	}
	heap.Remove(h, t.index)
}

// Package clock runs callbacks against simulated time.
//
// Nothing here reads the wall clock: time only moves when the owner calls
// Advance, usually once per frame. That keeps minigames and cinematics
// deterministic under test and lets a single CancelAll tear everything down.
package clock

import (
	"container/heap"
	"time"
)

// Timer is a scheduled callback. Repeating timers have a non-zero period.
type Timer struct {
	at     time.Duration
	period time.Duration
	seq    uint64
	fn     func()
	index  int // heap index, -1 once removed
}

// Active reports whether the timer is still queued.
func (t *Timer) Active() bool { return t != nil && t.index >= 0 }

// timerQueue is a min-heap ordered by due time, then by scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler owns a set of timers over a simulated clock.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time elapsed since creation.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of queued timers.
func (s *Scheduler) Pending() int { return len(s.queue) }

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.schedule(d, 0, fn)
}

// Every runs fn each period, starting one period from now.
// A non-positive period is treated as a one-shot After.
func (s *Scheduler) Every(period time.Duration, fn func()) *Timer {
	if period <= 0 {
		return s.After(period, fn)
	}
	return s.schedule(period, period, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{at: s.now + d, period: period, seq: s.seq, fn: fn, index: -1}
	heap.Push(&s.queue, t)
	return t
}

// Cancel removes t if it is still queued.
func (s *Scheduler) Cancel(t *Timer) {
	if !t.Active() || t.index >= len(s.queue) || s.queue[t.index] != t {
		return
	}
	heap.Remove(&s.queue, t.index)
}

// CancelAll drops every queued timer. Safe to call from inside a callback.
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.index = -1
	}
	s.queue = s.queue[:0]
}

// Advance moves the clock forward by dt, firing due timers in order.
// Repeating timers are re-queued before their callback runs, so a callback
// may cancel its own timer.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt
	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*Timer)
		s.now = t.at
		if t.period > 0 {
			s.seq++
			t.at += t.period
			t.seq = s.seq
			heap.Push(&s.queue, t)
		}
		t.fn()
	}
	s.now = target
}

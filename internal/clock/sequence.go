package clock

import "time"

// Step is one entry of a timeline. Delay is measured from the moment the
// sequence starts playing, not from the previous step.
type Step struct {
	Delay  time.Duration
	Effect func()
}

// Sequence is a timeline of steps queued on a scheduler.
type Sequence struct {
	sched  *Scheduler
	timers []*Timer
	fired  int
}

// Play queues every step on s and returns a handle that can cancel the rest.
func Play(s *Scheduler, steps []Step) *Sequence {
	seq := &Sequence{sched: s, timers: make([]*Timer, 0, len(steps))}
	for _, st := range steps {
		effect := st.Effect
		seq.timers = append(seq.timers, s.After(st.Delay, func() {
			seq.fired++
			if effect != nil {
				effect()
			}
		}))
	}
	return seq
}

// Fired returns how many steps have run.
func (q *Sequence) Fired() int { return q.fired }

// Done reports whether every step has run.
func (q *Sequence) Done() bool { return q.fired == len(q.timers) }

// Cancel drops the steps that have not fired yet.
func (q *Sequence) Cancel() {
	for _, t := range q.timers {
		q.sched.Cancel(t)
	}
}

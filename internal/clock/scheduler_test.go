package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnceWhenDue(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.After(100*time.Millisecond, func() { calls++ })

	s.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, calls)

	s.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Pending())
}

func TestEveryRepeatsWithinOneAdvance(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Every(time.Second, func() { at = append(at, s.Now()) })

	s.Advance(3500 * time.Millisecond)
	require.Len(t, at, 3)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, at)
	assert.Equal(t, 3500*time.Millisecond, s.Now())
}

func TestTimersFireInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "c") })
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(100*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCancelAllFromCallbackStopsLaterTimers(t *testing.T) {
	s := NewScheduler()
	late := false
	s.After(10*time.Millisecond, func() { s.CancelAll() })
	s.After(20*time.Millisecond, func() { late = true })
	s.Every(5*time.Millisecond, func() {})

	s.Advance(time.Second)
	assert.False(t, late)
	assert.Equal(t, 0, s.Pending())
}

func TestRepeatingTimerCanCancelItself(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var tm *Timer
	tm = s.Every(time.Second, func() {
		calls++
		if calls == 2 {
			s.Cancel(tm)
		}
	})

	s.Advance(10 * time.Second)
	assert.Equal(t, 2, calls)
	assert.False(t, tm.Active())
}

func TestSequencePlaysStepsAtOffsets(t *testing.T) {
	s := NewScheduler()
	var got []int
	seq := Play(s, []Step{
		{Delay: 500 * time.Millisecond, Effect: func() { got = append(got, 1) }},
		{Delay: 2000 * time.Millisecond, Effect: func() { got = append(got, 2) }},
		{Delay: 7000 * time.Millisecond, Effect: func() { got = append(got, 3) }},
	})

	s.Advance(2 * time.Second)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 2, seq.Fired())
	assert.False(t, seq.Done())

	s.Advance(5 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, seq.Done())
}

func TestSequenceCancelDropsRemainingSteps(t *testing.T) {
	s := NewScheduler()
	fired := 0
	seq := Play(s, []Step{
		{Delay: time.Second, Effect: func() { fired++ }},
		{Delay: 3 * time.Second, Effect: func() { fired++ }},
	})

	s.Advance(time.Second)
	seq.Cancel()
	s.Advance(time.Minute)

	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.Pending())
}

package game

import (
	"fmt"
	"time"

	"github.com/spacehole-rogue/nebula_nexus/internal/clock"
)

// Cinematic stages.
const (
	StageInit = iota
	StageScan
	StageAnalyze
	StageLocked
)

const cinematicLogLines = 7

// CinematicLength is the running time of the target-acquisition sequence.
const CinematicLength = 7 * time.Second

// Cinematic is the non-interactive target acquisition shown before combat.
type Cinematic struct {
	Details  CombatDetails
	Stage    int
	Lines    []string // newest first
	Complete bool

	seq *clock.Sequence
}

// NewCinematic queues the acquisition timeline on sched. onComplete runs
// when the sequence ends unless it is cancelled first.
func NewCinematic(sched *clock.Scheduler, details CombatDetails, onComplete func()) *Cinematic {
	c := &Cinematic{Details: details}
	c.seq = clock.Play(sched, []clock.Step{
		{Delay: 500 * time.Millisecond, Effect: func() { c.advance(StageScan, "LIDAR SYSTEM: INITIALIZED") }},
		{Delay: 2000 * time.Millisecond, Effect: func() { c.advance(StageAnalyze, "ACOUSTIC SIGNATURE DETECTED") }},
		{Delay: 3000 * time.Millisecond, Effect: func() { c.log(fmt.Sprintf("THREAT LEVEL: %s", details.ThreatLevel)) }},
		{Delay: 5000 * time.Millisecond, Effect: func() { c.advance(StageLocked, "FIRING SOLUTION COMPUTED") }},
		{Delay: CinematicLength, Effect: func() {
			c.Complete = true
			if onComplete != nil {
				onComplete()
			}
		}},
	})
	return c
}

func (c *Cinematic) advance(stage int, line string) {
	c.Stage = stage
	c.log(line)
}

func (c *Cinematic) log(line string) {
	c.Lines = append([]string{"> " + line}, c.Lines...)
	if len(c.Lines) > cinematicLogLines {
		c.Lines = c.Lines[:cinematicLogLines]
	}
}

// Cancel stops the timeline. The completion callback will not run.
func (c *Cinematic) Cancel() {
	c.seq.Cancel()
}

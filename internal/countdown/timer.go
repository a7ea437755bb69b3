package countdown

import (
	"time"

	"github.com/google/uuid"
)

// Timer is the countdown variant currently shown. Exactly one of Stopped,
// Running or Finished is active at a time.
type Timer interface {
	isTimer()
}

// Stopped is the idle state.
type Stopped struct{}

// Running counts down. Remaining never goes below zero.
type Running struct {
	Remaining time.Duration
}

// Finished is displayed after a countdown completes, until the reset fires.
type Finished struct{}

func (Stopped) isTimer()  {}
func (Running) isTimer()  {}
func (Finished) isTimer() {}

// ViewState is everything a renderer needs.
type ViewState struct {
	Timer  Timer
	Preset string
	Total  time.Duration
}

// Fraction returns how much of the countdown has elapsed, in [0, 1].
func (s ViewState) Fraction() float64 {
	switch t := s.Timer.(type) {
	case Running:
		if s.Total <= 0 {
			return 0
		}
		f := 1 - float64(t.Remaining)/float64(s.Total)
		if f < 0 {
			return 0
		}
		if f > 1 {
			return 1
		}
		return f
	case Finished:
		return 1
	default:
		return 0
	}
}

// Outcome describes how a session ended.
type Outcome string

const (
	OutcomeFinished  Outcome = "finished"
	OutcomeCancelled Outcome = "cancelled"
)

// Session identifies one countdown run.
type Session struct {
	ID        uuid.UUID
	Preset    string
	Total     time.Duration
	StartedAt time.Time
}

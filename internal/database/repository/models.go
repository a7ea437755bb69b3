package repository

import "time"

// Session represents a sessions row.
type Session struct {
	ID        string
	Preset    string
	Total     time.Duration
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   string
}

// Elapsed is how long the session actually ran.
func (s Session) Elapsed() time.Duration {
	d := s.EndedAt.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Stats summarises sessions in a time window.
type Stats struct {
	Finished  int
	Cancelled int
	Toasted   time.Duration // total time of finished sessions
}

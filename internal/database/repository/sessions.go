package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo handles sessions.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(id, preset, total_ms, started_at, ended_at, outcome)
	VALUES(?, ?, ?, ?, ?, ?);
	`, s.ID, s.Preset, s.Total.Milliseconds(), s.StartedAt.UTC(), s.EndedAt.UTC(), s.Outcome)
	return err
}

// List returns the most recent sessions first. A non-positive limit returns all.
func (r *SessionRepo) List(ctx context.Context, limit int) ([]Session, error) {
	query := "SELECT id, preset, total_ms, started_at, ended_at, outcome FROM sessions ORDER BY started_at DESC, id"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var totalMS int64
		if err := rows.Scan(&s.ID, &s.Preset, &totalMS, &s.StartedAt, &s.EndedAt, &s.Outcome); err != nil {
			return nil, err
		}
		s.Total = time.Duration(totalMS) * time.Millisecond
		out = append(out, s)
	}
	return out, rows.Err()
}

// Stats counts sessions started at or after since.
func (r *SessionRepo) Stats(ctx context.Context, since time.Time) (Stats, error) {
	var st Stats
	var toastedMS int64
	err := r.db.QueryRowContext(ctx, `
	SELECT
	 COALESCE(SUM(CASE WHEN outcome = 'finished' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN outcome = 'cancelled' THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN outcome = 'finished' THEN total_ms ELSE 0 END), 0)
	FROM sessions WHERE started_at >= ?`, since.UTC()).Scan(&st.Finished, &st.Cancelled, &toastedMS)
	if err != nil {
		return Stats{}, err
	}
	st.Toasted = time.Duration(toastedMS) * time.Millisecond
	return st, nil
}

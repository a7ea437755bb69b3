package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jask/toastimer/internal/database"
)

// MaintenanceService houses destructive history actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Prune deletes sessions that started before cutoff and reports how many went.
func (s *MaintenanceService) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var n int64
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE started_at < ?", cutoff.UTC())
		if err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		_, _ = s.DB.ExecContext(ctx, "VACUUM")
	}
	return n, nil
}

// Reset wipes all recorded sessions. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
			return fmt.Errorf("reset sessions: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}

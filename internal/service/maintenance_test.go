package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/toastimer/internal/database"
	"github.com/jask/toastimer/internal/database/repository"
)

func seed(t *testing.T) (*MaintenanceService, *repository.SessionRepo, time.Time) {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSessionRepo(db)
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		start := base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, repo.Insert(context.Background(), repository.Session{
			ID: id, Preset: "golden", Total: 6 * time.Second,
			StartedAt: start, EndedAt: start.Add(6 * time.Second), Outcome: "finished",
		}))
	}
	return &MaintenanceService{DB: db}, repo, base
}

func TestPruneDeletesOlderSessions(t *testing.T) {
	svc, repo, base := seed(t)
	ctx := context.Background()

	n, err := svc.Prune(ctx, base.Add(36*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	rows, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "new", rows[0].ID)

	n, err = svc.Prune(ctx, base)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestResetKeepsSchema(t *testing.T) {
	svc, repo, base := seed(t)
	ctx := context.Background()

	require.NoError(t, svc.Reset(ctx))
	rows, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, rows)

	require.NoError(t, repo.Insert(ctx, repository.Session{
		ID: "again", Preset: "dark", Total: 9 * time.Second,
		StartedAt: base, EndedAt: base.Add(time.Second), Outcome: "cancelled",
	}))
}

func TestMaintenanceWithoutDB(t *testing.T) {
	svc := &MaintenanceService{}
	require.Error(t, svc.Reset(context.Background()))
	_, err := svc.Prune(context.Background(), time.Now())
	require.Error(t, err)
}

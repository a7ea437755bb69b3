package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/toastimer/internal/database"
	"github.com/jask/toastimer/internal/database/repository"
	"github.com/jask/toastimer/internal/service"
)

const historyTimeFormat = "2006-01-02 15:04:05"

// HistoryCmd prints recent sessions and all-time totals, or prunes them.
type HistoryCmd struct {
	Limit int           `help:"Number of sessions to show." default:"10" short:"n"`
	Prune time.Duration `help:"Delete sessions older than this (e.g. 720h)." placeholder:"AGE"`
	Reset bool          `help:"Delete every recorded session."`
}

func (c *HistoryCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	db, err := database.OpenMigrated(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	maint := &service.MaintenanceService{DB: db}
	switch {
	case c.Reset:
		if err := maint.Reset(ctx); err != nil {
			return err
		}
		fmt.Println("history cleared")
		return nil
	case c.Prune > 0:
		n, err := maint.Prune(ctx, time.Now().Add(-c.Prune))
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d sessions\n", n)
		return nil
	}

	repo := repository.NewSessionRepo(db)
	rows, err := repo.List(ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	stats, err := repo.Stats(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("session stats: %w", err)
	}
	renderHistory(os.Stdout, rows, stats, time.Local)
	return nil
}

func renderHistory(w io.Writer, rows []repository.Session, stats repository.Stats, loc *time.Location) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no toasts yet")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STARTED", "PRESET", "TOTAL", "RAN", "OUTCOME")
	for _, s := range rows {
		t.Row(
			s.StartedAt.In(loc).Format(historyTimeFormat),
			s.Preset,
			s.Total.String(),
			s.Elapsed().Round(100*time.Millisecond).String(),
			s.Outcome,
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d finished, %d cancelled, %s toasted\n", stats.Finished, stats.Cancelled, stats.Toasted)
}

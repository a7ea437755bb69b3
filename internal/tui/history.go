package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/toastimer/internal/countdown"
	"github.com/jask/toastimer/internal/database/repository"
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (a *App) loadStats() tea.Cmd {
	if a.history == nil {
		return nil
	}
	repo, ctx, since := a.history, a.ctx, startOfDay(a.now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, historyTimeout)
		defer cancel()
		st, err := repo.Stats(ctx, since)
		return statsMsg{stats: st, err: err}
	}
}

// record stores a settled session and refreshes today's stats.
func (a *App) record(m countdown.SettledMsg) tea.Cmd {
	if a.history == nil {
		return nil
	}
	a.unsaved++
	row := repository.Session{
		ID:        m.Session.ID.String(),
		Preset:    m.Session.Preset,
		Total:     m.Session.Total,
		StartedAt: m.Session.StartedAt,
		EndedAt:   m.EndedAt,
		Outcome:   string(m.Outcome),
	}
	repo, ctx, since := a.history, a.ctx, startOfDay(a.now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, historyTimeout)
		defer cancel()
		if err := repo.Insert(ctx, row); err != nil {
			return recordedMsg{err: err}
		}
		st, err := repo.Stats(ctx, since)
		return recordedMsg{stats: st, err: err}
	}
}

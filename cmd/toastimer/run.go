package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/jask/toastimer/internal/countdown"
	"github.com/jask/toastimer/internal/database"
	"github.com/jask/toastimer/internal/database/repository"
	"github.com/jask/toastimer/internal/logging"
	"github.com/jask/toastimer/internal/prefs"
	"github.com/jask/toastimer/internal/preset"
	"github.com/jask/toastimer/internal/tui"
)

// RunCmd starts the timer screen.
type RunCmd struct {
	Preset    string `help:"Preset to toast with." short:"p"`
	Once      bool   `help:"Start immediately and exit when the toast is done."`
	Plain     bool   `help:"Print state changes as lines instead of drawing. Implied when stdout is not a terminal."`
	NoHistory bool   `help:"Do not record sessions." name:"no-history"`
}

func (c *RunCmd) Run(g *Globals) error {
	ctx := context.Background()

	cfg, err := g.load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	reg := preset.NewRegistry(cfg.Presets)
	p, err := c.pickPreset(reg, cfg.Toast.Preset, log)
	if err != nil {
		return err
	}

	var history *repository.SessionRepo
	if cfg.History.Enabled && !c.NoHistory {
		db, err := database.OpenMigrated(cfg.History.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.History.Path).Msg("history disabled")
			fmt.Fprintf(os.Stderr, "warn: history disabled: %v\n", err)
		} else {
			defer db.Close()
			history = repository.NewSessionRepo(db)
		}
	}

	holder := countdown.New(countdown.Config{
		Total:      p.Total,
		Interval:   cfg.Toast.Interval,
		FinishHold: cfg.Toast.FinishHold,
	}, countdown.WithPreset(p.Name))

	plain := c.Plain || !isatty.IsTerminal(os.Stdout.Fd())
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if plain {
		opts = append(opts, tea.WithoutRenderer(), tea.WithInput(nil))
	} else {
		opts = append(opts, tea.WithAltScreen())
	}

	log.Info().Str("preset", p.Name).Dur("total", p.Total).Bool("plain", plain).Msg("starting")
	app := tui.New(ctx, holder, reg, history, log, tui.Options{
		Plain:    plain,
		Once:     c.Once,
		Out:      os.Stdout,
		Remember: prefs.SaveLastPreset,
	})
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) {
		return err
	}
	return nil
}

// pickPreset prefers --preset, then the preset last chosen in the screen,
// then the configured default. A remembered preset that no longer exists is
// skipped.
func (c *RunCmd) pickPreset(reg *preset.Registry, configured string, log zerolog.Logger) (preset.Preset, error) {
	if c.Preset != "" {
		return reg.Lookup(c.Preset)
	}
	last, err := prefs.LoadLastPreset()
	if err != nil {
		log.Warn().Err(err).Msg("load last preset")
	}
	if last != "" {
		if p, err := reg.Lookup(last); err == nil {
			return p, nil
		}
		log.Debug().Str("preset", last).Msg("remembered preset gone")
	}
	return reg.Lookup(configured)
}

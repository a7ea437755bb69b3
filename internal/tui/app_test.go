package tui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/toastimer/internal/countdown"
	"github.com/jask/toastimer/internal/database"
	"github.com/jask/toastimer/internal/database/repository"
	"github.com/jask/toastimer/internal/preset"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// tick commands cannot be cancelled and finish on their own
		goleak.IgnoreAnyFunction("github.com/charmbracelet/bubbletea.Tick.func1"),
	)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, cfg countdown.Config, history *repository.SessionRepo, opts Options) *App {
	t.Helper()
	reg := preset.NewRegistry(preset.Defaults())
	golden, err := reg.Lookup("golden")
	require.NoError(t, err)
	if cfg.Total == 0 {
		cfg.Total = golden.Total
	}
	h := countdown.New(cfg, countdown.WithPreset(golden.Name))
	return New(context.Background(), h, reg, history, zerolog.Nop(), opts)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestActionKeyTogglesTimer(t *testing.T) {
	a := newTestApp(t, countdown.Config{Interval: time.Second}, nil, Options{})

	a.Update(keyPress(" "))
	require.Equal(t, countdown.Running{Remaining: 6 * time.Second}, a.timer.State().Timer)
	require.Equal(t, "stop", a.keys.Action.Help().Desc)
	require.Equal(t, 0, a.awaiting)

	_, cmd := a.Update(keyPress(" "))
	require.Equal(t, countdown.Stopped{}, a.timer.State().Timer)
	require.Equal(t, "start", a.keys.Action.Help().Desc)
	require.Equal(t, 1, a.awaiting)

	settled, ok := cmd().(countdown.SettledMsg)
	require.True(t, ok)
	require.Equal(t, countdown.OutcomeCancelled, settled.Outcome)

	a.Update(settled)
	require.Equal(t, 0, a.awaiting)
}

func TestCancelKeyOnStoppedIsNoop(t *testing.T) {
	a := newTestApp(t, countdown.Config{}, nil, Options{})
	_, cmd := a.Update(keyPress("x"))
	require.Nil(t, cmd)
	require.Equal(t, countdown.Stopped{}, a.timer.State().Timer)
}

func TestPresetKeyCycles(t *testing.T) {
	a := newTestApp(t, countdown.Config{}, nil, Options{})
	a.Update(keyPress("p"))
	require.Equal(t, "dark", a.timer.State().Preset)
	require.Equal(t, 9*time.Second, a.timer.State().Total)
	require.Contains(t, a.status, "dark")

	// disabled while running
	a.Update(keyPress("s"))
	a.Update(keyPress("p"))
	require.Equal(t, "dark", a.timer.State().Preset)
}

func TestPresetKeyRemembersChoice(t *testing.T) {
	var saved []string
	a := newTestApp(t, countdown.Config{}, nil, Options{Remember: func(name string) error {
		saved = append(saved, name)
		return nil
	}})

	_, cmd := a.Update(keyPress("p"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, []string{"dark"}, saved)

	a.Update(msg)
	require.False(t, a.failed)
}

func TestPresetRememberFailureOnlyLogged(t *testing.T) {
	var logs bytes.Buffer
	reg := preset.NewRegistry(preset.Defaults())
	h := countdown.New(countdown.Config{Total: 6 * time.Second}, countdown.WithPreset("golden"))
	a := New(context.Background(), h, reg, nil, zerolog.New(&logs), Options{Remember: func(string) error {
		return errors.New("read-only file system")
	}})

	_, cmd := a.Update(keyPress("p"))
	require.NotNil(t, cmd)
	a.Update(cmd())

	require.False(t, a.failed)
	require.Equal(t, "dark", a.timer.State().Preset)
	require.Contains(t, logs.String(), `"level":"warn"`)
	require.Contains(t, logs.String(), "read-only file system")
}

func TestQuitWhileStopped(t *testing.T) {
	a := newTestApp(t, countdown.Config{}, nil, Options{})
	_, cmd := a.Update(keyPress("q"))
	require.True(t, isQuit(cmd))
}

func TestQuitWhileRunningWaitsForSettle(t *testing.T) {
	a := newTestApp(t, countdown.Config{}, nil, Options{})
	a.Update(keyPress("s"))

	_, cmd := a.Update(keyPress("q"))
	require.Equal(t, countdown.Stopped{}, a.timer.State().Timer)
	settled, ok := cmd().(countdown.SettledMsg)
	require.True(t, ok)

	_, cmd = a.Update(settled)
	require.True(t, isQuit(cmd))
}

func TestStaleTickAfterRestartIgnored(t *testing.T) {
	a := newTestApp(t, countdown.Config{Interval: time.Second}, nil, Options{Plain: true, Out: &bytes.Buffer{}})
	a.Update(keyPress("s"))
	a.Update(keyPress("s"))
	require.Equal(t, 1, a.awaiting)

	// a tick for another holder or generation never advances the timer
	a.Update(countdown.TickMsg{ID: a.timer.ID()})
	require.Equal(t, countdown.Running{Remaining: 6 * time.Second}, a.timer.State().Timer)
}

func TestViewShowsFooter(t *testing.T) {
	a := newTestApp(t, countdown.Config{}, nil, Options{})
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	out := a.View()
	require.Contains(t, out, "Toast Timer")
	require.Contains(t, out, "Press space to start toasting")
	require.Contains(t, out, "quit")
	require.NotContains(t, out, "toasts today")
}

func TestHistoryErrorShownInStatus(t *testing.T) {
	a := newTestApp(t, countdown.Config{}, nil, Options{})
	a.unsaved = 1
	a.Update(recordedMsg{err: context.DeadlineExceeded})
	require.True(t, a.failed)
	require.Contains(t, a.status, "history")
	require.Equal(t, 0, a.unsaved)
}

func TestHeadlessOnceRun(t *testing.T) {
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewSessionRepo(db)

	var out bytes.Buffer
	cfg := countdown.Config{Total: 30 * time.Millisecond, Interval: 10 * time.Millisecond, FinishHold: 10 * time.Millisecond}
	a := newTestApp(t, cfg, repo, Options{Plain: true, Once: true, Out: &out})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := tea.NewProgram(a,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(&bytes.Buffer{}),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	_, err = p.Run()
	require.NoError(t, err)

	require.Equal(t, []string{"running 00", "finished", "stopped"}, strings.Split(strings.TrimSpace(out.String()), "\n"))

	rows, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "finished", rows[0].Outcome)
	require.Equal(t, "golden", rows[0].Preset)
	require.Equal(t, 30*time.Millisecond, rows[0].Total)
	require.Equal(t, 1, a.today.Finished)
}

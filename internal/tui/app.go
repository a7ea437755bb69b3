package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/toastimer/internal/countdown"
	"github.com/jask/toastimer/internal/database/repository"
	"github.com/jask/toastimer/internal/preset"
)

const (
	historyTimeout = 2 * time.Second
	frameInterval  = 750 * time.Millisecond / bounceHeight
	maxBarWidth    = 40
)

// Options changes how the app runs.
type Options struct {
	// Plain prints one line per state change instead of drawing. Pair it
	// with tea.WithoutRenderer.
	Plain bool
	// Once starts immediately and quits when the countdown settles.
	Once bool
	// Out receives plain-mode lines.
	Out io.Writer
	// Remember persists a preset picked in the screen. Optional.
	Remember func(name string) error
}

// App is the toast timer screen.
type App struct {
	ctx     context.Context
	timer   *countdown.Holder
	presets *preset.Registry
	history *repository.SessionRepo // nil when history is disabled
	log     zerolog.Logger
	opts    Options
	now     func() time.Time

	keys  keyMap
	help  help.Model
	bar   progress.Model
	width int

	frame    int
	frameGen int
	status   string
	failed   bool
	today    repository.Stats

	lastLine string
	quitting bool
	awaiting int // settles produced by the holder but not yet received
	unsaved  int // history writes in flight
}

type statsMsg struct {
	stats repository.Stats
	err   error
}

type recordedMsg struct {
	stats repository.Stats
	err   error
}

type frameMsg struct{ gen int }

type rememberedMsg struct {
	name string
	err  error
}

// New builds the app around an existing holder. history may be nil.
func New(ctx context.Context, timer *countdown.Holder, presets *preset.Registry, history *repository.SessionRepo, log zerolog.Logger, opts Options) *App {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	a := &App{
		ctx:     ctx,
		timer:   timer,
		presets: presets,
		history: history,
		log:     log,
		opts:    opts,
		now:     time.Now,
		keys:    newKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithGradient(string(colorAmber100), string(colorToastBrown)), progress.WithoutPercentage(), progress.WithWidth(maxBarWidth)),
	}
	a.keys.sync(timer.State().Timer)
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadStats()}
	if a.opts.Once {
		a.quitting = true
		cmds = append(cmds, a.do(a.timer.Start))
	}
	a.emit()
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := a.timer.State().Timer
	var cmd tea.Cmd

	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		a.bar.Width = min(maxBarWidth, max(10, m.Width-8))

	case tea.KeyMsg:
		cmd = a.handleKey(m)

	case countdown.SettledMsg:
		if a.awaiting > 0 {
			a.awaiting--
		}
		a.log.Info().
			Str("session", m.Session.ID.String()).
			Str("preset", m.Session.Preset).
			Dur("total", m.Session.Total).
			Str("outcome", string(m.Outcome)).
			Msg("toast settled")
		cmd = a.record(m)

	case recordedMsg:
		if a.unsaved > 0 {
			a.unsaved--
		}
		if m.err != nil {
			a.log.Warn().Err(m.err).Msg("record session")
			a.setError(fmt.Sprintf("history: %v", m.err))
		} else {
			a.today = m.stats
		}

	case statsMsg:
		if m.err != nil {
			a.log.Warn().Err(m.err).Msg("load stats")
			a.setError(fmt.Sprintf("history: %v", m.err))
		} else {
			a.today = m.stats
		}

	case rememberedMsg:
		if m.err != nil {
			a.log.Warn().Err(m.err).Str("preset", m.name).Msg("remember preset")
		}

	case frameMsg:
		if m.gen == a.frameGen {
			if _, ok := a.timer.State().Timer.(countdown.Finished); ok {
				a.frame++
				cmd = a.nextFrame()
			}
		}

	default:
		cmd = a.do(func() tea.Cmd { return a.timer.Update(msg) })
	}

	cmd = tea.Batch(cmd, a.transition(prev))
	if a.quitting && a.idle() {
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		return a.do(a.timer.Close)
	case key.Matches(m, a.keys.Action):
		if actionFor(a.timer.State().Timer).start {
			return a.do(a.timer.Start)
		}
		return a.do(a.timer.End)
	case key.Matches(m, a.keys.Start):
		return a.do(a.timer.Start)
	case key.Matches(m, a.keys.Cancel):
		return a.do(a.timer.End)
	case key.Matches(m, a.keys.Preset):
		return a.cyclePreset()
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return nil
}

// do runs a holder operation and counts the settle it will deliver when the
// session in flight ended.
func (a *App) do(op func() tea.Cmd) tea.Cmd {
	before, had := a.timer.Session()
	cmd := op()
	after, has := a.timer.Session()
	if had && (!has || after.ID != before.ID) {
		a.awaiting++
	}
	return cmd
}

func (a *App) idle() bool {
	_, stopped := a.timer.State().Timer.(countdown.Stopped)
	return stopped && a.awaiting == 0 && a.unsaved == 0
}

// transition reacts to a change of timer variant.
func (a *App) transition(prev countdown.Timer) tea.Cmd {
	cur := a.timer.State().Timer
	a.emit()
	if sameVariant(prev, cur) {
		return nil
	}
	a.keys.sync(cur)
	a.log.Debug().Str("from", variantName(prev)).Str("to", variantName(cur)).Msg("timer transition")
	if _, ok := cur.(countdown.Running); ok {
		a.status = ""
		a.failed = false
	}
	if _, ok := cur.(countdown.Finished); ok && !a.opts.Plain {
		a.frame = 0
		a.frameGen++
		return a.nextFrame()
	}
	return nil
}

func (a *App) nextFrame() tea.Cmd {
	gen := a.frameGen
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

func (a *App) cyclePreset() tea.Cmd {
	if a.presets == nil {
		return nil
	}
	p, ok := a.presets.Next(a.timer.State().Preset)
	if !ok {
		return nil
	}
	a.timer.SetPreset(p.Name, p.Total)
	a.status = fmt.Sprintf("preset %s (%s)", p.Name, p.Total)
	a.failed = false
	a.log.Debug().Str("preset", p.Name).Msg("preset changed")

	remember := a.opts.Remember
	if remember == nil {
		return nil
	}
	return func() tea.Msg {
		return rememberedMsg{name: p.Name, err: remember(p.Name)}
	}
}

// emit prints the plain-mode line when it changed.
func (a *App) emit() {
	if !a.opts.Plain {
		return
	}
	line := plainLine(a.timer.State())
	if line == a.lastLine {
		return
	}
	a.lastLine = line
	fmt.Fprintln(a.opts.Out, line)
}

func (a *App) setError(s string) {
	a.status = s
	a.failed = true
}

func (a *App) View() string {
	if a.opts.Plain {
		return ""
	}
	header := titleStyle.Render("Toast Timer")
	if a.width > 0 {
		header = lipgloss.PlaceHorizontal(a.width, lipgloss.Left, header)
	}
	body := Render(a.timer.State(), a.frame, a.width, a.bar)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", a.footer())
}

func (a *App) footer() string {
	var lines []string
	if a.history != nil {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("%d toasts today · %d cancelled", a.today.Finished, a.today.Cancelled)))
	}
	if a.status != "" {
		st := statusStyle
		if a.failed {
			st = errorStyle
		}
		lines = append(lines, st.Render(a.status))
	}
	lines = append(lines, a.help.View(a.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sameVariant(a, b countdown.Timer) bool {
	return variantName(a) == variantName(b)
}

func variantName(t countdown.Timer) string {
	switch t.(type) {
	case countdown.Running:
		return "running"
	case countdown.Finished:
		return "finished"
	default:
		return "stopped"
	}
}

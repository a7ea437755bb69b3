package countdown

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	DefaultTotal      = 6 * time.Second
	DefaultInterval   = time.Second
	DefaultFinishHold = 3 * time.Second
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Config controls the countdown length and tick rate. A zero FinishHold skips
// the Finished state and settles straight to Stopped.
type Config struct {
	Total      time.Duration
	Interval   time.Duration
	FinishHold time.Duration
}

// TickMsg is delivered once per interval while a countdown runs.
type TickMsg struct {
	ID  int
	gen int
}

type resetMsg struct {
	id  int
	gen int
}

// SettledMsg reports the end of a session, either natural or cancelled.
type SettledMsg struct {
	Session Session
	Outcome Outcome
	EndedAt time.Time
}

// Option configures a Holder.
type Option func(*Holder)

// WithPreset names the countdown preset reported in ViewState and Session.
func WithPreset(name string) Option {
	return func(h *Holder) { h.preset = name }
}

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Holder) { h.now = now }
}

// Holder owns the countdown state. It is driven from a single bubbletea
// Update loop and is not safe for concurrent use.
type Holder struct {
	id        int
	gen       int
	cfg       Config
	preset    string
	timer     Timer
	remaining time.Duration
	total     time.Duration // total of the session in flight
	session   *Session
	now       func() time.Time
}

// New returns a stopped Holder.
func New(cfg Config, opts ...Option) *Holder {
	if cfg.Total <= 0 {
		cfg.Total = DefaultTotal
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.FinishHold < 0 {
		cfg.FinishHold = 0
	}
	h := &Holder{
		id:    nextID(),
		cfg:   cfg,
		timer: Stopped{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ID identifies the holder's messages.
func (h *Holder) ID() int { return h.id }

// State returns the current view state.
func (h *Holder) State() ViewState {
	total := h.cfg.Total
	if h.session != nil {
		total = h.total
	}
	preset := h.preset
	if h.session != nil {
		preset = h.session.Preset
	}
	return ViewState{Timer: h.timer, Preset: preset, Total: total}
}

// Session returns the session in flight, if any.
func (h *Holder) Session() (Session, bool) {
	if h.session == nil {
		return Session{}, false
	}
	return *h.session, true
}

// SetPreset changes the duration used by the next Start. A running countdown
// keeps its own total.
func (h *Holder) SetPreset(name string, total time.Duration) {
	if total <= 0 {
		total = DefaultTotal
	}
	h.preset = name
	h.cfg.Total = total
}

// Start cancels any countdown in flight and begins a new one. The state is
// Running with the full total as soon as Start returns.
func (h *Holder) Start() tea.Cmd {
	settled := h.cancel()

	h.gen++
	h.total = h.cfg.Total
	h.remaining = h.cfg.Total
	h.session = &Session{
		ID:        uuid.New(),
		Preset:    h.preset,
		Total:     h.cfg.Total,
		StartedAt: h.now(),
	}
	h.timer = Running{Remaining: h.remaining}

	return tea.Batch(settled, h.tick())
}

// End cancels the countdown and forces Stopped. Calling it while stopped does
// nothing.
func (h *Holder) End() tea.Cmd {
	if _, ok := h.timer.(Stopped); ok {
		return nil
	}
	settled := h.cancel()
	h.gen++
	h.timer = Stopped{}
	return settled
}

// Close releases the countdown. Pending ticks are ignored afterwards.
func (h *Holder) Close() tea.Cmd {
	return h.End()
}

// Update advances the countdown on tick and reset messages addressed to this
// holder and generation. Anything else is ignored.
func (h *Holder) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != h.id || msg.gen != h.gen {
			return nil
		}
		if _, ok := h.timer.(Running); !ok {
			return nil
		}
		h.remaining -= h.step()
		if h.remaining > 0 {
			h.timer = Running{Remaining: h.remaining}
			return h.tick()
		}
		return h.finish()

	case resetMsg:
		if msg.id != h.id || msg.gen != h.gen {
			return nil
		}
		if _, ok := h.timer.(Finished); ok {
			h.timer = Stopped{}
		}
	}
	return nil
}

func (h *Holder) step() time.Duration {
	if h.remaining < h.cfg.Interval {
		return h.remaining
	}
	return h.cfg.Interval
}

func (h *Holder) tick() tea.Cmd {
	id, gen := h.id, h.gen
	return tea.Tick(h.step(), func(time.Time) tea.Msg {
		return TickMsg{ID: id, gen: gen}
	})
}

func (h *Holder) finish() tea.Cmd {
	h.remaining = 0
	settled := h.settle(OutcomeFinished)
	if h.cfg.FinishHold == 0 {
		h.timer = Stopped{}
		return settled
	}
	h.timer = Finished{}
	id, gen := h.id, h.gen
	reset := tea.Tick(h.cfg.FinishHold, func(time.Time) tea.Msg {
		return resetMsg{id: id, gen: gen}
	})
	return tea.Batch(settled, reset)
}

// cancel settles a running session as cancelled.
func (h *Holder) cancel() tea.Cmd {
	if _, ok := h.timer.(Running); !ok {
		h.session = nil
		return nil
	}
	return h.settle(OutcomeCancelled)
}

func (h *Holder) settle(outcome Outcome) tea.Cmd {
	if h.session == nil {
		return nil
	}
	msg := SettledMsg{Session: *h.session, Outcome: outcome, EndedAt: h.now()}
	h.session = nil
	return func() tea.Msg { return msg }
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/toastimer/internal/countdown"
)

type keyMap struct {
	Action key.Binding
	Start  key.Binding
	Cancel key.Binding
	Preset key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Action: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start")),
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Cancel: key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "cancel")),
		Preset: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// sync relabels the action key and disables bindings that do nothing in the
// current state.
func (k *keyMap) sync(t countdown.Timer) {
	act := actionFor(t)
	k.Action.SetHelp("space", act.verb)
	_, running := t.(countdown.Running)
	_, stopped := t.(countdown.Stopped)
	k.Cancel.SetEnabled(!stopped)
	k.Preset.SetEnabled(!running)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Preset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Action, k.Start, k.Cancel},
		{k.Preset, k.Help, k.Quit},
	}
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/toastimer/internal/countdown"
)

// bounceHeight is how many lines the finished picture travels.
const bounceHeight = 3

var breadArt = []string{
	"  .-~~~~~~~~~~-.  ",
	" (              ) ",
	"  |            |  ",
	"  |            |  ",
	"  |            |  ",
	"  '------------'  ",
}

var doneArt = []string{
	"  .-~~~~~~~~~~-.  ",
	" (   ^      ^   ) ",
	"  |    \\__/    |  ",
	"  |            |  ",
	"  '------------'  ",
}

type action struct {
	icon  string
	verb  string
	start bool // false means the action cancels
}

// actionFor derives the action button from the timer variant.
func actionFor(t countdown.Timer) action {
	if _, ok := t.(countdown.Running); ok {
		return action{icon: "■", verb: "stop"}
	}
	return action{icon: "⏱", verb: "start", start: true}
}

// formatRemaining renders seconds as "ss", or "m:ss" from one minute up.
// Partial seconds are truncated.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	if secs < 60 {
		return fmt.Sprintf("%02d", secs)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// bounceOffset maps an animation frame onto a triangle wave in
// [0, bounceHeight].
func bounceOffset(frame int) int {
	if frame < 0 {
		frame = -frame
	}
	p := frame % (2 * bounceHeight)
	if p > bounceHeight {
		return 2*bounceHeight - p
	}
	return p
}

// Render draws the body for s. It has no side effects; frame only drives the
// finished animation and width centres the output when positive.
func Render(s countdown.ViewState, frame, width int, bar progress.Model) string {
	var body string
	switch t := s.Timer.(type) {
	case countdown.Running:
		body = renderRunning(s, t, bar)
	case countdown.Finished:
		body = renderFinished(frame)
	default:
		body = renderStopped(s)
	}

	act := actionFor(s.Timer)
	button := buttonStyle.Render(act.icon + " " + act.verb)
	out := lipgloss.JoinVertical(lipgloss.Center, body, "", button)
	if width > 0 {
		out = lipgloss.PlaceHorizontal(width, lipgloss.Center, out)
	}
	return out
}

func renderStopped(s countdown.ViewState) string {
	lines := []string{
		promptStyle.Render("Press space to start toasting"),
		statusStyle.Render(fmt.Sprintf("preset %s · %s", s.Preset, s.Total)),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderRunning(s countdown.ViewState, t countdown.Running, bar progress.Model) string {
	clock := clockStyle.Render(formatRemaining(t.Remaining) + "s")
	bread := lipgloss.NewStyle().Foreground(breadColor(s.Fraction())).Render(strings.Join(breadArt, "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, clock, "", bread, "", bar.ViewAs(s.Fraction()))
}

func renderFinished(frame int) string {
	off := bounceOffset(frame)
	lines := make([]string, 0, len(doneArt)+bounceHeight+2)
	for i := 0; i < off; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, doneArt...)
	for i := off; i < bounceHeight; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, "", "Toast is ready!")
	return doneStyle.Render(strings.Join(lines, "\n"))
}

// plainLine is the one-line form of s used when there is no renderer.
func plainLine(s countdown.ViewState) string {
	switch t := s.Timer.(type) {
	case countdown.Running:
		return "running " + formatRemaining(t.Remaining)
	case countdown.Finished:
		return "finished"
	default:
		return "stopped"
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Catppuccin Mocha, plus the two bread colours.
const (
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface0 lipgloss.Color = "#313244"

	colorAmber100   lipgloss.Color = "#ffecb3"
	colorToastBrown lipgloss.Color = "#8d5524"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorSurface0).Padding(0, 2)
	promptStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	clockStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	statusStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	buttonStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPeach).Padding(0, 1)
)

// breadColor tints the bread from amber towards toast brown as f goes from
// 0 to 1.
func breadColor(f float64) lipgloss.Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	from, err := colorful.Hex(string(colorAmber100))
	if err != nil {
		return colorAmber100
	}
	to, err := colorful.Hex(string(colorToastBrown))
	if err != nil {
		return colorToastBrown
	}
	return lipgloss.Color(from.BlendLab(to, f).Clamped().Hex())
}

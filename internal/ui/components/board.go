// Package components holds the widgets the screens are built from.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

// Column is the width every card on a screen shares, so stacked boxes line
// up. It leaves room for the chalkboard border and clamps to 20..60.
func Column(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// Chalkboard centers content inside a double border filling width x height.
func Chalkboard(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a rounded, padded box of the given width.
func Card(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// Pill is a one-line button. The highlighted pill is filled gold.
func Pill(label string, on bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !on {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Gold).
		BorderForeground(theme.Gold).
		Render("▸ " + label)
}

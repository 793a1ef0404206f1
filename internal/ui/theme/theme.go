// Package theme is the classroom palette shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#2563EB") // chalkboard blue
	Secondary = lipgloss.Color("#0D9488")
	Accent    = lipgloss.Color("#F97316") // streak stars
	Success   = lipgloss.Color("#16A34A")
	Error     = lipgloss.Color("#E11D48")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")

	Gold = lipgloss.Color("#FACC15") // cuudoos
	Sky  = lipgloss.Color("#38BDF8")
)

// Ink is plain text in c.
func Ink(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Strong is bold text in c.
func Strong(c color.Color) lipgloss.Style {
	return Ink(c).Bold(true)
}

// Verdict colors feedback for a graded answer.
func Verdict(correct bool) lipgloss.Style {
	if correct {
		return Strong(Success)
	}
	return Strong(Error)
}

// Swatch returns the color for a profile's hex code, or Primary when the
// code is empty.
func Swatch(hex string) color.Color {
	if hex == "" {
		return Primary
	}
	return lipgloss.Color(hex)
}

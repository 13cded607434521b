// Package output provides styled terminal rendering helpers for focuspulse.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for high energy and completed skills.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for low energy and distraction deltas.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for mid-range energy values.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text, borders and future calendar days.
	ColorMuted = lipgloss.Color("#888888")

	// ColorReward is used while reward mode is active.
	ColorReward = lipgloss.Color("#ba68c8")
)

// Heat colors for calendar activity buckets, dim to bright.
var (
	ColorHeatEmpty  = lipgloss.Color("#2d333b")
	ColorHeatLow    = lipgloss.Color("#0e4429")
	ColorHeatMedium = lipgloss.Color("#26a641")
	ColorHeatHigh   = lipgloss.Color("#39d353")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleReward is used for the reward-mode banner.
	StyleReward = lipgloss.NewStyle().
			Foreground(ColorReward).
			Bold(true)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleReward = plain
		StyleBold = plain
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// IsTerminal reports whether stdout is attached to a terminal. Piped output
// gets plain text regardless of color settings.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

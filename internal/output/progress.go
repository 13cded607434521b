package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EnergyBar renders a visual bar for a 0-100 energy value.
// Example: "████████░░ 80/100"
func EnergyBar(xp int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := xp * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style lipgloss.Style
	switch {
	case xp >= 70:
		style = StyleSuccess
	case xp >= 40:
		style = StyleWarning
	default:
		style = StyleError
	}

	return fmt.Sprintf("%s %s", style.Render(bar), StyleMuted.Render(fmt.Sprintf("%d/100", xp)))
}

// HeatCell renders a single calendar day as a colored block. Future days are
// always rendered faint, regardless of bucket.
func HeatCell(bucket int, future bool) string {
	if noColor {
		if future {
			return "."
		}
		switch bucket {
		case 0:
			return "·"
		case 1:
			return "▪"
		case 2:
			return "▣"
		default:
			return "■"
		}
	}

	color := ColorHeatEmpty
	switch bucket {
	case 1:
		color = ColorHeatLow
	case 2:
		color = ColorHeatMedium
	case 3:
		color = ColorHeatHigh
	}
	if future {
		color = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(color).Render("■")
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

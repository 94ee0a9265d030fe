package cli

import "github.com/charmbracelet/lipgloss"

// Color palette shared across commands
var (
	// Priority colors
	priorityHighColor   = lipgloss.Color("#FF6B6B")
	priorityMediumColor = lipgloss.Color("#FFE66D")
	priorityLowColor    = lipgloss.Color("#4ECDC4")

	completedColor = lipgloss.Color("#95E1A3")
	delayedColor   = lipgloss.Color("#FFB347")
	primaryColor   = lipgloss.Color("#4ECDC4")
	mutedColor     = lipgloss.Color("#888888")
	xpColor        = lipgloss.Color("#FFE66D")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statValueStyle = lipgloss.NewStyle().
			Bold(true)

	xpBarFilledStyle = lipgloss.NewStyle().
				Foreground(xpColor)

	xpBarEmptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	badgeUnlockedStyle = lipgloss.NewStyle().
				Foreground(completedColor).
				Bold(true)

	badgeLockedStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	completedStyle = lipgloss.NewStyle().
			Foreground(completedColor).
			Strikethrough(true)

	delayedStyle = lipgloss.NewStyle().
			Foreground(delayedColor)
)

func priorityStyle(p string) lipgloss.Style {
	switch p {
	case "high":
		return lipgloss.NewStyle().Foreground(priorityHighColor)
	case "low":
		return lipgloss.NewStyle().Foreground(priorityLowColor)
	default:
		return lipgloss.NewStyle().Foreground(priorityMediumColor)
	}
}

// renderXPBar draws a progress bar for the current level
func renderXPBar(current, next, width int) string {
	if next <= 0 || width <= 0 {
		return ""
	}
	filled := current * width / next
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += xpBarFilledStyle.Render("█")
		} else {
			bar += xpBarEmptyStyle.Render("░")
		}
	}
	return bar
}

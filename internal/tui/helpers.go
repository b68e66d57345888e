package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/quickinvoice/internal/domain"
)

// truncateStr truncates a string to the given display width with an ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// orDash shows a placeholder for blank values in lists
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// statBox renders one dashboard figure
func statBox(label, value string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(label),
		statValueStyle.Render(value),
	))
}

// clampCursor keeps a list cursor inside [0, n)
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func money(v float64) string {
	return domain.FormatMoney(v)
}

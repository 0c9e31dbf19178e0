package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.spinner.View(),
		" ",
		titleStyle.Render(m.label),
		dimStyle.Render(fmt.Sprintf(" at %s ", m.at.Format(time.Kitchen))),
		remainingStyle.Render(formatRemaining(m.remaining)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.help.View(m.keys)) + "\n"
}

// formatRemaining renders d as 1h02m03s, 2m03s or 3s.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

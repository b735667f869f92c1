package tui

import (
	"github.com/charmbracelet/lipgloss"

	"example.com/storefront/app/internal/domain/notice"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00A278")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3E4E3C")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("#00A278"))

	cartPanelStyle = panelStyle.Background(lipgloss.Color("#1E2A1C"))

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00A278")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#636363"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func noticeStyle(level notice.Level) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch level {
	case notice.LevelError:
		return base.Foreground(lipgloss.Color("#E5484D"))
	case notice.LevelWarning:
		return base.Foreground(lipgloss.Color("#F5A524"))
	case notice.LevelSuccess:
		return base.Foreground(lipgloss.Color("#00A278"))
	default:
		return base.Foreground(lipgloss.Color("#6E9BF5"))
	}
}

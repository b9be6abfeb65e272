package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#A29BFE"}
	muted  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	green  = lipgloss.Color("#2ECC71")
	red    = lipgloss.Color("#E74C3C")

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(muted)
	activeTabStyle = tabStyle.Foreground(accent).Bold(true).Underline(true)

	bodyStyle   = lipgloss.NewStyle().Padding(1, 2)
	statusStyle = lipgloss.NewStyle().Padding(0, 2)
	helpStyle   = lipgloss.NewStyle().Padding(0, 2).Foreground(muted)

	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	labelStyle    = lipgloss.NewStyle().Width(10).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	dateStyle     = lipgloss.NewStyle().Foreground(muted).Italic(true)
	headingStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(green)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
	spinnerStyle  = lipgloss.NewStyle().Foreground(accent)

	buttonStyle         = lipgloss.NewStyle().Padding(0, 2).Background(accent).Foreground(lipgloss.Color("#FFFFFF"))
	disabledButtonStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(muted)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

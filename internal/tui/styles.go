package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	accent  = lipgloss.Color("#8B5CF6")
	muted   = lipgloss.Color("#6B7280")
	danger  = lipgloss.Color("#EF4444")
	success = lipgloss.Color("#10B981")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	normalStyle   = lipgloss.NewStyle()
	subtitleStyle = lipgloss.NewStyle().Foreground(muted)
	priceStyle    = lipgloss.NewStyle().Foreground(success)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(danger)
	helpStyle     = lipgloss.NewStyle().Foreground(muted).MarginTop(1)

	listPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	detailPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1)
)

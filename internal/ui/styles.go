package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.AdaptiveColor{Light: "#1A73E8", Dark: "#8AB4F8"}
	userColor = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	errColor  = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	okColor   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	muted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	border    = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	errorStyle  = lipgloss.NewStyle().Foreground(errColor)
	copiedStyle = lipgloss.NewStyle().Foreground(okColor)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(userColor)
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	userTextStyle       = lipgloss.NewStyle().PaddingLeft(2)

	chipStyle = lipgloss.NewStyle().
			Foreground(accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(border)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(border).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	unavailableStyle = lipgloss.NewStyle().Foreground(muted).Strikethrough(true)
)

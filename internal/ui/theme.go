package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the deck.
const (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#EAB308") // Yellow
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

var (
	styleActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorMuted)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleContent = lipgloss.NewStyle().
			Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			Width(9)

	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)

	styleEcho    = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleFailure = lipgloss.NewStyle().Foreground(colorDanger)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
)

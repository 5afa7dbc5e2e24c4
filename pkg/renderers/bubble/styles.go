package bubble

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7f57b4")
	colorText    = lipgloss.Color("#d7d9da")
	colorMuted   = lipgloss.Color("#9ba0bf")
	colorError   = lipgloss.Color("#c2566b")
	colorBorder  = lipgloss.Color("#273540")
	colorChip    = lipgloss.Color("#436b77")
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorChip).
			Padding(0, 1).
			MarginRight(1)

	selectedChipStyle = chipStyle.
				Background(colorPrimary).
				Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorText)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

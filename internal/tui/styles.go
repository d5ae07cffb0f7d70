package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214"))
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#B0B7C3"})

	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	categoryStyle  = lipgloss.NewStyle().Faint(true)
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("226")).Foreground(lipgloss.Color("0"))
	emptyStyle     = lipgloss.NewStyle().Italic(true).Faint(true)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"})
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

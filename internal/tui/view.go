package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/breadtasks/breadtasks/search"
	"github.com/breadtasks/breadtasks/types"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(types.AppName))
	b.WriteString("\n\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(m.viewTasks())
	b.WriteString("\n")

	switch m.mode {
	case modeSearch, modeInput:
		b.WriteString(promptStyle.Render(m.prompt+" ") + m.input.View())
	case modeConfirm:
		b.WriteString(promptStyle.Render(m.prompt + " (y/n)"))
	default:
		if m.search != "" {
			b.WriteString(promptStyle.Render("/") + m.search)
		}
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewTabs() string {
	current := m.store.CurrentCategory()
	counts := m.store.CategoryCounts()

	tabs := make([]string, 0, len(counts))
	for _, c := range counts {
		label := fmt.Sprintf("%s (%d)", c.Name, c.Count)
		if c.Name == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() string {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		if m.search != "" {
			return emptyStyle.Render(fmt.Sprintf("No tasks match %q", m.search)) + "\n"
		}
		return emptyStyle.Render("No tasks. Press a to add one.") + "\n"
	}

	showCategory := m.store.CurrentCategory() == types.CategoryAll
	matcher := search.NewMatcher(m.search, search.Options{})

	var b strings.Builder
	for i, task := range tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		textStyle := lipgloss.NewStyle()
		if task.Completed {
			check = "[x]"
			textStyle = doneStyle
		}

		line := fmt.Sprintf("%s%s %d %s", cursor, check, task.ID, highlight(matcher, task.Text, textStyle))
		if showCategory {
			line += " " + categoryStyle.Render(task.Category)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatus() string {
	current := m.store.CurrentCategory()
	stats := m.store.Statistics(current)
	summary := statusStyle.Render(fmt.Sprintf("%s: %d/%d done (%.1f%%)", current, stats.Completed, stats.Total, stats.Percentage))

	if m.status == "" {
		return summary
	}
	if m.statusErr {
		return summary + "  " + errorStyle.Render("Error: "+m.status)
	}
	return summary + "  " + statusStyle.Render(m.status)
}

// highlight renders text with style, marking every match of matcher
func highlight(matcher *search.Matcher, text string, style lipgloss.Style) string {
	spans := matcher.Find(text)
	if len(spans) == 0 {
		return style.Render(text)
	}

	var b strings.Builder
	pos := 0
	for _, span := range spans {
		if span.Start < pos {
			continue
		}
		if span.Start > pos {
			b.WriteString(style.Render(text[pos:span.Start]))
		}
		b.WriteString(highlightStyle.Render(text[span.Start:span.End]))
		pos = span.End
	}
	if pos < len(text) {
		b.WriteString(style.Render(text[pos:]))
	}
	return b.String()
}

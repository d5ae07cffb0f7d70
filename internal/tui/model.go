// Package tui is the interactive terminal front end: category tabs, the
// task list of the current category with live search, and a status line.
// Every change goes through the store, which persists it immediately.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/breadtasks/breadtasks/breadtasks/store"
	"github.com/breadtasks/breadtasks/types"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeInput
	modeConfirm
)

// Model is the bubbletea model of the task list
type Model struct {
	store store.Store
	keys  KeyMap
	help  help.Model
	input textinput.Model

	mode   mode
	search string
	cursor int
	width  int

	status    string
	statusErr bool

	// prompt is shown while mode is modeInput or modeConfirm
	prompt    string
	submit    func(value string) (string, error)
	onConfirm func() (string, error)
}

// New creates a model over s
func New(s store.Store) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Prompt = ""

	m := Model{
		store: s,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: ti,
	}
	if err := s.LoadError(); err != nil {
		m.report("", fmt.Errorf("data file replaced with an empty list: %w", err))
	}
	return m
}

// Run starts the interface on the alternate screen and blocks until the
// user quits
func Run(s store.Store) error {
	program := tea.NewProgram(New(s), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleTasks())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevCategory):
		m.shiftCategory(-1)
	case key.Matches(msg, m.keys.NextCategory):
		m.shiftCategory(1)
	case key.Matches(msg, m.keys.Add):
		category := m.store.CurrentCategory()
		cmd := m.startInput("New task", "", func(text string) (string, error) {
			task, err := m.store.AddTask(text, category)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added task %d to %s", task.ID, task.Category), nil
		})
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		cmd := m.startInput(fmt.Sprintf("Edit task %d", task.ID), task.Text, func(text string) (string, error) {
			if err := m.store.EditTask(task.ID, text, task.Category); err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated task %d", task.ID), nil
		})
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selectedTask(); ok {
			m.report("", m.store.ToggleTask(task.ID))
		}
	case key.Matches(msg, m.keys.Move):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		cmd := m.startInput(fmt.Sprintf("Move task %d to", task.ID), "", func(category string) (string, error) {
			if err := m.store.MoveTask(task.ID, category); err != nil {
				return "", err
			}
			moved, err := m.store.Task(task.ID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Moved task %d to %s", task.ID, moved.Category), nil
		})
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.startConfirm(fmt.Sprintf("Delete task %d %q?", task.ID, task.Text), func() (string, error) {
			if err := m.store.RemoveTask(task.ID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted task %d", task.ID), nil
		})
	case key.Matches(msg, m.keys.Clear):
		scope := m.store.CurrentCategory()
		n := m.store.Statistics(scope).Completed
		if n == 0 {
			m.report("No completed tasks to clear", nil)
			return m, nil
		}
		m.startConfirm(fmt.Sprintf("Clear %d completed in %s?", n, scope), func() (string, error) {
			removed, err := m.store.ClearCompleted(scope)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Cleared %d completed", removed), nil
		})
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.prompt = "/"
		m.input.SetValue(m.search)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.ClearSearch):
		m.search = ""
		m.cursor = 0
	case key.Matches(msg, m.keys.NewCategory):
		cmd := m.startInput("New category", "", func(name string) (string, error) {
			if err := m.store.AddCategory(name); err != nil {
				return "", err
			}
			name = strings.TrimSpace(name)
			if err := m.store.SelectCategory(name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added category %s", name), nil
		})
		return m, cmd
	case key.Matches(msg, m.keys.RenameCategory):
		current := m.store.CurrentCategory()
		if types.IsReservedCategory(current) {
			m.report("", &types.ProtectedError{Category: current, Operation: "rename"})
			return m, nil
		}
		cmd := m.startInput("Rename "+current+" to", current, func(name string) (string, error) {
			if err := m.store.RenameCategory(current, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Renamed %s to %s", current, strings.TrimSpace(name)), nil
		})
		return m, cmd
	case key.Matches(msg, m.keys.DeleteCategory):
		current := m.store.CurrentCategory()
		deleteCurrent := func() (string, error) {
			moved, err := m.store.DeleteCategory(current)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted %s, %d moved to %s", current, moved, types.CategoryUncategorized), nil
		}
		if n := m.countIn(current); n > 0 && !types.IsReservedCategory(current) {
			m.startConfirm(fmt.Sprintf("Delete %s and move %d to %s?", current, n, types.CategoryUncategorized), deleteCurrent)
			return m, nil
		}
		m.report(deleteCurrent())
		m.cursor = 0
	}

	m.clampCursor()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.endInput()
		return m, nil
	case tea.KeyEsc:
		m.endInput()
		m.search = ""
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search = m.input.Value()
	m.cursor = 0
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := m.input.Value()
		submit := m.submit
		m.endInput()
		m.report(submit(value))
		m.clampCursor()
		return m, nil
	case tea.KeyEsc:
		m.endInput()
		m.report("Cancelled", nil)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := m.onConfirm
	m.mode = modeBrowse
	m.prompt = ""
	m.onConfirm = nil

	switch msg.String() {
	case "y", "Y":
		m.report(confirm())
		m.clampCursor()
	default:
		m.report("Cancelled", nil)
	}
	return m, nil
}

func (m *Model) startInput(prompt, value string, submit func(string) (string, error)) tea.Cmd {
	m.mode = modeInput
	m.prompt = prompt
	m.submit = submit
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) startConfirm(question string, fn func() (string, error)) {
	m.mode = modeConfirm
	m.prompt = question
	m.onConfirm = fn
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.prompt = ""
	m.submit = nil
	m.input.Blur()
	m.input.Reset()
}

// report sets the status line. A non-nil err wins over text.
func (m *Model) report(text string, err error) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = text
	m.statusErr = false
}

func (m *Model) shiftCategory(delta int) {
	categories := m.store.Categories()
	if len(categories) == 0 {
		return
	}
	i := types.IndexCategory(categories, m.store.CurrentCategory())
	next := ((i+delta)%len(categories) + len(categories)) % len(categories)
	m.report("", m.store.SelectCategory(categories[next]))
	m.cursor = 0
}

func (m Model) visibleTasks() []types.Task {
	return m.store.ListTasks(m.store.CurrentCategory(), m.search)
}

func (m Model) selectedTask() (types.Task, bool) {
	tasks := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return types.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) countIn(category string) int {
	for _, c := range m.store.CategoryCounts() {
		if c.Name == category {
			return c.Count
		}
	}
	return 0
}

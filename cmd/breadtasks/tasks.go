package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/breadtasks/breadtasks/breadtasks/store"
	"github.com/breadtasks/breadtasks/types"
)

func (a *App) newAddCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Long: `Add a task to a category. Without --category the task goes to the
current category, or Uncategorized when the current category is All.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("add task", func(s store.Store) error {
				if category == "" {
					category = s.CurrentCategory()
				}
				task, err := s.AddTask(strings.Join(args, " "), category)
				if err != nil {
					return err
				}

				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Message(task, "Added task %d to %s", task.ID, task.Category)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category for the new task")
	return cmd
}

func (a *App) newEditCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "edit <id> [text]...",
		Short: "Change the text or category of a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("edit task", args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" && category == "" {
				return &CLIError{
					Operation:   "edit task",
					Cause:       "nothing to change",
					Suggestions: []string{"Pass the new text, --category, or both"},
				}
			}

			return a.withStore("edit task", func(s store.Store) error {
				task, err := s.Task(id)
				if err != nil {
					return err
				}
				if strings.TrimSpace(text) == "" {
					text = task.Text
				}
				if category == "" {
					category = task.Category
				}
				if err := s.EditTask(id, text, category); err != nil {
					return err
				}

				updated, err := s.Task(id)
				if err != nil {
					return err
				}
				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Message(updated, "Updated task %d", id)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	return cmd
}

func (a *App) newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task done, or not done when it already is",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("toggle task", args[0])
			if err != nil {
				return err
			}

			return a.withStore("toggle task", func(s store.Store) error {
				if err := s.ToggleTask(id); err != nil {
					return err
				}
				task, err := s.Task(id)
				if err != nil {
					return err
				}

				state := "not done"
				if task.Completed {
					state = "done"
				}
				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Message(task, "Task %d marked %s", id, state)
			})
		},
	}
}

func (a *App) newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("remove task", args[0])
			if err != nil {
				return err
			}

			return a.withStore("remove task", func(s store.Store) error {
				task, err := s.Task(id)
				if err != nil {
					return err
				}
				ok, err := a.confirm(fmt.Sprintf("Remove task %d %q?", id, task.Text))
				if err != nil || !ok {
					return err
				}
				if err := s.RemoveTask(id); err != nil {
					return err
				}

				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Message(task, "Removed task %d", id)
			})
		},
	}
}

func (a *App) newMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <category>",
		Short: "Move a task to another category",
		Long: `Move a task to another category. A category that does not exist, or
All, moves the task to Uncategorized.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("move task", args[0])
			if err != nil {
				return err
			}

			return a.withStore("move task", func(s store.Store) error {
				if err := s.MoveTask(id, args[1]); err != nil {
					return err
				}
				task, err := s.Task(id)
				if err != nil {
					return err
				}

				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Message(task, "Moved task %d to %s", id, task.Category)
			})
		},
	}
}

func (a *App) newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [category]",
		Short: "Remove completed tasks",
		Long: `Remove the completed tasks of a category, or of every category with
"All". Without an argument the current category is cleared.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("clear completed tasks", func(s store.Store) error {
				scope := s.CurrentCategory()
				if len(args) == 1 {
					scope = args[0]
				}

				of, err := a.formatter()
				if err != nil {
					return err
				}

				pending := s.Statistics(scope).Completed
				if pending == 0 {
					return of.Message(map[string]int{"removed": 0}, "No completed tasks to clear in %s", scope)
				}
				ok, err := a.confirm(fmt.Sprintf("Remove %s from %s?", plural(pending, "completed task"), scope))
				if err != nil || !ok {
					return err
				}

				removed, err := s.ClearCompleted(scope)
				if err != nil {
					return err
				}
				return of.Message(map[string]int{"removed": removed}, "Removed %s", plural(removed, "completed task"))
			})
		},
	}
}

func (a *App) newListCommand() *cobra.Command {
	var (
		category string
		search   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List the tasks of a category in the order they were added. Without
--category the current category is listed; "All" lists every task.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("list tasks", func(s store.Store) error {
				if category == "" {
					category = s.CurrentCategory()
				}
				tasks := s.ListTasks(category, search)

				of, err := a.formatter()
				if err != nil {
					return err
				}
				if len(tasks) == 0 && !of.Structured() {
					fmt.Fprintf(a.out, "No tasks in %s\n", category)
					return nil
				}
				return of.Value(tasks, func(w io.Writer) {
					writeTaskTable(w, tasks)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to list")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only tasks whose text contains this term")
	return cmd
}

func (a *App) newStatsCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("show statistics", func(s store.Store) error {
				if category == "" {
					category = s.CurrentCategory()
				}
				stats := s.Statistics(category)

				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Value(struct {
					Category string `json:"category" yaml:"category"`
					types.Statistics `yaml:",inline"`
				}{category, stats}, func(w io.Writer) {
					writeStatistics(w, category, stats)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to summarize")
	return cmd
}

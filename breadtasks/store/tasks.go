package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/internal/validation"
	"github.com/breadtasks/breadtasks/types"
)

// AddTask implements Store.AddTask
func (s *jsonFileStore) AddTask(text, category string) (types.Task, error) {
	var added types.Task
	err := s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		text, err := validation.TaskText(text)
		if err != nil {
			return false, err
		}

		stamp := types.NewTimestamp(now)
		added = types.Task{
			ID:           state.NextID,
			Text:         text,
			CreatedAt:    stamp,
			Category:     resolveCategory(state, category),
			LastModified: stamp,
		}
		state.Tasks = append(state.Tasks, added)
		state.NextID++
		return true, nil
	})
	if err != nil {
		return types.Task{}, err
	}

	s.logger.WithField("id", added.ID).Debug("added task")
	return added, nil
}

// EditTask implements Store.EditTask
func (s *jsonFileStore) EditTask(id int, text, category string) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		i, err := findTask(state, id)
		if err != nil {
			return false, err
		}
		text, err := validation.TaskText(text)
		if err != nil {
			return false, err
		}

		task := &state.Tasks[i]
		task.Text = text
		task.Category = resolveCategory(state, category)
		task.Touch(now)
		return true, nil
	})
}

// ToggleTask implements Store.ToggleTask
func (s *jsonFileStore) ToggleTask(id int) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		i, err := findTask(state, id)
		if err != nil {
			return false, err
		}

		task := &state.Tasks[i]
		task.Completed = !task.Completed
		task.Touch(now)
		return true, nil
	})
}

// RemoveTask implements Store.RemoveTask
func (s *jsonFileStore) RemoveTask(id int) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		i, err := findTask(state, id)
		if err != nil {
			return false, nil
		}
		state.Tasks = append(state.Tasks[:i], state.Tasks[i+1:]...)
		return true, nil
	})
}

// MoveTask implements Store.MoveTask
func (s *jsonFileStore) MoveTask(id int, category string) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		i, err := findTask(state, id)
		if err != nil {
			return false, err
		}

		task := &state.Tasks[i]
		target := resolveCategory(state, category)
		if task.Category == target {
			return false, nil
		}
		task.Category = target
		task.Touch(now)
		return true, nil
	})
}

// ClearCompleted implements Store.ClearCompleted
func (s *jsonFileStore) ClearCompleted(scope string) (int, error) {
	removed := 0
	err := s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		kept := make([]types.Task, 0, len(state.Tasks))
		for _, task := range state.Tasks {
			if task.Completed && task.Matches(scope) {
				removed++
				continue
			}
			kept = append(kept, task)
		}
		state.Tasks = kept
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Task implements Store.Task
func (s *jsonFileStore) Task(id int) (types.Task, error) {
	return storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (types.Task, error) {
		i, err := findTask(s.state, id)
		if err != nil {
			return types.Task{}, err
		}
		return s.state.Tasks[i], nil
	})
}

func findTask(state *storage.StateFile, id int) (int, error) {
	for i, task := range state.Tasks {
		if task.ID == id {
			return i, nil
		}
	}
	return -1, &types.NotFoundError{Resource: "task", ID: strconv.Itoa(id)}
}

// resolveCategory maps a requested category to the one a task is stored
// under. Unknown names and the All filter fall back to Uncategorized.
func resolveCategory(state *storage.StateFile, category string) string {
	category = strings.TrimSpace(category)
	if category == types.CategoryAll || !types.ContainsCategory(state.Categories, category) {
		return types.CategoryUncategorized
	}
	return category
}

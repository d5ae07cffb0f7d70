package store

import (
	"strings"
	"time"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/internal/validation"
	"github.com/breadtasks/breadtasks/types"
)

// AddCategory implements Store.AddCategory
func (s *jsonFileStore) AddCategory(name string) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		name, err := availableName(state, name)
		if err != nil {
			return false, err
		}
		state.Categories = append(state.Categories, name)
		return true, nil
	})
}

// RenameCategory implements Store.RenameCategory. Tasks follow the
// category without their lastModified moving.
func (s *jsonFileStore) RenameCategory(oldName, newName string) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		i, err := findCategory(state, oldName, "rename")
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(newName) == oldName {
			return false, nil
		}
		newName, err := availableName(state, newName)
		if err != nil {
			return false, err
		}

		state.Categories[i] = newName
		for j := range state.Tasks {
			if state.Tasks[j].Category == oldName {
				state.Tasks[j].Category = newName
			}
		}
		if state.CurrentCategory == oldName {
			state.CurrentCategory = newName
		}
		return true, nil
	})
}

// DeleteCategory implements Store.DeleteCategory
func (s *jsonFileStore) DeleteCategory(name string) (int, error) {
	reassigned := 0
	err := s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		i, err := findCategory(state, name, "delete")
		if err != nil {
			return false, err
		}

		for j := range state.Tasks {
			if state.Tasks[j].Category == name {
				state.Tasks[j].Category = types.CategoryUncategorized
				state.Tasks[j].Touch(now)
				reassigned++
			}
		}
		state.Categories = append(state.Categories[:i], state.Categories[i+1:]...)
		if state.CurrentCategory == name {
			state.CurrentCategory = types.CategoryUncategorized
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return reassigned, nil
}

// Categories implements Store.Categories
func (s *jsonFileStore) Categories() []string {
	var out []string
	s.read(func(state *storage.StateFile) {
		out = append([]string(nil), state.Categories...)
	})
	return out
}

// CategoryCounts implements Store.CategoryCounts
func (s *jsonFileStore) CategoryCounts() []types.CategoryCount {
	var out []types.CategoryCount
	s.read(func(state *storage.StateFile) {
		out = make([]types.CategoryCount, 0, len(state.Categories))
		for _, name := range state.Categories {
			count := 0
			for _, task := range state.Tasks {
				if task.Matches(name) {
					count++
				}
			}
			out = append(out, types.CategoryCount{Name: name, Count: count})
		}
	})
	return out
}

// CurrentCategory implements Store.CurrentCategory
func (s *jsonFileStore) CurrentCategory() string {
	var current string
	s.read(func(state *storage.StateFile) {
		current = state.CurrentCategory
	})
	return current
}

// SelectCategory implements Store.SelectCategory
func (s *jsonFileStore) SelectCategory(name string) error {
	return s.mutate(func(state *storage.StateFile, now time.Time) (bool, error) {
		if !types.ContainsCategory(state.Categories, name) {
			return false, &types.NotFoundError{Resource: "category", ID: name}
		}
		if state.CurrentCategory == name {
			return false, nil
		}
		state.CurrentCategory = name
		return true, nil
	})
}

// findCategory locates a user category that op may change
func findCategory(state *storage.StateFile, name, op string) (int, error) {
	if types.IsReservedCategory(name) {
		return -1, &types.ProtectedError{Category: name, Operation: op}
	}
	i := types.IndexCategory(state.Categories, name)
	if i < 0 {
		return -1, &types.NotFoundError{Resource: "category", ID: name}
	}
	return i, nil
}

// availableName validates a new category name against the registry
func availableName(state *storage.StateFile, name string) (string, error) {
	name, err := validation.CategoryName(name)
	if err != nil {
		return "", err
	}
	if types.IsReservedCategory(name) {
		return "", &types.ValidationError{Field: "category", Value: name, Reason: "is a reserved name"}
	}
	if types.ContainsCategory(state.Categories, name) {
		return "", &types.ValidationError{Field: "category", Value: name, Reason: "already exists"}
	}
	return name, nil
}

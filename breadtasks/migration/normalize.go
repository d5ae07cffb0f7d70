package migration

import (
	"fmt"
	"strings"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/types"
)

// normalizeState fills the file-level fields of state from raw and
// restores the store invariants:
//   - the registry holds All first and Uncategorized, without duplicates
//   - every task points at a registered category other than All
//   - task ids are unique and nextId is above all of them
//   - currentCategory is registered
func normalizeState(raw *storage.RawState, state *storage.StateFile, result *Result) {
	state.Categories = normalizeCategories(raw.Categories, result)

	state.Tasks = dedupTasks(state.Tasks, result)

	for i := range state.Tasks {
		task := &state.Tasks[i]
		if task.Category == types.CategoryAll || !types.ContainsCategory(state.Categories, task.Category) {
			result.stateChanged(LevelWarning, fmt.Sprintf("task %d: unknown category %q moved to %q",
				task.ID, task.Category, types.CategoryUncategorized))
			task.Category = types.CategoryUncategorized
		}
	}

	if raw.NextID == nil {
		state.NextID = len(raw.Tasks) + 1
		result.stateChanged(LevelInfo, fmt.Sprintf("set missing nextId to %d", state.NextID))
	} else {
		state.NextID = *raw.NextID
	}
	if floor := maxTaskID(state.Tasks) + 1; state.NextID < floor {
		result.stateChanged(LevelWarning, fmt.Sprintf("raised nextId from %d to %d to avoid reusing ids", state.NextID, floor))
		state.NextID = floor
	}

	switch {
	case raw.CurrentCategory == nil:
		state.CurrentCategory = types.CategoryUncategorized
		result.stateChanged(LevelInfo, fmt.Sprintf("set missing currentCategory to %q", types.CategoryUncategorized))
	case !types.ContainsCategory(state.Categories, *raw.CurrentCategory):
		state.CurrentCategory = types.CategoryUncategorized
		result.stateChanged(LevelWarning, fmt.Sprintf("unknown currentCategory %q reset to %q",
			*raw.CurrentCategory, types.CategoryUncategorized))
	default:
		state.CurrentCategory = *raw.CurrentCategory
	}
}

// normalizeCategories inserts All at the front and appends Uncategorized
// when absent, then removes blanks and duplicates keeping first occurrences
func normalizeCategories(in []string, result *Result) []string {
	if in == nil {
		result.stateChanged(LevelInfo, "set missing categories to defaults")
		return types.DefaultCategories()
	}

	categories := make([]string, len(in))
	copy(categories, in)

	if !types.ContainsCategory(categories, types.CategoryAll) {
		categories = append([]string{types.CategoryAll}, categories...)
		result.stateChanged(LevelInfo, fmt.Sprintf("inserted %q category", types.CategoryAll))
	}
	if !types.ContainsCategory(categories, types.CategoryUncategorized) {
		categories = append(categories, types.CategoryUncategorized)
		result.stateChanged(LevelInfo, fmt.Sprintf("appended %q category", types.CategoryUncategorized))
	}

	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			result.stateChanged(LevelWarning, "dropped blank category name")
			continue
		}
		if seen[c] {
			result.stateChanged(LevelInfo, fmt.Sprintf("dropped duplicate category %q", c))
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// dedupTasks keeps the first task for every id
func dedupTasks(tasks []types.Task, result *Result) []types.Task {
	seen := make(map[int]bool, len(tasks))
	out := make([]types.Task, 0, len(tasks))
	for _, task := range tasks {
		if seen[task.ID] {
			result.Stats.DroppedTasks++
			result.stateChanged(LevelWarning, fmt.Sprintf("dropped duplicate task id %d (%q)", task.ID, task.Text))
			continue
		}
		seen[task.ID] = true
		out = append(out, task)
	}
	return out
}

func maxTaskID(tasks []types.Task) int {
	max := 0
	for _, task := range tasks {
		if task.ID > max {
			max = task.ID
		}
	}
	return max
}

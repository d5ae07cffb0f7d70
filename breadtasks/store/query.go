package store

import (
	"math"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/search"
	"github.com/breadtasks/breadtasks/types"
)

// ListTasks implements Store.ListTasks
func (s *jsonFileStore) ListTasks(category, searchTerm string) []types.Task {
	matcher := search.NewMatcher(searchTerm, search.Options{})

	out := []types.Task{}
	s.read(func(state *storage.StateFile) {
		for _, task := range state.Tasks {
			if task.Matches(category) && matcher.Match(task.Text) {
				out = append(out, task)
			}
		}
	})
	return out
}

// Statistics implements Store.Statistics
func (s *jsonFileStore) Statistics(category string) types.Statistics {
	var stats types.Statistics
	s.read(func(state *storage.StateFile) {
		stats = computeStatistics(state.Tasks, category)
	})
	return stats
}

func computeStatistics(tasks []types.Task, category string) types.Statistics {
	var stats types.Statistics
	for _, task := range tasks {
		if !task.Matches(category) {
			continue
		}
		stats.Total++
		if task.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = math.Round(float64(stats.Completed)/float64(stats.Total)*1000) / 10
	}
	return stats
}

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/breadtasks/breadtasks/types"
)

// AssertTaskIDs checks the ids of tasks, in order
func AssertTaskIDs(t *testing.T, tasks []types.Task, want ...int) {
	t.Helper()
	got := make([]int, len(tasks))
	for i, task := range tasks {
		got[i] = task.ID
	}
	if want == nil {
		want = []int{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("task ids mismatch (-want +got):\n%s", diff)
	}
}

// AssertTaskTexts checks the texts of tasks, in order
func AssertTaskTexts(t *testing.T, tasks []types.Task, want ...string) {
	t.Helper()
	got := make([]string, len(tasks))
	for i, task := range tasks {
		got[i] = task.Text
	}
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("task texts mismatch (-want +got):\n%s", diff)
	}
}

// AssertAllInCategory checks that every task is stored under category
func AssertAllInCategory(t *testing.T, tasks []types.Task, category string) {
	t.Helper()
	for _, task := range tasks {
		if task.Category != category {
			t.Errorf("task %d: expected category %q, got %q", task.ID, category, task.Category)
		}
	}
}

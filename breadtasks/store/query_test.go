package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/breadtasks/breadtasks/testutil"
	"github.com/breadtasks/breadtasks/types"
)

func TestListTasks(t *testing.T) {
	env := newTestEnv(t, nil)
	mustAddCategory(t, env.store, "Home")
	mustAdd(t, env.store, "Buy MILK", "Home")
	mustAdd(t, env.store, "Call plumber", "")
	mustAdd(t, env.store, "milk the budget", "")

	testCases := []struct {
		name     string
		category string
		term     string
		want     []int
	}{
		{name: "all", category: types.CategoryAll, want: []int{1, 2, 3}},
		{name: "category", category: "Home", want: []int{1}},
		{name: "search is case-insensitive", category: types.CategoryAll, term: "milk", want: []int{1, 3}},
		{name: "search within category", category: types.CategoryUncategorized, term: "Milk", want: []int{3}},
		{name: "no match", category: types.CategoryAll, term: "bread", want: nil},
		{name: "leading space is kept", category: types.CategoryAll, term: " milk", want: []int{1}},
		{name: "trailing space is kept", category: types.CategoryAll, term: "MILK ", want: []int{3}},
		{name: "trailing space at end of text", category: types.CategoryAll, term: "plumber ", want: nil},
		{name: "unknown category", category: "Garden", want: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertTaskIDs(t, env.store.ListTasks(tc.category, tc.term), tc.want...)
		})
	}
}

func TestListTasksReturnsCopies(t *testing.T) {
	env := newTestEnv(t, nil)
	mustAdd(t, env.store, "x", "")

	tasks := env.store.ListTasks(types.CategoryAll, "")
	tasks[0].Text = "mutated"

	if got := env.store.ListTasks(types.CategoryAll, ""); got[0].Text != "x" {
		t.Errorf("ListTasks should return copies, got %q", got[0].Text)
	}
}

func TestStatistics(t *testing.T) {
	t.Run("fresh store", func(t *testing.T) {
		env := newTestEnv(t, nil)

		if got := env.store.ListTasks(types.CategoryAll, ""); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", got)
		}
		if diff := cmp.Diff(types.Statistics{}, env.store.Statistics(types.CategoryAll)); diff != "" {
			t.Errorf("statistics mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single completed task", func(t *testing.T) {
		env := newTestEnv(t, nil)
		mustAddCategory(t, env.store, "Work")
		id := mustAdd(t, env.store, "Buy milk", "Work")
		if err := env.store.ToggleTask(id); err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}

		want := types.Statistics{Total: 1, Completed: 1, Percentage: 100.0}
		if diff := cmp.Diff(want, env.store.Statistics("Work")); diff != "" {
			t.Errorf("statistics mismatch (-want +got):\n%s", diff)
		}
		testutil.AssertTaskIDs(t, env.store.ListTasks("Work", "milk"), id)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		env := newTestEnv(t, nil)
		id := mustAdd(t, env.store, "a", "")
		mustAdd(t, env.store, "b", "")
		mustAdd(t, env.store, "c", "")
		if err := env.store.ToggleTask(id); err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}

		if got := env.store.Statistics(types.CategoryAll).Percentage; got != 33.3 {
			t.Errorf("expected 33.3, got %v", got)
		}
	})
}

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/breadtasks/breadtasks/testutil"
	"github.com/breadtasks/breadtasks/types"
)

func openOnDisk(t *testing.T, path string) Store {
	t.Helper()
	clock := testutil.NewClock(testStart)
	s, err := New(path, WithTimeFunc(clock.Now), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s
}

func TestJSONStoreIntegration(t *testing.T) {
	t.Run("save and reload round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", testutil.DataFileName)

		s := openOnDisk(t, path)
		mustAddCategory(t, s, "Work")
		mustAddCategory(t, s, "Home")
		a := mustAdd(t, s, "report", "Work")
		mustAdd(t, s, "dishes", "Home")
		if err := s.ToggleTask(a); err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}
		if err := s.SelectCategory("Home"); err != nil {
			t.Fatalf("SelectCategory: %v", err)
		}
		before := s.Snapshot()
		_ = s.Close()

		reopened := openOnDisk(t, path)
		defer func() { _ = reopened.Close() }()
		after := reopened.Snapshot()

		if diff := cmp.Diff(before.Tasks, after.Tasks); diff != "" {
			t.Errorf("tasks mismatch (-before +after):\n%s", diff)
		}
		if diff := cmp.Diff(before.Categories, after.Categories); diff != "" {
			t.Errorf("categories mismatch (-before +after):\n%s", diff)
		}
		if before.NextID != after.NextID || before.CurrentCategory != after.CurrentCategory {
			t.Errorf("nextId/currentCategory mismatch: %d/%q vs %d/%q",
				before.NextID, before.CurrentCategory, after.NextID, after.CurrentCategory)
		}
	})

	t.Run("legacy file is migrated and rewritten", func(t *testing.T) {
		path := testutil.WriteDataFile(t, testutil.LegacyFixture)

		s := openOnDisk(t, path)
		defer func() { _ = s.Close() }()

		if diff := cmp.Diff([]string{"All", "Baking", "Errands", "Uncategorized"}, s.Categories()); diff != "" {
			t.Errorf("categories mismatch (-want +got):\n%s", diff)
		}
		tasks := s.ListTasks(types.CategoryAll, "")
		testutil.AssertTaskIDs(t, tasks, 1, 2, 3)
		if tasks[0].Category != types.CategoryUncategorized {
			t.Errorf("missing category should default, got %q", tasks[0].Category)
		}
		if tasks[1].LastModified.String() != "2023-01-02 08:15" {
			t.Errorf("lastModified should be backfilled from createdAt, got %s", tasks[1].LastModified)
		}
		if tasks[2].LastModified.String() != "2023-01-04 11:30" {
			t.Errorf("existing lastModified should be kept, got %s", tasks[2].LastModified)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read data file: %v", err)
		}
		if strings.Contains(string(data), "priority") {
			t.Error("rewritten file should not carry priority")
		}
	})

	t.Run("corrupt file is backed up and replaced", func(t *testing.T) {
		path := testutil.WriteDataFile(t, testutil.CorruptFixture)

		s := openOnDisk(t, path)
		if s.LoadError() == nil {
			t.Error("expected a load error")
		}
		_ = s.Close()

		backups, _ := filepath.Glob(path + ".corrupt-*")
		if len(backups) != 1 {
			t.Fatalf("expected one backup, got %v", backups)
		}
		saved, _ := os.ReadFile(backups[0])
		if string(saved) != string(testutil.Fixture(t, testutil.CorruptFixture)) {
			t.Error("backup should hold the original bytes")
		}

		reopened := openOnDisk(t, path)
		defer func() { _ = reopened.Close() }()
		if reopened.LoadError() != nil {
			t.Errorf("replacement file should load cleanly: %v", reopened.LoadError())
		}
	})

	t.Run("current file is left untouched", func(t *testing.T) {
		path := testutil.WriteDataFile(t, testutil.CurrentFixture)

		s := openOnDisk(t, path)
		defer func() { _ = s.Close() }()

		data, _ := os.ReadFile(path)
		if string(data) != string(testutil.Fixture(t, testutil.CurrentFixture)) {
			t.Error("loading a current file should not rewrite it")
		}
		if s.Snapshot().NextID != 5 {
			t.Errorf("expected nextId 5, got %d", s.Snapshot().NextID)
		}
	})
}

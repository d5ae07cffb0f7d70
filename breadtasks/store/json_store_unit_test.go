package store

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/testutil"
	"github.com/breadtasks/breadtasks/types"
)

func TestJSONStoreWithMockFS(t *testing.T) {
	t.Run("fresh store persists the default state", func(t *testing.T) {
		env := newTestEnv(t, nil)

		content, ok := env.fs.GetFileContent(testPath)
		if !ok {
			t.Fatal("expected data file to be written on first start")
		}

		var state storage.StateFile
		if err := json.Unmarshal(content, &state); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}
		if diff := cmp.Diff(types.DefaultCategories(), state.Categories); diff != "" {
			t.Errorf("categories mismatch (-want +got):\n%s", diff)
		}
		if state.NextID != 1 || state.CurrentCategory != types.CategoryUncategorized || len(state.Tasks) != 0 {
			t.Errorf("unexpected default state: %+v", state)
		}
		if state.Version != types.AppVersion {
			t.Errorf("expected version %s, got %s", types.AppVersion, state.Version)
		}
		if state.LastSaved != "2024-03-09 14:05:00" {
			t.Errorf("unexpected lastSaved %q", state.LastSaved)
		}
		if env.store.LoadError() != nil {
			t.Errorf("missing file is not a load error: %v", env.store.LoadError())
		}
	})

	t.Run("current file is not rewritten on load", func(t *testing.T) {
		env := newTestEnv(t, testutil.Fixture(t, testutil.CurrentFixture))

		if env.fs.Writes != 1 {
			t.Errorf("expected only the seeding write, got %d writes", env.fs.Writes)
		}
		if env.store.CurrentCategory() != "Work" {
			t.Errorf("expected persisted current category, got %q", env.store.CurrentCategory())
		}
	})

	t.Run("every mutation writes through a temp file", func(t *testing.T) {
		env := newTestEnv(t, nil)
		writes := env.fs.Writes

		mustAdd(t, env.store, "Buy milk", "")

		if env.fs.Writes != writes+1 {
			t.Errorf("expected one write, got %d", env.fs.Writes-writes)
		}
		if leftovers := env.fs.FilesWithPrefix(testPath + "."); len(leftovers) != 0 {
			t.Errorf("temp files left behind: %v", leftovers)
		}

		content, _ := env.fs.GetFileContent(testPath)
		if !strings.Contains(string(content), `"text": "Buy milk"`) {
			t.Errorf("expected task in data file, got:\n%s", content)
		}
	})

	t.Run("no-op operations do not write", func(t *testing.T) {
		env := newTestEnv(t, nil)
		id := mustAdd(t, env.store, "Buy milk", "")
		writes := env.fs.Writes

		if err := env.store.RemoveTask(99); err != nil {
			t.Errorf("RemoveTask of unknown id: %v", err)
		}
		if err := env.store.MoveTask(id, types.CategoryUncategorized); err != nil {
			t.Errorf("MoveTask to same category: %v", err)
		}
		if n, err := env.store.ClearCompleted(types.CategoryAll); err != nil || n != 0 {
			t.Errorf("ClearCompleted = %d, %v", n, err)
		}
		if err := env.store.SelectCategory(types.CategoryUncategorized); err != nil {
			t.Errorf("SelectCategory of current: %v", err)
		}

		if env.fs.Writes != writes {
			t.Errorf("expected no writes, got %d", env.fs.Writes-writes)
		}
	})

	t.Run("failed save rolls back", func(t *testing.T) {
		env := newTestEnv(t, nil)
		mustAdd(t, env.store, "first", "")
		mustAddCategory(t, env.store, "Work")
		before := env.store.Snapshot()

		diskErr := errors.New("disk full")
		env.fs.WriteFileError = diskErr

		_, err := env.store.AddTask("second", "Work")
		if !errors.Is(err, types.ErrPersist) || !errors.Is(err, diskErr) {
			t.Fatalf("expected persist error wrapping disk error, got %v", err)
		}
		if _, err := env.store.DeleteCategory("Work"); !errors.Is(err, diskErr) {
			t.Fatalf("expected disk error, got %v", err)
		}

		after := env.store.Snapshot()
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("state changed despite failed saves (-before +after):\n%s", diff)
		}

		env.fs.WriteFileError = nil
		task, err := env.store.AddTask("second", "Work")
		if err != nil {
			t.Fatalf("AddTask after recovery: %v", err)
		}
		if task.ID != 2 {
			t.Errorf("expected id 2 after rollback, got %d", task.ID)
		}
	})

	t.Run("failed rename cleans up temp file", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.fs.RenameError = errors.New("cross-device link")

		if _, err := env.store.AddTask("x", ""); err == nil {
			t.Fatal("expected save error")
		}
		if leftovers := env.fs.FilesWithPrefix(testPath + "."); len(leftovers) != 0 {
			t.Errorf("temp files left behind: %v", leftovers)
		}
		if got := env.store.ListTasks(types.CategoryAll, ""); len(got) != 0 {
			t.Errorf("expected rollback, got %v", got)
		}
	})

	t.Run("file lock is released after every write", func(t *testing.T) {
		env := newTestEnv(t, nil)
		mustAdd(t, env.store, "x", "")

		lock := env.locks.Lock(testPath + ".lock")
		if lock.Acquired == 0 {
			t.Fatal("expected the data file lock to be used")
		}
		if lock.Held() {
			t.Error("lock should be released between operations")
		}
		if lock.Acquired != lock.Released {
			t.Errorf("unbalanced locking: %d locks, %d unlocks", lock.Acquired, lock.Released)
		}
	})
}

func TestJSONStoreLockFailure(t *testing.T) {
	fs := NewMockFileSystem()
	locks := NewMockFileLockFactory()
	locks.Lock(testPath + ".lock").Err = errors.New("resource busy")

	_, err := New(testPath, WithFileSystem(fs), WithFileLockFactory(locks), WithLogger(quietLogger()))
	if err == nil {
		t.Fatal("expected lock error")
	}
	if !errors.Is(err, types.ErrPersist) {
		t.Errorf("expected persist error, got %v", err)
	}
	if fs.FileExists(testPath) {
		t.Error("nothing should be written without the lock")
	}
}

func TestJSONStoreRecovery(t *testing.T) {
	backupPath := testPath + ".corrupt-20240309-140500"

	testCases := []struct {
		name string
		seed string
	}{
		{name: "truncated JSON", seed: string(testutil.Fixture(t, testutil.CorruptFixture))},
		{name: "not an object", seed: `[1, 2, 3]`},
		{name: "trailing data", seed: `{"tasks": []} {}`},
		{name: "record without text", seed: `{"tasks": [{"id": 1}]}`},
		{name: "schema violation", seed: `{"tasks": [{"id": -1, "text": "x", "createdAt": "2024-01-01 10:00"}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, []byte(tc.seed))

			if env.store.LoadError() == nil {
				t.Fatal("expected LoadError to report the failure")
			}
			backup, ok := env.fs.GetFileContent(backupPath)
			if !ok {
				t.Fatalf("expected backup at %s, have %v", backupPath, env.fs.FilesWithPrefix(testPath))
			}
			if string(backup) != tc.seed {
				t.Error("backup should keep the original bytes")
			}

			snapshot := env.store.Snapshot()
			if len(snapshot.Tasks) != 0 || snapshot.NextID != 1 {
				t.Errorf("expected default state, got %+v", snapshot)
			}
			if !env.fs.FileExists(testPath) {
				t.Error("default state should be persisted immediately")
			}
		})
	}

	t.Run("read error", func(t *testing.T) {
		fs := NewMockFileSystem()
		_ = fs.WriteFile(testPath, []byte(`{}`), 0644)
		readErr := errors.New("permission denied")
		fs.ReadFileError = readErr

		s, err := New(testPath,
			WithFileSystem(fs),
			WithFileLockFactory(NewMockFileLockFactory()),
			WithTimeFunc(func() time.Time { return testStart }),
			WithLogger(quietLogger()),
		)
		if err != nil {
			t.Fatalf("read errors should be recovered from: %v", err)
		}
		if !errors.Is(s.LoadError(), readErr) || !errors.Is(s.LoadError(), types.ErrPersist) {
			t.Errorf("unexpected load error %v", s.LoadError())
		}
		if !fs.FileExists(backupPath) {
			t.Error("unreadable file should be moved aside")
		}
	})

	t.Run("empty file is treated as missing", func(t *testing.T) {
		env := newTestEnv(t, []byte("  \n"))
		if env.store.LoadError() != nil {
			t.Errorf("unexpected load error %v", env.store.LoadError())
		}
		if env.fs.FileExists(backupPath) {
			t.Error("empty file needs no backup")
		}
	})
}

func TestJSONStoreMigratesOnLoad(t *testing.T) {
	env := newTestEnv(t, testutil.Fixture(t, testutil.LegacyFixture))

	if env.store.LoadError() != nil {
		t.Fatalf("unexpected load error %v", env.store.LoadError())
	}
	content, _ := env.fs.GetFileContent(testPath)
	if strings.Contains(string(content), "priority") {
		t.Error("migrated file should no longer carry priority")
	}
	if !strings.Contains(string(content), `"nextId": 4`) {
		t.Errorf("expected nextId in rewritten file, got:\n%s", content)
	}
}

func TestSetTimeFunc(t *testing.T) {
	env := newTestEnv(t, nil)
	later := testStart.Add(48 * time.Hour)
	env.store.(TestStore).SetTimeFunc(func() time.Time { return later })

	task, err := env.store.AddTask("x", "")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if !task.CreatedAt.Equal(types.NewTimestamp(later)) {
		t.Errorf("expected createdAt %v, got %v", later, task.CreatedAt)
	}
}

package store

import (
	"io"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/breadtasks/breadtasks/testutil"
)

const testPath = "data/breadtasks_data.json"

var testStart = time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)

func quietLogger() log.FieldLogger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

type testEnv struct {
	store Store
	fs    *MockFileSystem
	locks *MockFileLockFactory
	clock *testutil.Clock
}

// newTestEnv opens a store on a mock file system. seed, when not nil, is
// written as the data file first.
func newTestEnv(t *testing.T, seed []byte) *testEnv {
	t.Helper()

	env := &testEnv{
		fs:    NewMockFileSystem(),
		locks: NewMockFileLockFactory(),
		clock: testutil.NewClock(testStart),
	}
	if seed != nil {
		_ = env.fs.WriteFile(testPath, seed, 0644)
	}

	s, err := New(testPath,
		WithFileSystem(env.fs),
		WithFileLockFactory(env.locks),
		WithTimeFunc(env.clock.Now),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	env.store = s
	return env
}

func mustAdd(t *testing.T, s Store, text, category string) int {
	t.Helper()
	task, err := s.AddTask(text, category)
	if err != nil {
		t.Fatalf("AddTask(%q, %q): %v", text, category, err)
	}
	return task.ID
}

func mustAddCategory(t *testing.T, s Store, name string) {
	t.Helper()
	if err := s.AddCategory(name); err != nil {
		t.Fatalf("AddCategory(%q): %v", name, err)
	}
}

// Package testutil holds fixtures shared by the BreadTasks tests: sample
// data files in several schema generations and a controllable clock.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Fixture names under testdata/
const (
	// LegacyFixture predates categories on every task and lastModified;
	// tasks carry the dropped priority field
	LegacyFixture = "legacy.json"

	// CurrentFixture is a fully migrated file with ids 1, 2 and 4,
	// nextId 5 and currentCategory Work
	CurrentFixture = "current.json"

	// CorruptFixture is truncated JSON
	CorruptFixture = "corrupt.json"
)

// DataFileName mirrors the data file name used by the store
const DataFileName = "breadtasks_data.json"

// Fixture returns the contents of a file under testdata/
func Fixture(t *testing.T, name string) []byte {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get runtime caller info")
	}
	path := filepath.Join(filepath.Dir(filename), "..", "testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

// WriteDataFile writes a fixture as the data file in a fresh temp dir and
// returns its path
func WriteDataFile(t *testing.T, name string) string {
	t.Helper()
	return WriteDataBytes(t, Fixture(t, name))
}

// WriteDataBytes writes data as the data file in a fresh temp dir and
// returns its path
func WriteDataBytes(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DataFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	return path
}

// Clock is a manually advanced time source for WithTimeFunc options
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at start
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current clock time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

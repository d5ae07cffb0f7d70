// Package store owns the BreadTasks state: the task collection, the
// category registry, the id counter and the active category filter.
// Every mutation is persisted to the JSON data file before it returns.
package store

import (
	"time"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/types"
)

// Store defines the public interface of the task store.
//
// Mutations either persist and succeed, or fail and leave the in-memory
// state untouched. Read methods return copies.
type Store interface {
	// AddTask creates a task in category (normalized to Uncategorized when
	// unknown or All) and returns it
	AddTask(text, category string) (types.Task, error)

	// EditTask replaces the text and category of a task
	EditTask(id int, text, category string) error

	// ToggleTask flips the completed flag of a task
	ToggleTask(id int) error

	// RemoveTask deletes a task. Unknown ids are ignored.
	RemoveTask(id int) error

	// MoveTask changes the category of a task
	MoveTask(id int, category string) error

	// ClearCompleted removes the completed tasks in scope (every category
	// for All) and returns how many were removed
	ClearCompleted(scope string) (int, error)

	// Task returns a single task by id
	Task(id int) (types.Task, error)

	// ListTasks returns the tasks in category whose text contains
	// searchTerm, case-insensitively, in insertion order
	ListTasks(category, searchTerm string) []types.Task

	// Statistics summarizes completion for a category filter
	Statistics(category string) types.Statistics

	AddCategory(name string) error
	RenameCategory(oldName, newName string) error

	// DeleteCategory removes a category and moves its tasks to
	// Uncategorized, returning how many tasks moved
	DeleteCategory(name string) (int, error)

	// Categories returns the registry in display order
	Categories() []string

	// CategoryCounts returns each registry entry with its task count
	CategoryCounts() []types.CategoryCount

	CurrentCategory() string
	SelectCategory(name string) error

	// Snapshot returns a deep copy of the persisted state
	Snapshot() *storage.StateFile

	// LoadError returns the error that forced the store to start from the
	// default state, or nil when the data file loaded cleanly
	LoadError() error

	// Path returns the data file path
	Path() string

	// Close releases any resources held by the store
	Close() error
}

// TestStore extends Store with methods useful for testing
type TestStore interface {
	Store

	// SetTimeFunc sets a custom time function for deterministic timestamps
	SetTimeFunc(fn func() time.Time)
}

// New opens the store backed by the JSON file at filePath, creating it
// with the default state when missing. A file that cannot be loaded is
// moved aside and replaced by the default state; see LoadError.
func New(filePath string, opts ...JSONFileStoreOption) (Store, error) {
	return newJSONFileStore(filePath, opts...)
}

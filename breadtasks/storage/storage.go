// Package storage defines the on-disk shape of the BreadTasks state file,
// its default contents, and the schema it must satisfy after migration.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/breadtasks/breadtasks/types"
)

// DataFileName is the state file name inside the application data directory
const DataFileName = "breadtasks_data.json"

// StateFile is the persisted state of a store
type StateFile struct {
	Version         string       `json:"version"`
	LastSaved       string       `json:"lastSaved"`
	Tasks           []types.Task `json:"tasks"`
	Categories      []string     `json:"categories"`
	NextID          int          `json:"nextId"`
	CurrentCategory string       `json:"currentCategory"`
}

// DefaultState returns the state of a fresh store
func DefaultState() *StateFile {
	return &StateFile{
		Version:         types.AppVersion,
		Tasks:           []types.Task{},
		Categories:      types.DefaultCategories(),
		NextID:          1,
		CurrentCategory: types.CategoryUncategorized,
	}
}

// Clone returns a deep copy of the state
func (s *StateFile) Clone() *StateFile {
	clone := *s
	clone.Tasks = make([]types.Task, len(s.Tasks))
	copy(clone.Tasks, s.Tasks)
	clone.Categories = make([]string, len(s.Categories))
	copy(clone.Categories, s.Categories)
	return &clone
}

// Encode stamps the state with the save time and renders it as indented
// JSON with a trailing newline
func Encode(s *StateFile, savedAt time.Time) ([]byte, error) {
	s.Version = types.AppVersion
	s.LastSaved = savedAt.Format(types.SavedAtLayout)
	if s.Tasks == nil {
		s.Tasks = []types.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return buf.Bytes(), nil
}

// Record is one task as found on disk, before migration. Numbers are kept
// as json.Number so integer ids survive the round trip.
type Record map[string]interface{}

// Has reports whether the record carries field
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// RawState is the state file as found on disk. Optional fields are
// pointers so migration can tell absent from zero.
type RawState struct {
	Version         *string  `json:"version"`
	LastSaved       *string  `json:"lastSaved"`
	Tasks           []Record `json:"tasks"`
	Categories      []string `json:"categories"`
	NextID          *int     `json:"nextId"`
	CurrentCategory *string  `json:"currentCategory"`
}

// Decode parses a state file without applying any defaults
func Decode(data []byte) (*RawState, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw RawState
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to parse JSON: unexpected data after state object")
	}
	return &raw, nil
}

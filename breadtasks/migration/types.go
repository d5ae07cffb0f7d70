package migration

import (
	"time"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
)

// MessageLevel represents the severity of a message
type MessageLevel int

const (
	LevelDebug MessageLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lowercase level name
func (l MessageLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	default:
		return "error"
	}
}

// Message represents a single output message from a migration
type Message struct {
	Level   MessageLevel
	Text    string
	Details map[string]interface{} // Optional structured data
}

// Result encapsulates the outcome of a migration
type Result struct {
	Success       bool
	Code          int // 0 = success, >0 = specific error codes
	Messages      []Message
	ModifiedTasks []string // ids of modified task records
	Stats         Stats
}

// Changed reports whether the migration altered anything
func (r *Result) Changed() bool {
	return r.Stats.ModifiedTasks > 0 || r.Stats.StateChanges > 0
}

// merge folds a command result into r
func (r *Result) merge(other *Result) {
	r.Messages = append(r.Messages, other.Messages...)
	r.Stats.ModifiedTasks += other.Stats.ModifiedTasks
	for _, id := range other.ModifiedTasks {
		if !containsString(r.ModifiedTasks, id) {
			r.ModifiedTasks = append(r.ModifiedTasks, id)
		}
	}
	if !other.Success {
		r.Success = false
		r.Code = other.Code
	}
}

// Stats provides migration statistics
type Stats struct {
	TotalTasks    int
	ModifiedTasks int // record-level edits, counted per command
	StateChanges  int // file-level edits: categories, nextId, currentCategory
	DroppedTasks  int
	Duration      time.Duration
}

// MigrationContext holds the records a command operates on
type MigrationContext struct {
	Records []storage.Record
	Now     time.Time
}

// Options configures migration behavior
type Options struct {
	DryRun bool

	// Verbose adds a debug message per command with its modified count
	Verbose bool
}

// Command is one migration step applied to every task record
type Command interface {
	// Description returns a human-readable description of the command
	Description() string

	// Validate checks if the command can be executed
	Validate(ctx *MigrationContext) []Message

	// Execute applies the command to ctx.Records in place
	Execute(ctx *MigrationContext) *Result
}

// Error codes
const (
	CodeSuccess = iota
	CodeValidationError
	CodeExecutionError
)

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

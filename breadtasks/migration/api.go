// Package migration upgrades a state file read from disk to the current
// schema. Task records pass through a fixed plan of idempotent commands
// (drop legacy fields, default missing ones); the file-level fields are
// then normalized and checked for integrity.
package migration

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/types"
)

// taskFields are the fields of a current task record
var taskFields = []string{"id", "text", "completed", "createdAt", "category", "lastModified"}

func isTaskField(name string) bool {
	return containsString(taskFields, name)
}

// DefaultPlan returns the record migrations every load applies, oldest
// first. Order matters: createdAt must exist before lastModified is
// backfilled from it.
func DefaultPlan() []Command {
	return []Command{
		&RemoveField{FieldName: "priority"},
		&AddField{FieldName: "category", DefaultValue: types.CategoryUncategorized},
		&AddField{FieldName: "createdAt", DefaultFunc: func(ctx *MigrationContext) interface{} {
			return types.NewTimestamp(ctx.Now).String()
		}},
		&BackfillField{From: "createdAt", To: "lastModified"},
	}
}

// API runs migrations
type API struct {
	plan []Command
	now  func() time.Time
}

// NewAPI creates a migration API using DefaultPlan
func NewAPI() *API {
	return &API{plan: DefaultPlan(), now: time.Now}
}

// WithClock returns a copy of the API using fn as the load time
func (a *API) WithClock(fn func() time.Time) *API {
	clone := *a
	clone.now = fn
	return &clone
}

// Plan returns the record migration steps
func (a *API) Plan() []Command {
	return a.plan
}

// MigrationError reports a state file that cannot be upgraded
type MigrationError struct {
	Record string // task record id, empty for file-level problems
	Err    error
}

func (e *MigrationError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("migration failed: %v", e.Err)
	}
	return fmt.Sprintf("migration failed for task %s: %v", e.Record, e.Err)
}

// Unwrap returns the underlying error
func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Migrate upgrades raw to the current schema. raw is not modified. The
// returned Result lists every change, so callers can persist only when
// Result.Changed() and report the changes in dry runs.
func (a *API) Migrate(raw *storage.RawState, opts Options) (*storage.StateFile, *Result, error) {
	startTime := time.Now()

	records := copyRecords(raw.Tasks)
	ctx := &MigrationContext{
		Records: records,
		Now:     a.now(),
	}

	result := newResult(len(records))
	for _, cmd := range a.plan {
		stepResult := cmd.Execute(ctx)
		result.merge(stepResult)
		if !result.Success {
			result.Stats.Duration = time.Since(startTime)
			return nil, result, &MigrationError{Err: fmt.Errorf("%s failed", cmd.Description())}
		}
		if opts.Verbose {
			result.Messages = append(result.Messages, Message{
				Level:   LevelDebug,
				Text:    "ran: " + cmd.Description(),
				Details: map[string]interface{}{"modified": stepResult.Stats.ModifiedTasks},
			})
		}
	}

	tasks, err := decodeTasks(records)
	if err != nil {
		result.Success = false
		result.Code = CodeExecutionError
		result.Stats.Duration = time.Since(startTime)
		return nil, result, err
	}

	state := &storage.StateFile{
		Tasks: tasks,
	}
	if raw.Version != nil {
		state.Version = *raw.Version
	}
	if raw.LastSaved != nil {
		state.LastSaved = *raw.LastSaved
	}

	normalizeState(raw, state, result)

	if opts.DryRun && result.Changed() {
		result.Messages = append(result.Messages, Message{
			Level: LevelInfo,
			Text:  "(DRY RUN - no changes applied)",
		})
	}

	result.Stats.Duration = time.Since(startTime)
	return state, result, nil
}

// decodeTasks turns migrated records into tasks. A record without id or
// text, or with a field of the wrong type, fails the whole file.
func decodeTasks(records []storage.Record) ([]types.Task, error) {
	tasks := make([]types.Task, 0, len(records))
	for i, rec := range records {
		label := recordID(rec)
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		for _, field := range []string{"id", "text"} {
			if rec[field] == nil {
				return nil, &MigrationError{Record: label, Err: fmt.Errorf("missing required field '%s'", field)}
			}
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return nil, &MigrationError{Record: label, Err: err}
		}
		var task types.Task
		if err := json.Unmarshal(data, &task); err != nil {
			return nil, &MigrationError{Record: label, Err: err}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func copyRecords(in []storage.Record) []storage.Record {
	out := make([]storage.Record, len(in))
	for i, rec := range in {
		out[i] = make(storage.Record, len(rec))
		for k, v := range rec {
			out[i][k] = v
		}
	}
	return out
}

func recordID(rec storage.Record) string {
	if v, ok := rec["id"]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func newResult(total int) *Result {
	return &Result{
		Success:  true,
		Code:     CodeSuccess,
		Messages: []Message{},
		Stats: Stats{
			TotalTasks: total,
		},
	}
}

// absorbValidation appends validation messages and reports whether the
// command may proceed
func (r *Result) absorbValidation(messages []Message) bool {
	r.Messages = append(r.Messages, messages...)
	for _, msg := range messages {
		if msg.Level == LevelError {
			r.Success = false
			r.Code = CodeValidationError
			return false
		}
	}
	return true
}

func (r *Result) recordModified(rec storage.Record, what string) {
	id := recordID(rec)
	r.Stats.ModifiedTasks++
	if !containsString(r.ModifiedTasks, id) {
		r.ModifiedTasks = append(r.ModifiedTasks, id)
	}
	r.Messages = append(r.Messages, Message{
		Level:   LevelInfo,
		Text:    fmt.Sprintf("task %s: %s", id, what),
		Details: map[string]interface{}{"task": id},
	})
}

func (r *Result) stateChanged(level MessageLevel, text string) {
	r.Stats.StateChanges++
	r.Messages = append(r.Messages, Message{Level: level, Text: text})
}

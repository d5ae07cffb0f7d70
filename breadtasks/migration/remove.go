package migration

import (
	"fmt"
	"strings"
	"time"
)

// RemoveField drops a legacy field from every task record
type RemoveField struct {
	FieldName string
}

// Description returns a human-readable description of the command
func (r *RemoveField) Description() string {
	return fmt.Sprintf("Remove legacy field '%s'", r.FieldName)
}

// Validate checks if the remove can be executed
func (r *RemoveField) Validate(ctx *MigrationContext) []Message {
	var messages []Message

	if strings.TrimSpace(r.FieldName) == "" {
		messages = append(messages, Message{
			Level: LevelError,
			Text:  "Field name cannot be empty",
		})
		return messages
	}

	if isTaskField(r.FieldName) {
		messages = append(messages, Message{
			Level: LevelError,
			Text:  fmt.Sprintf("Field '%s' is part of the task schema and cannot be removed", r.FieldName),
		})
	}

	return messages
}

// Execute performs the remove operation
func (r *RemoveField) Execute(ctx *MigrationContext) *Result {
	result := newResult(len(ctx.Records))
	startTime := time.Now()

	if !result.absorbValidation(r.Validate(ctx)) {
		return result
	}

	for _, rec := range ctx.Records {
		if !rec.Has(r.FieldName) {
			continue
		}
		delete(rec, r.FieldName)
		result.recordModified(rec, fmt.Sprintf("removed legacy field '%s'", r.FieldName))
	}

	result.Stats.Duration = time.Since(startTime)
	return result
}

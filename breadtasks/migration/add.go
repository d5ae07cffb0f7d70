package migration

import (
	"fmt"
	"strings"
	"time"
)

// AddField sets a default value on every task record that lacks the
// field or carries null for it
type AddField struct {
	FieldName    string
	DefaultValue interface{}

	// DefaultFunc computes the default per run, e.g. the load time.
	// It takes precedence over DefaultValue.
	DefaultFunc func(ctx *MigrationContext) interface{}
}

// Description returns a human-readable description of the command
func (a *AddField) Description() string {
	if a.DefaultFunc != nil {
		return fmt.Sprintf("Default missing field '%s'", a.FieldName)
	}
	return fmt.Sprintf("Default missing field '%s' to %v", a.FieldName, a.DefaultValue)
}

// Validate checks if the add can be executed
func (a *AddField) Validate(ctx *MigrationContext) []Message {
	var messages []Message

	if strings.TrimSpace(a.FieldName) == "" {
		messages = append(messages, Message{
			Level: LevelError,
			Text:  "Field name cannot be empty",
		})
	}
	if a.DefaultValue == nil && a.DefaultFunc == nil {
		messages = append(messages, Message{
			Level: LevelError,
			Text:  fmt.Sprintf("Field '%s' needs a default value", a.FieldName),
		})
	}

	return messages
}

// Execute performs the add operation
func (a *AddField) Execute(ctx *MigrationContext) *Result {
	result := newResult(len(ctx.Records))
	startTime := time.Now()

	if !result.absorbValidation(a.Validate(ctx)) {
		return result
	}

	value := a.DefaultValue
	if a.DefaultFunc != nil {
		value = a.DefaultFunc(ctx)
	}

	for _, rec := range ctx.Records {
		if rec[a.FieldName] != nil {
			continue
		}
		rec[a.FieldName] = value
		result.recordModified(rec, fmt.Sprintf("set missing '%s' to %v", a.FieldName, value))
	}

	result.Stats.Duration = time.Since(startTime)
	return result
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/breadtasks/breadtasks/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add task", "rename category")
	Cause       string   // The underlying cause (e.g., "task \"7\" not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for invalid command-line input
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for data file problems
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "could not access the data file"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the data file"
		case strings.Contains(errStr, "lock"):
			cause = "data file is currently locked by another process"
		case strings.Contains(errStr, "no space"):
			cause = "no space left to write the data file"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError maps store errors to CLI errors with suggestions
func WrapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	wrapped := &CLIError{Operation: operation, Cause: err.Error(), Underlying: err}

	var notFound *types.NotFoundError
	switch {
	case errors.As(err, &notFound):
		if notFound.Resource == "task" {
			wrapped.Suggestions = []string{CommonSuggestions.CheckID}
		} else {
			wrapped.Suggestions = []string{CommonSuggestions.CheckCategory}
		}
	case errors.Is(err, types.ErrProtected):
		wrapped.Suggestions = []string{"All and Uncategorized are built in and cannot be renamed or deleted"}
	case errors.Is(err, types.ErrValidation):
		wrapped.Suggestions = []string{CommonSuggestions.RunHelp}
	case errors.Is(err, types.ErrPersist):
		return NewStoreError(operation, err, CommonSuggestions.CheckPerms, CommonSuggestions.CheckDataFile)
	}
	return wrapped
}

// Common suggestions
var (
	CommonSuggestions = struct {
		CheckID       string
		CheckCategory string
		CheckDataFile string
		CheckConfig   string
		RunHelp       string
		CheckPerms    string
		TryDryRun     string
	}{
		CheckID:       "Verify the task id exists (try 'breadtasks list -c All' first)",
		CheckCategory: "Verify the category exists (try 'breadtasks category list' first)",
		CheckDataFile: "Verify --data-file points to a writable location",
		CheckConfig:   "Check your configuration file or environment variables",
		RunHelp:       "Run command with --help for usage information",
		CheckPerms:    "Check file permissions and directory access",
		TryDryRun:     "Use --dry-run to preview the operation",
	}
)

package types

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrProtected  = errors.New("protected category")
	ErrPersist    = errors.New("persistence failed")
)

// ValidationError reports rejected input: empty text or name, or a
// category name collision
type ValidationError struct {
	Field  string // "text", "category", ...
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation on a task id or category that does
// not exist
type NotFoundError struct {
	Resource string // "task" or "category"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is matches ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ProtectedError reports an attempt to rename or delete a reserved category
type ProtectedError struct {
	Category  string
	Operation string
}

func (e *ProtectedError) Error() string {
	return fmt.Sprintf("cannot %s reserved category %q", e.Operation, e.Category)
}

// Is matches ErrProtected
func (e *ProtectedError) Is(target error) bool {
	return target == ErrProtected
}

// PersistError wraps a failure to read, lock or write the data file
type PersistError struct {
	Op   string // "load", "save", "lock", "export"
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is matches ErrPersist
func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

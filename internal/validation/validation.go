// Package validation normalizes and checks user-supplied task text and
// category names before they reach the store.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/breadtasks/breadtasks/types"
)

// maxCategoryLength bounds category names, in runes. Task text has no
// upper bound.
const maxCategoryLength = 100

// TaskText trims text and rejects empty values
func TaskText(text string) (string, error) {
	return nonEmpty("text", text)
}

// CategoryName trims name and rejects empty or oversized values.
// Reserved and duplicate names are checked by the store, which owns the
// registry.
func CategoryName(name string) (string, error) {
	trimmed, err := nonEmpty("category", name)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(trimmed) > maxCategoryLength {
		return "", &types.ValidationError{Field: "category", Value: truncate(trimmed, 20), Reason: "is too long"}
	}
	if strings.ContainsAny(trimmed, "\n\r\t") {
		return "", &types.ValidationError{Field: "category", Value: trimmed, Reason: "cannot contain line breaks or tabs"}
	}
	return trimmed, nil
}

func nonEmpty(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &types.ValidationError{Field: field, Reason: "cannot be empty"}
	}
	return trimmed, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

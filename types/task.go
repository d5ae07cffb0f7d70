package types

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the on-disk format of task timestamps (minute precision)
const TimestampLayout = "2006-01-02 15:04"

// SavedAtLayout is the on-disk format of file-level timestamps such as
// lastSaved and exportDate
const SavedAtLayout = "2006-01-02 15:04:05"

// timestampParseLayouts lists the layouts accepted when reading a timestamp.
// Hand-edited files sometimes carry seconds or full RFC 3339 values.
var timestampParseLayouts = []string{
	TimestampLayout,
	SavedAtLayout,
	time.RFC3339,
}

// Timestamp is a minute-resolution point in time in local time
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the minute
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Minute)}
}

// ParseTimestamp parses any of the accepted layouts
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampParseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q: expected format %q", s, TimestampLayout)
}

// String formats the timestamp with TimestampLayout
func (ts Timestamp) String() string {
	return ts.Local().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return fmt.Errorf("timestamp cannot be null")
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a string, got %s", s)
	}
	parsed, err := ParseTimestamp(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalYAML renders the timestamp the same way as JSON
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.String(), nil
}

// Equal reports whether both timestamps denote the same minute
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.Time.Equal(other.Time)
}

// Task is a single to-do item.
//
// ID is assigned by the store and never reused. CreatedAt is set once;
// LastModified moves on every change to Completed, Text or Category.
type Task struct {
	ID           int       `json:"id" yaml:"id"`
	Text         string    `json:"text" yaml:"text"`
	Completed    bool      `json:"completed" yaml:"completed"`
	CreatedAt    Timestamp `json:"createdAt" yaml:"createdAt"`
	Category     string    `json:"category" yaml:"category"`
	LastModified Timestamp `json:"lastModified" yaml:"lastModified"`
}

// Touch sets LastModified to now
func (t *Task) Touch(now time.Time) {
	t.LastModified = NewTimestamp(now)
}

// Matches reports whether the task belongs to the given category filter.
// The All pseudo-category matches every task.
func (t Task) Matches(category string) bool {
	return category == CategoryAll || t.Category == category
}

// Statistics summarizes completion for a category filter
type Statistics struct {
	Total      int     `json:"total" yaml:"total"`
	Completed  int     `json:"completed" yaml:"completed"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// CategoryCount pairs a registry entry with the number of tasks it holds
type CategoryCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

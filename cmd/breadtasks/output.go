package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/breadtasks/breadtasks/types"
)

// Output formats for --format
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// OutputFormatter renders command results in the configured format.
// table is for people; json and yaml print the value as is.
type OutputFormatter struct {
	format string
	out    io.Writer
}

// NewOutputFormatter creates a formatter, rejecting unknown formats
func NewOutputFormatter(format string, out io.Writer) (*OutputFormatter, error) {
	switch format = strings.ToLower(format); format {
	case formatTable, formatJSON, formatYAML:
		return &OutputFormatter{format: format, out: out}, nil
	}
	return nil, NewValidationError("format output", "format", format, "Use one of: table, json, yaml")
}

// Structured reports whether output is machine readable
func (of *OutputFormatter) Structured() bool {
	return of.format != formatTable
}

// Value prints data in json or yaml, or calls table for the table format
func (of *OutputFormatter) Value(data interface{}, table func(w io.Writer)) error {
	switch of.format {
	case formatJSON:
		enc := json.NewEncoder(of.out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(data)
	case formatYAML:
		enc := yaml.NewEncoder(of.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(of.out, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

// Message prints a human message in table mode and result otherwise
func (of *OutputFormatter) Message(result interface{}, format string, args ...interface{}) error {
	if of.Structured() {
		return of.Value(result, nil)
	}
	_, err := fmt.Fprintf(of.out, format+"\n", args...)
	return err
}

func writeTaskTable(w io.Writer, tasks []types.Task) {
	fmt.Fprintln(w, "ID\tDONE\tCATEGORY\tTEXT\tCREATED")
	for _, task := range tasks {
		done := " "
		if task.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\t%s\n", task.ID, done, task.Category, task.Text, task.CreatedAt)
	}
}

func writeStatistics(w io.Writer, category string, stats types.Statistics) {
	fmt.Fprintf(w, "Category:\t%s\n", category)
	fmt.Fprintf(w, "Total:\t%d\n", stats.Total)
	fmt.Fprintf(w, "Completed:\t%d\n", stats.Completed)
	fmt.Fprintf(w, "Progress:\t%.1f%%\n", stats.Percentage)
}

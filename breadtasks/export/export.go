// Package export writes standalone snapshots of a store.
//
// The export happens in two steps:
// 1. GenerateExportData builds the document from a store snapshot
// 2. ExportToPath renders it in a registered format and writes the file
//
// Neither step modifies the store.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/formats"
	"github.com/breadtasks/breadtasks/types"
)

// DefaultBaseName is the export file name without extension
const DefaultBaseName = "breadtasks_export"

// Source is anything that can hand out a copy of its state
type Source interface {
	Snapshot() *storage.StateFile
}

// Options configures an export
type Options struct {
	// Category limits the exported tasks; empty or All exports every task
	Category string

	// Format is the document format; nil selects by output path extension,
	// then formats.JSON
	Format *formats.DocumentFormat

	// Now overrides the export time
	Now func() time.Time
}

// GenerateExportData builds the export document from a snapshot of src
func GenerateExportData(src Source, options Options) *types.ExportDocument {
	now := time.Now
	if options.Now != nil {
		now = options.Now
	}
	category := options.Category
	if category == "" {
		category = types.CategoryAll
	}

	snapshot := src.Snapshot()

	tasks := make([]types.Task, 0, len(snapshot.Tasks))
	completed := 0
	for _, task := range snapshot.Tasks {
		if !task.Matches(category) {
			continue
		}
		tasks = append(tasks, task)
		if task.Completed {
			completed++
		}
	}

	return &types.ExportDocument{
		ExportDate: now().Format(types.SavedAtLayout),
		AppVersion: types.AppVersion,
		Tasks:      tasks,
		Categories: snapshot.Categories,
		Statistics: types.ExportStatistics{
			TotalTasks:      len(tasks),
			CompletedTasks:  completed,
			CategoriesCount: len(types.UserCategories(snapshot.Categories)),
		},
	}
}

// DefaultFilename returns the export file name for a format
func DefaultFilename(format *formats.DocumentFormat) string {
	if format == nil {
		format = formats.JSON
	}
	return DefaultBaseName + format.Extension
}

// ResolveFormat picks the format for an output path: the explicit one,
// else the one matching the path's extension, else JSON
func ResolveFormat(explicit *formats.DocumentFormat, outputPath string) *formats.DocumentFormat {
	if explicit != nil {
		return explicit
	}
	if f := formats.ForPath(outputPath); f != nil {
		return f
	}
	return formats.JSON
}

// ExportToPath writes an export of src to outputPath. An empty path or a
// directory receives DefaultFilename. It returns the path written.
func ExportToPath(src Source, options Options, outputPath string) (string, error) {
	format := ResolveFormat(options.Format, outputPath)

	switch {
	case outputPath == "":
		outputPath = DefaultFilename(format)
	case isDir(outputPath):
		outputPath = filepath.Join(outputPath, DefaultFilename(format))
	}

	data, err := format.Serialize(GenerateExportData(src, options))
	if err != nil {
		return "", fmt.Errorf("failed to render %s export: %w", format.Name, err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", &types.PersistError{Op: "export", Path: outputPath, Err: err}
	}
	return outputPath, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

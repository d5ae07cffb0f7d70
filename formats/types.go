// Package formats renders export documents. Each format registers itself
// under a lowercase name with the file extension its output uses.
package formats

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/breadtasks/breadtasks/types"
)

// DocumentFormat defines how an export document is serialized
type DocumentFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".json", ".md")
	Extension string

	// Serialize renders the export document
	Serialize func(doc *types.ExportDocument) ([]byte, error)
}

// registry holds all available document formats
var registry = make(map[string]*DocumentFormat)

// Register adds a new document format to the registry
func Register(format *DocumentFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}

	if !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a document format by name
func Get(name string) (*DocumentFormat, error) {
	format, exists := registry[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return format, nil
}

// ForPath returns the format whose extension matches path, or nil
func ForPath(path string) *DocumentFormat {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, name := range List() {
		if registry[name].Extension == ext {
			return registry[name]
		}
	}
	return nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// mustRegister registers a built-in format
func mustRegister(format *DocumentFormat) {
	if err := Register(format); err != nil {
		panic(fmt.Sprintf("failed to register %s format: %v", format.Name, err))
	}
}

// taskGroup is the tasks of one category, in registry order
type taskGroup struct {
	Category string
	Tasks    []types.Task
}

// groupByCategory groups tasks under the registry entries except All.
// Tasks whose category is not registered are listed under Uncategorized.
func groupByCategory(doc *types.ExportDocument) []taskGroup {
	groups := make([]taskGroup, 0, len(doc.Categories))
	index := make(map[string]int, len(doc.Categories))
	for _, name := range doc.Categories {
		if name == types.CategoryAll {
			continue
		}
		index[name] = len(groups)
		groups = append(groups, taskGroup{Category: name})
	}
	if _, ok := index[types.CategoryUncategorized]; !ok {
		index[types.CategoryUncategorized] = len(groups)
		groups = append(groups, taskGroup{Category: types.CategoryUncategorized})
	}

	for _, task := range doc.Tasks {
		i, ok := index[task.Category]
		if !ok {
			i = index[types.CategoryUncategorized]
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}
	return groups
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

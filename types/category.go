package types

// Reserved registry entries
const (
	// CategoryAll is the virtual filter matching every task. It is never
	// a task's category.
	CategoryAll = "All"

	// CategoryUncategorized is the default bucket for tasks
	CategoryUncategorized = "Uncategorized"
)

// DefaultCategories returns the registry of an empty store
func DefaultCategories() []string {
	return []string{CategoryAll, CategoryUncategorized}
}

// IsReservedCategory reports whether name is All or Uncategorized
func IsReservedCategory(name string) bool {
	return name == CategoryAll || name == CategoryUncategorized
}

// ContainsCategory reports whether the registry holds name (exact match)
func ContainsCategory(categories []string, name string) bool {
	return IndexCategory(categories, name) >= 0
}

// IndexCategory returns the position of name in the registry, or -1
func IndexCategory(categories []string, name string) int {
	for i, c := range categories {
		if c == name {
			return i
		}
	}
	return -1
}

// UserCategories returns the registry without the reserved entries
func UserCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if !IsReservedCategory(c) {
			out = append(out, c)
		}
	}
	return out
}

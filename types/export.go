package types

// ExportDocument is the standalone snapshot written by an export
type ExportDocument struct {
	ExportDate string           `json:"exportDate" yaml:"exportDate"`
	AppVersion string           `json:"appVersion" yaml:"appVersion"`
	Tasks      []Task           `json:"tasks" yaml:"tasks"`
	Categories []string         `json:"categories" yaml:"categories"`
	Statistics ExportStatistics `json:"statistics" yaml:"statistics"`
}

// ExportStatistics summarizes an export. CategoriesCount excludes the
// reserved categories.
type ExportStatistics struct {
	TotalTasks      int `json:"totalTasks" yaml:"totalTasks"`
	CompletedTasks  int `json:"completedTasks" yaml:"completedTasks"`
	CategoriesCount int `json:"categoriesCount" yaml:"categoriesCount"`
}

// AppName is the application's display name and data directory name
const AppName = "BreadTasks"

// AppVersion is written into every state file and export
const AppVersion = "1.0.0"

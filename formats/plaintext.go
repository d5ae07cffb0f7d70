package formats

import (
	"fmt"
	"strings"

	"github.com/breadtasks/breadtasks/types"
)

// PlainText renders a metadata header, a separator, then the tasks of
// each category indented under its name:
//
//	exportDate: 2024-03-09 14:05:42
//	appVersion: 1.0.0
//	totalTasks: 2
//	completedTasks: 1
//	categoriesCount: 1
//	---
//
//	Work
//	  [x] 1 Write report (created 2024-03-01 09:00)
var PlainText = &DocumentFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Serialize: func(doc *types.ExportDocument) ([]byte, error) {
		var b strings.Builder

		writeMetadata(&b, "exportDate", doc.ExportDate)
		writeMetadata(&b, "appVersion", doc.AppVersion)
		writeMetadata(&b, "totalTasks", doc.Statistics.TotalTasks)
		writeMetadata(&b, "completedTasks", doc.Statistics.CompletedTasks)
		writeMetadata(&b, "categoriesCount", doc.Statistics.CategoriesCount)
		b.WriteString("---\n")

		for _, group := range groupByCategory(doc) {
			b.WriteString("\n" + group.Category + "\n")
			if len(group.Tasks) == 0 {
				b.WriteString("  (no tasks)\n")
				continue
			}
			for _, task := range group.Tasks {
				fmt.Fprintf(&b, "  %s %d %s (created %s)\n",
					checkbox(task.Completed), task.ID, task.Text, task.CreatedAt)
			}
		}

		return []byte(b.String()), nil
	},
}

func writeMetadata(b *strings.Builder, key string, value interface{}) {
	fmt.Fprintf(b, "%s: %v\n", key, value)
}

func init() {
	mustRegister(PlainText)
}

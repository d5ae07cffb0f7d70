package formats

import (
	"fmt"
	"strings"

	"github.com/breadtasks/breadtasks/types"
)

// Markdown renders a checklist per category:
//
//	# BreadTasks export
//
//	## Work
//
//	- [x] Write report
//	- [ ] Send invoice
var Markdown = &DocumentFormat{
	Name:      "markdown",
	Extension: ".md",
	Serialize: func(doc *types.ExportDocument) ([]byte, error) {
		var b strings.Builder

		b.WriteString("# " + types.AppName + " export\n\n")
		fmt.Fprintf(&b, "Exported %s with version %s.\n\n", doc.ExportDate, doc.AppVersion)
		fmt.Fprintf(&b, "%d tasks, %d completed, %d categories.\n",
			doc.Statistics.TotalTasks, doc.Statistics.CompletedTasks, doc.Statistics.CategoriesCount)

		for _, group := range groupByCategory(doc) {
			b.WriteString("\n## " + escapeMarkdown(group.Category) + "\n\n")
			if len(group.Tasks) == 0 {
				b.WriteString("_No tasks_\n")
				continue
			}
			for _, task := range group.Tasks {
				fmt.Fprintf(&b, "- %s %s\n", checkbox(task.Completed), escapeMarkdown(task.Text))
			}
		}

		return []byte(b.String()), nil
	},
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

// escapeMarkdown keeps user text from being read as markup
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func init() {
	mustRegister(Markdown)
}

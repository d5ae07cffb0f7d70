package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/breadtasks/breadtasks/breadtasks/export"
	"github.com/breadtasks/breadtasks/breadtasks/store"
	"github.com/breadtasks/breadtasks/formats"
)

func (a *App) newExportCommand() *cobra.Command {
	var (
		output   string
		as       string
		category string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a standalone snapshot of the task list",
		Long: `Write every task, the category registry and summary statistics to a
file. The format comes from --as, else the output file extension, else
JSON. An output directory receives breadtasks_export.<ext>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var format *formats.DocumentFormat
			if as != "" {
				f, err := formats.Get(as)
				if err != nil {
					return NewValidationError("export tasks", "export format", as,
						"Available formats: "+joinFormats())
				}
				format = f
			}

			return a.withStore("export tasks", func(s store.Store) error {
				opts := export.Options{Category: category, Format: format}
				path, err := export.ExportToPath(s, opts, output)
				if err != nil {
					return err
				}

				doc := export.GenerateExportData(s, opts)
				of, err := a.formatter()
				if err != nil {
					return err
				}
				return of.Message(map[string]interface{}{
					"path":  path,
					"tasks": doc.Statistics.TotalTasks,
				}, "Exported %s to %s", plural(doc.Statistics.TotalTasks, "task"), path)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default: ./breadtasks_export.<ext>)")
	cmd.Flags().StringVar(&as, "as", "", "Export format: "+joinFormats())
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only export tasks in this category")
	return cmd
}

func joinFormats() string {
	return strings.Join(formats.List(), ", ")
}

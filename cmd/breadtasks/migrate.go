package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/breadtasks/breadtasks/breadtasks/migration"
	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/breadtasks/store"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func (a *App) newMigrateCommand() *cobra.Command {
	var (
		dryRun  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade the data file to the current format",
		Long: `Upgrade a data file written by an older version: drop the priority
field, fill in missing categories and timestamps, and repair the
category registry. Every command does this on load; migrate shows the
changes and lets you preview them with --dry-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.dataFilePath()
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(a.out, "Nothing to migrate: %s does not exist\n", path)
				return nil
			}
			if err != nil {
				return NewStoreError("migrate data file", err, CommonSuggestions.CheckPerms)
			}

			raw, err := storage.Decode(data)
			if err != nil {
				return &CLIError{
					Operation:   "migrate data file",
					Cause:       "the data file is not valid JSON",
					Details:     err.Error(),
					Suggestions: []string{"Any other command moves the broken file aside and starts an empty list"},
					Underlying:  err,
				}
			}

			opts := migration.Options{DryRun: dryRun, Verbose: verbose}
			_, result, err := migration.NewAPI().Migrate(raw, opts)
			if result != nil {
				a.printMessages(result.Messages, verbose)
			}
			if err != nil {
				return &CLIError{
					Operation:   "migrate data file",
					Cause:       err.Error(),
					Suggestions: []string{"Fix the record by hand, or let any other command move the file aside"},
					Underlying:  err,
				}
			}

			if !dryRun && result.Changed() {
				// opening the store migrates and saves
				if err := a.withStore("migrate data file", func(s store.Store) error { return nil }); err != nil {
					return err
				}
			}

			a.printSummary(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview changes without applying them")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed output")
	return cmd
}

// printMessages prints migration messages; warnings and errors go to stderr
func (a *App) printMessages(messages []migration.Message, verbose bool) {
	for _, msg := range messages {
		switch msg.Level {
		case migration.LevelError:
			fmt.Fprintln(a.errOut, errorStyle.Render("ERROR: "+msg.Text))
		case migration.LevelWarning:
			fmt.Fprintln(a.errOut, warningStyle.Render("WARN: "+msg.Text))
		case migration.LevelInfo:
			fmt.Fprintln(a.out, msg.Text)
		case migration.LevelDebug:
			if verbose {
				fmt.Fprintf(a.out, "DEBUG: %s\n", msg.Text)
			}
		}

		if verbose && len(msg.Details) > 0 {
			keys := make([]string, 0, len(msg.Details))
			for k := range msg.Details {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(a.out, "  %s: %v\n", k, msg.Details[k])
			}
		}
	}
}

func (a *App) printSummary(result *migration.Result) {
	fmt.Fprintln(a.out)
	if !result.Changed() {
		fmt.Fprintln(a.out, "Data file is up to date")
		return
	}

	fmt.Fprintln(a.out, "Migration completed successfully")
	fmt.Fprintf(a.out, "  Modified: %d/%d tasks\n", len(result.ModifiedTasks), result.Stats.TotalTasks)
	if result.Stats.StateChanges > 0 {
		fmt.Fprintf(a.out, "  File-level changes: %d\n", result.Stats.StateChanges)
	}
	if result.Stats.DroppedTasks > 0 {
		fmt.Fprintf(a.out, "  Dropped duplicates: %d\n", result.Stats.DroppedTasks)
	}
}

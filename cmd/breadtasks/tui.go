package main

import (
	"github.com/spf13/cobra"

	"github.com/breadtasks/breadtasks/breadtasks/store"
)

func (a *App) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface",
		Long: `Start the interactive interface. Use ←/→ to switch categories and ?
to list every key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore("run interface", func(s store.Store) error {
				return a.runTUI(s)
			})
		},
	}
}

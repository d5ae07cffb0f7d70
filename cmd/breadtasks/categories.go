package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/breadtasks/breadtasks/breadtasks/store"
	"github.com/breadtasks/breadtasks/types"
)

func (a *App) newCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
		Long: `Manage the category registry. All and Uncategorized always exist and
cannot be renamed or deleted.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories with their task counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore("list categories", func(s store.Store) error {
					counts := s.CategoryCounts()
					current := s.CurrentCategory()

					of, err := a.formatter()
					if err != nil {
						return err
					}
					return of.Value(counts, func(w io.Writer) {
						writeCategoryTable(w, counts, current)
					})
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore("add category", func(s store.Store) error {
					if err := s.AddCategory(args[0]); err != nil {
						return err
					}
					of, err := a.formatter()
					if err != nil {
						return err
					}
					return of.Message(s.Categories(), "Added category %s", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a category and move its tasks along",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore("rename category", func(s store.Store) error {
					if err := s.RenameCategory(args[0], args[1]); err != nil {
						return err
					}
					of, err := a.formatter()
					if err != nil {
						return err
					}
					return of.Message(s.Categories(), "Renamed category %s to %s", args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a category, moving its tasks to Uncategorized",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore("delete category", func(s store.Store) error {
					name := args[0]
					if types.IsReservedCategory(name) {
						return &types.ProtectedError{Category: name, Operation: "delete"}
					}
					if n := countIn(s.CategoryCounts(), name); n > 0 {
						question := fmt.Sprintf("Delete category %s and move %s to %s?",
							name, plural(n, "task"), types.CategoryUncategorized)
						ok, err := a.confirm(question)
						if err != nil || !ok {
							return err
						}
					}

					moved, err := s.DeleteCategory(name)
					if err != nil {
						return err
					}
					of, err := a.formatter()
					if err != nil {
						return err
					}
					return of.Message(map[string]int{"moved": moved}, "Deleted category %s (%s moved to %s)",
						name, plural(moved, "task"), types.CategoryUncategorized)
				})
			},
		},
		&cobra.Command{
			Use:     "use <name>",
			Aliases: []string{"select"},
			Short:   "Make a category the current one",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore("select category", func(s store.Store) error {
					if err := s.SelectCategory(args[0]); err != nil {
						return err
					}
					of, err := a.formatter()
					if err != nil {
						return err
					}
					return of.Message(map[string]string{"currentCategory": args[0]}, "Current category is now %s", args[0])
				})
			},
		},
	)

	return cmd
}

func countIn(counts []types.CategoryCount, name string) int {
	for _, c := range counts {
		if c.Name == name {
			return c.Count
		}
	}
	return 0
}

func writeCategoryTable(w io.Writer, counts []types.CategoryCount, current string) {
	fmt.Fprintln(w, "\tCATEGORY\tTASKS")
	for _, c := range counts {
		marker := ""
		if c.Name == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", marker, c.Name, c.Count)
	}
}

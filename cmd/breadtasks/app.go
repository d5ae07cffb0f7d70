package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/breadtasks/breadtasks/breadtasks/store"
	"github.com/breadtasks/breadtasks/internal/tui"
)

// App is the breadtasks command line: a cobra command tree backed by a
// viper instance, with its streams injectable for tests
type App struct {
	v          *viper.Viper
	rootCmd    *cobra.Command
	configFile string

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// logOut overrides the log file when set
	logOut  io.Writer
	closers []io.Closer
	logger  *log.Logger

	// runTUI starts the interactive interface
	runTUI func(s store.Store) error
}

// NewApp builds the command tree
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	a := &App{
		v:      newViper(),
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		runTUI: func(s store.Store) error {
			return tui.Run(s)
		},
	}
	a.createRootCommand()
	a.addCommands()
	return a
}

// Execute runs the command line with args
func (a *App) Execute(args []string) error {
	defer a.closeLogs()
	a.rootCmd.SetArgs(args)
	return a.rootCmd.Execute()
}

func (a *App) createRootCommand() {
	a.rootCmd = &cobra.Command{
		Use:   "breadtasks",
		Short: "BreadTasks - a small categorized to-do list",
		Long: `BreadTasks keeps a list of tasks grouped into categories and saves it
to a single JSON file after every change.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (BREADTASKS_*)
3. Configuration file (breadtasks.yaml in . or the user config directory)
4. Default values

Examples:
  # Add a task to the Work category
  breadtasks add "Call the bakery" --category Work

  # List open tasks matching "flour" in every category
  breadtasks list --category All --search flour

  # Start the interactive interface
  breadtasks tui`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.readConfig(a.configFile); err != nil {
				return err
			}
			return a.initLogging(a.v.GetString(keyLogLevel))
		},
	}

	a.rootCmd.SetIn(a.in)
	a.rootCmd.SetOut(a.out)
	a.rootCmd.SetErr(a.errOut)

	flags := a.rootCmd.PersistentFlags()
	flags.String(keyDataFile, "", "Data file path (default: breadtasks_data.json in the user data directory)")
	flags.String(keyDataDir, "", "Directory holding breadtasks_data.json")
	flags.StringVar(&a.configFile, "config", "", "Configuration file")
	flags.String(keyLogLevel, "warn", "Log level: debug|info|warn|error")
	flags.StringP(keyFormat, "f", "table", "Output format: table|json|yaml")
	flags.BoolP(keyYes, "y", false, "Answer yes to confirmation prompts")

	if err := bindFlags(a.v, flags, keyDataFile, keyDataDir, keyLogLevel, keyFormat, keyYes); err != nil {
		panic(err)
	}
}

func (a *App) addCommands() {
	a.rootCmd.AddCommand(
		a.newAddCommand(),
		a.newEditCommand(),
		a.newToggleCommand(),
		a.newRemoveCommand(),
		a.newMoveCommand(),
		a.newClearCommand(),
		a.newListCommand(),
		a.newStatsCommand(),
		a.newCategoryCommand(),
		a.newExportCommand(),
		a.newMigrateCommand(),
		a.newTUICommand(),
	)
}

// withStore opens the data file, runs fn and closes the store. A file
// that had to be replaced is reported on stderr before fn runs.
func (a *App) withStore(operation string, fn func(s store.Store) error) error {
	path := a.dataFilePath()
	a.logger.WithFields(log.Fields{
		"operation": operation,
		"file":      path,
	}).Debug("opening store")

	s, err := store.New(path, store.WithLogger(a.logger))
	if err != nil {
		return NewStoreError(operation, err, CommonSuggestions.CheckDataFile, CommonSuggestions.CheckPerms)
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close store")
		}
	}()

	if loadErr := s.LoadError(); loadErr != nil {
		fmt.Fprintf(a.errOut, "Warning: %s could not be loaded and was replaced with an empty list: %v\n", path, loadErr)
	}

	return WrapError(operation, fn(s))
}

func (a *App) formatter() (*OutputFormatter, error) {
	return NewOutputFormatter(a.v.GetString(keyFormat), a.out)
}

// confirm asks a yes/no question on stderr. --yes answers it.
func (a *App) confirm(question string) (bool, error) {
	if a.v.GetBool(keyYes) {
		return true, nil
	}

	fmt.Fprintf(a.errOut, "%s [y/N]: ", question)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(a.out, "Aborted.")
	return false, nil
}

func parseID(operation, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, NewValidationError(operation, "task id", arg, "Task ids are positive numbers shown by 'breadtasks list'")
	}
	return id, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/breadtasks/breadtasks/breadtasks/storage"
	"github.com/breadtasks/breadtasks/internal/appdir"
)

// Configuration keys shared by flags, environment and config files
const (
	keyDataFile = "data-file"
	keyDataDir  = "data-dir"
	keyLogLevel = "log-level"
	keyFormat   = "format"
	keyYes      = "yes"
)

// newViper configures a viper instance with environment variables and
// config files. BREADTASKS_CONFIG names a config file explicitly;
// otherwise breadtasks.{yaml,json,toml} is looked up in the working
// directory and the user config directory.
func newViper() *viper.Viper {
	v := viper.New()

	if configFile := os.Getenv("BREADTASKS_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("breadtasks")
		v.AddConfigPath(".")
		v.AddConfigPath(appdir.ConfigDir())
	}

	// Enable environment variable support (e.g., --data-file -> BREADTASKS_DATA_FILE)
	v.SetEnvPrefix("BREADTASKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyFormat, "table")

	return v
}

// bindFlags binds each named flag to the viper key of the same name so
// that flags override environment and config file values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		flag := flags.Lookup(key)
		if flag == nil {
			return fmt.Errorf("unknown flag %q", key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", key, err)
		}
	}
	return nil
}

// readConfig loads the config file if one exists. A file named through
// --config or BREADTASKS_CONFIG must exist and parse.
func (a *App) readConfig(explicit string) error {
	if explicit != "" {
		a.v.SetConfigFile(explicit)
	}

	err := a.v.ReadInConfig()
	if err == nil {
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok && explicit == "" && os.Getenv("BREADTASKS_CONFIG") == "" {
		return nil
	}
	return NewConfigError("read configuration", err.Error(),
		"Check the file named by --config or BREADTASKS_CONFIG",
		CommonSuggestions.CheckConfig)
}

// dataFilePath resolves the data file: data-file, else data-dir or the
// per-user data directory joined with the default file name
func (a *App) dataFilePath() string {
	if path := a.v.GetString(keyDataFile); path != "" {
		return path
	}
	dir := a.v.GetString(keyDataDir)
	if dir == "" {
		dir = appdir.DataDir()
	}
	return filepath.Join(dir, storage.DataFileName)
}

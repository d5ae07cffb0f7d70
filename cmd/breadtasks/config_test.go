package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/breadtasks/breadtasks/testutil"
)

func TestBREADTASKS_CONFIG_EnvironmentVariable(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, testutil.DataFileName)
	configPath := filepath.Join(dir, "custom.yaml")
	config := "data-file: " + dataFile + "\nformat: json\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("BREADTASKS_CONFIG", configPath)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := NewApp(strings.NewReader(""), &strings.Builder{}, &strings.Builder{})
	if err := app.readConfig(""); err != nil {
		t.Fatalf("readConfig: %v", err)
	}

	if got := app.dataFilePath(); got != dataFile {
		t.Errorf("expected data file %s, got %s", dataFile, got)
	}
	if got := app.v.GetString(keyFormat); got != "json" {
		t.Errorf("expected format json, got %s", got)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := NewApp(strings.NewReader(""), &strings.Builder{}, &strings.Builder{})
	err := app.readConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BREADTASKS_DATA_DIR", dir)

	app := NewApp(strings.NewReader(""), &strings.Builder{}, &strings.Builder{})
	if err := app.readConfig(""); err != nil {
		t.Fatalf("readConfig: %v", err)
	}

	want := filepath.Join(dir, "breadtasks_data.json")
	if got := app.dataFilePath(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got := app.v.GetString(keyLogLevel); got != "warn" {
		t.Errorf("expected default log level warn, got %s", got)
	}
}

func TestDataFileFlagWinsOverEnvironment(t *testing.T) {
	t.Setenv("BREADTASKS_DATA_FILE", filepath.Join(t.TempDir(), "env.json"))
	flagFile := filepath.Join(t.TempDir(), "flag.json")

	if out := mustRun(t, flagFile, "add", "from flag"); !strings.Contains(out, "Added task 1") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(flagFile); err != nil {
		t.Errorf("expected the flag's data file to be written: %v", err)
	}
}

func TestBindFlagsRejectsUnknownFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(keyFormat, "table", "")

	v := viper.New()
	if err := bindFlags(v, flags, keyFormat); err != nil {
		t.Fatalf("bindFlags: %v", err)
	}
	if err := flags.Parse([]string{"--format", "yaml"}); err != nil {
		t.Fatal(err)
	}
	if got := v.GetString(keyFormat); got != "yaml" {
		t.Errorf("expected yaml from the flag, got %s", got)
	}

	if err := bindFlags(v, flags, "missing"); err == nil {
		t.Error("expected error for an unknown flag")
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/breadtasks/breadtasks/internal/appdir"
)

// initLogging sends structured JSON logs to breadtasks.log in the cache
// directory, or to a.logOut when set. Unknown levels fall back to warn.
func (a *App) initLogging(level string) error {
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = log.WarnLevel
	}

	out := a.logOut
	logPath := ""
	if out == nil {
		logDir := appdir.CacheDir()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		logPath = filepath.Join(logDir, "breadtasks.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, logFile)
		out = logFile
	}

	a.logger = log.New()
	a.logger.SetOutput(out)
	a.logger.SetFormatter(&log.JSONFormatter{})
	a.logger.SetLevel(parsed)

	a.logger.WithFields(log.Fields{
		"log_level": parsed.String(),
		"log_file":  logPath,
	}).Debug("logging initialized")

	return nil
}

// closeLogs closes log files opened by initLogging
func (a *App) closeLogs() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

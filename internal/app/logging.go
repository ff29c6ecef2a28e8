package app

import (
	"fmt"
	"os"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// LogPath returns the log file under the XDG state directory.
func LogPath() (string, error) {
	return xdg.StateFile("tuidock/tuidock.log")
}

// OpenLog opens the log file for appending. The terminal belongs to the
// program, so the TUI never logs to stderr.
func OpenLog(debug bool) (*log.Logger, *os.File, error) {
	path, err := LogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("could not determine log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tuidock",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

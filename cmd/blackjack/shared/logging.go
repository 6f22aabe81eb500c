// Package shared holds setup used by every blackjack command.
package shared

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// SetupLogger opens the results log for appending and returns a logger
// writing to it. With mirror set the log is also written to stderr.
func SetupLogger(path, level string, mirror bool) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var w io.Writer = file
	if mirror {
		w = io.MultiWriter(file, os.Stderr)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Prefix:          "blackjack",
		Level:           lvl,
	})
	return logger, file, nil
}

package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the name of the log file written by NewFileLogger.
const LogFileName = "pokedex.log"

// NewFileLogger creates a JSON logger appending to dir/pokedex.log.
// Unlike the terminal loggers it records Info and above by default,
// since nobody watches the file live. The returned function closes the file.
func NewFileLogger(dir string, verbose bool) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // path is built from the XDG state dir
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})

	return slog.New(NewSecureHandler(h)), f.Close, nil
}

// Package logger provides the process-wide slog logger. A terminal UI owns
// stdout, so records go to a file; until Init is called they are discarded.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar) // Allows dynamic level changes
	logFile  *os.File
	logPath  string
	current  = discard()
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init opens path for appending and routes Get() to it. Calling Init again
// with the same path is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil && path == logPath {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	current = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))

	current.Info("Logger initialized", "path", path)
	return nil
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Get returns the current logger.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Close closes the log file and goes back to discarding.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logPath = ""
	current = discard()
	levelVar.Set(slog.LevelInfo)
}

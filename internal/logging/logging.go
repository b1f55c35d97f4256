// Package logging builds the leveled console logger shared by the binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/notexe/todo/internal/config"
)

const prefix = "todo"

// Logger wraps a charmbracelet logger together with the sink it owns.
type Logger struct {
	*log.Logger
	file *os.File
}

// New creates a logger from cfg. When cfg.File is set, output is appended to
// that file instead of stderr.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var w io.Writer = os.Stderr
	var f *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	return NewWithWriter(w, level, cfg.Timestamps, f), nil
}

// NewWithWriter creates a logger writing to w. closer, if non-nil, is closed
// by Close.
func NewWithWriter(w io.Writer, level log.Level, timestamps bool, closer *os.File) *Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: timestamps,
		Prefix:          prefix,
	})
	return &Logger{Logger: logger, file: closer}
}

// Install makes l the package-level default used by log.Debug, log.Warn etc.
func (l *Logger) Install() {
	log.SetDefault(l.Logger)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Package logging builds the application logger. The TUI owns the terminal,
// so interactive runs log to a rotating file; CLI commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how much is logged.
type Config struct {
	// Level is a charmbracelet/log level name: debug, info, warn, error.
	Level string

	// File is the log file path. Empty means write to Stderr instead.
	File string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs at info level with modest rotation limits.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// ConfigFromEnv applies PROFILECARD_LOG_LEVEL and PROFILECARD_LOG_FILE on
// top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("PROFILECARD_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("PROFILECARD_LOG_FILE"); v != "" {
		cfg.File = v
	}
	return cfg
}

// DefaultLogPath returns $XDG_STATE_HOME/profilecard/profilecard.log,
// falling back to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "profilecard", "profilecard.log"), nil
}

// New builds a logger from cfg. The returned closer flushes and closes the
// log file; it is a no-op for stderr logging.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if cfg.File == "" {
		return newLogger(os.Stderr, level), nopCloser{}, nil
	}

	if cfg.MaxSizeMB <= 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0 {
		return nil, nil, fmt.Errorf("invalid log rotation: size=%d backups=%d age_days=%d",
			cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return newLogger(file, level), file, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          "profilecard",
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging builds the zap logger. The terminal UI owns stdout and
// stderr, so interactive runs log to a file; headless commands log to
// stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Level string // debug, info, warn or error; default info
	File  string // log file path; empty logs to stderr
	Dev   bool   // human-readable console encoding
}

// New returns a logger for opts. Callers should Sync it before exit.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(strings.ToLower(defaultString(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.With(zap.String("app", "edunova")), nil
}

// DefaultFile returns $XDG_STATE_HOME/edunova/edunova.log, falling back to
// ~/.local/state.
func DefaultFile() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "edunova.log")
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "edunova", "edunova.log")
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Package logging points the global zerolog logger at a rotating file.
//
// The terminal belongs to the TUI, so nothing is written to stderr once
// Setup has run.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// Options configure Setup.
type Options struct {
	Path       string // defaults to DefaultPath()
	Level      string // zerolog level name, defaults to info
	MaxSizeMB  int
	MaxBackups int
}

// DefaultPath returns the log file under the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "spoiler", "spoiler.log")
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Setup configures the global logger and returns the writer behind it so the
// caller can close it on exit.
func Setup(opts Options) (io.WriteCloser, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}

	lvl := ParseLevel(opts.Level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(rotator).Level(lvl).With().Timestamp().Logger()
	return rotator, nil
}

// Package logging configures the process-wide zerolog logger. Output goes to a
// rotating file because the terminal belongs to the interactive session.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure New.
type Options struct {
	File  string // log file path; empty discards output
	Level string // zerolog level name; empty or unknown means info
	Debug bool   // forces debug level
}

// Logger bundles the configured logger with the writer backing it.
type Logger struct {
	zerolog.Logger
	RunID string
	out   io.Closer
}

// New builds a Logger tagged with a fresh run id.
func New(opts Options) (*Logger, error) {
	var (
		w      io.Writer = io.Discard
		closer io.Closer
	)
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		w, closer = rotating, rotating
	}
	return newWithWriter(w, closer, opts), nil
}

func newWithWriter(w io.Writer, closer io.Closer, opts Options) *Logger {
	runID := uuid.NewString()
	level := ParseLevel(opts.Level)
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("run", runID).
		Logger()
	return &Logger{Logger: zl, RunID: runID, out: closer}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Close flushes and closes the backing file, if any.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	return l.out.Close()
}

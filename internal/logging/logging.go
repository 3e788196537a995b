// Package logging builds the zerolog logger used for diagnostics.
//
// Diagnostics go to stderr so they never mix with command output on stdout.
// An optional log file is rotated by lumberjack.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ErrInvalidLevel = errors.New("logging: invalid level")

// Format selects how log lines are rendered.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

const (
	DefaultLevel      = "warn"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
)

// Options configures New. The zero value logs warnings to stderr in
// console format.
type Options struct {
	Level      string
	Format     Format
	File       string
	MaxSizeMB  int
	MaxBackups int

	// Output replaces stderr as the console destination.
	Output io.Writer
}

// ParseLevel accepts zerolog level names in any case. An empty string is
// the default level.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		s = DefaultLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// New builds a logger writing to the console and, when opts.File is set, to
// a rotated file. The returned closer releases the file and must be called
// once logging is done.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	writers := []io.Writer{consoleWriter(out, opts.Format)}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating log directory: %w", err)
		}
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, DefaultMaxBackups),
			LocalTime:  true,
		}
		// files always get JSON lines
		writers = append(writers, file)
		closer = file
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}

func consoleWriter(w io.Writer, format Format) io.Writer {
	if format == FormatJSON {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

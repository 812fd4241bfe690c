// Package logging adapts zerolog to the core service logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how a logger renders.
type Options struct {
	Level     string
	Timestamp bool
	// JSON disables the human readable console writer.
	JSON bool
}

// ParseLevel maps a configured level name onto a zerolog level. An empty
// name means info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", name, err)
	}
	if level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: no level", name)
	}
	return level, nil
}

// New builds the process logger tagged with app.
func New(app string, out io.Writer, opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	ctx := zerolog.New(out).Level(level).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Logger(), nil
}

// Logger implements the service logger on top of zerolog. Arguments are
// alternating keys and values.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger wraps an existing zerolog logger.
func NewLogger(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// Zerolog returns the wrapped logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string, args ...any) { write(l.zl.Debug(), msg, args) }

// Info logs msg at info level.
func (l *Logger) Info(msg string, args ...any) { write(l.zl.Info(), msg, args) }

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string, args ...any) { write(l.zl.Warn(), msg, args) }

// Error logs msg at error level.
func (l *Logger) Error(msg string, args ...any) { write(l.zl.Error(), msg, args) }

func write(ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	if len(args)%2 == 1 {
		args = append(args[:len(args):len(args)], "!MISSING")
	}
	ev.Fields(args).Msg(msg)
}

// Package boolsynthlog provides a configurable logger shared across the
// boolsynth packages.
//
// The root logger uses github.com/rs/zerolog with a console writer to
// stderr, and is silenced automatically under `go test` so that package
// tests don't spam their output; callers that want search progress can Set a more verbose logger
// or call SetOutput to redirect it.
package boolsynthlog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var root zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	root = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		root = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	root = root.Output(w)
}

// Set overrides the global logger.
func Set(l zerolog.Logger) {
	root = l
}

// Disable silences the global logger.
func Disable() {
	root = zerolog.Nop()
}

// SetLevel sets the minimum level the global logger emits.
func SetLevel(lvl zerolog.Level) {
	root = root.Level(lvl)
}

// ParseLevel maps the --log-level flag's values to a zerolog.Level,
// defaulting to zerolog.WarnLevel for an unrecognized name.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// Logger is a thin wrapper around zerolog.Logger offering a key-value
// call shape (msg plus alternating key, value pairs) convenient for the
// search loop's one-event-per-length instrumentation, instead of
// zerolog's chained-builder style.
type Logger struct {
	z zerolog.Logger
}

// Default returns a Logger backed by the current global root logger.
func Default() *Logger {
	return &Logger{z: root}
}

// New wraps an arbitrary zerolog.Logger.
func New(z zerolog.Logger) *Logger {
	return &Logger{z: z}
}

// Debug logs msg at debug level with the given alternating key/value
// pairs attached as fields. A malformed (odd-length, or non-string key)
// pairs list degrades to logging the pairs as a single "args" field
// rather than panicking, since log calls must never crash a search.
func (l *Logger) Debug(msg string, kv ...interface{}) {
	l.event(l.z.Debug(), msg, kv...)
}

// Info logs msg at info level.
func (l *Logger) Info(msg string, kv ...interface{}) {
	l.event(l.z.Info(), msg, kv...)
}

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.event(l.z.Warn(), msg, kv...)
}

// Error logs msg at error level.
func (l *Logger) Error(msg string, kv ...interface{}) {
	l.event(l.z.Error(), msg, kv...)
}

func (l *Logger) event(e *zerolog.Event, msg string, kv ...interface{}) {
	if e == nil {
		return
	}
	if len(kv)%2 != 0 {
		e.Interface("args", kv).Msg(msg)
		return
	}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			e.Interface("args", kv).Msg(msg)
			return
		}
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}

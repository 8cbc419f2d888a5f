// Package log provides the application-wide logger. It exposes a small
// package-level API backed by logrus so callers never carry a logger value
// around.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var std = NewLogger()

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F constructs a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger.
type Logger struct {
	l *logrus.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) {
		lg.l.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON formatting.
func WithJSON() Option {
	return func(lg *Logger) {
		lg.l.SetFormatter(&logrus.JSONFormatter{})
	}
}

// WithFile tees log output to the given file in addition to the current
// output. The file is created if it does not exist.
func WithFile(path string) Option {
	return func(lg *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			lg.l.Warnf("could not open log file %s: %v", path, err)
			return
		}
		lg.l.SetOutput(io.MultiWriter(lg.l.Out, f))
	}
}

// NewLogger creates a Logger with text formatting on stdout.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lg := &Logger{l: l}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// Configure applies options to the package-level logger.
func Configure(opts ...Option) {
	for _, opt := range opts {
		opt(std)
	}
}

// SetDebug toggles debug-level logging on the package-level logger.
func SetDebug(debug bool) {
	if debug {
		std.l.SetLevel(logrus.DebugLevel)
	} else {
		std.l.SetLevel(logrus.InfoLevel)
	}
}

// With returns a logrus entry carrying the given fields.
func With(fields ...Field) *logrus.Entry {
	return std.entry(fields...)
}

func (lg *Logger) entry(fields ...Field) *logrus.Entry {
	fs := make(logrus.Fields, len(fields))
	for _, f := range fields {
		fs[f.Key] = f.Value
	}
	return lg.l.WithFields(fs)
}

// Info logs a formatted informational message.
func Info(format string, args ...interface{}) {
	std.l.Infof(format, args...)
}

// Debug logs a message with arguments at debug level.
func Debug(msg string, args ...interface{}) {
	if len(args) > 0 {
		std.l.Debugf(msg+": %v", args...)
		return
	}
	std.l.Debug(msg)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	std.l.Debugf(format, args...)
}

// Warn logs a warning message with arguments.
func Warn(msg string, args ...interface{}) {
	if len(args) > 0 {
		std.l.Warnf(msg+": %v", args...)
		return
	}
	std.l.Warn(msg)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...interface{}) {
	std.l.Warnf(format, args...)
}

// Error logs an error message with arguments.
func Error(msg string, args ...interface{}) {
	if len(args) > 0 {
		std.l.Errorf(msg+": %v", args...)
		return
	}
	std.l.Error(msg)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...interface{}) {
	std.l.Errorf(format, args...)
}

// LogWithFields returns an entry carrying the given fields, ready for a
// level call: log.LogWithFields(log.F("path", p)).Info("opened").
func LogWithFields(fields ...Field) *logrus.Entry {
	return std.entry(fields...)
}

// LogWithError logs msg at error level with the error attached.
func LogWithError(msg string, err error, fields ...Field) {
	std.entry(fields...).WithError(err).Error(msg)
}

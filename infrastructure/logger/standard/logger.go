// ABOUTME: Standard logger implementation on top of logrus
// ABOUTME: Supports text or JSON output, level filtering and rotating log files

package standard

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is the minimum level: debug, info, warn or error
	Level string

	// Format is text or json
	Format string

	// File, when set, receives a rotated copy of every entry
	File string

	// Output overrides stdout, mainly for tests
	Output io.Writer
}

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	entry *logrus.Logger
}

// NewStandardLogger creates a logger writing text at info level to stdout
func NewStandardLogger() *StandardLogger {
	return NewLogger(Options{})
}

// NewLogger creates a logger from options
func NewLogger(opts Options) *StandardLogger {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if opts.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	log.SetOutput(out)

	return &StandardLogger{entry: log}
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

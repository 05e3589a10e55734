// Package logging wraps zerolog behind a small key-value API used across
// the pipeline services.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
)

// Logger wraps zerolog.Logger with variadic key-value convenience methods.
type Logger struct {
	zl     zerolog.Logger
	fields map[string]interface{}
}

var global *Logger

func init() {
	global = NewDevelopment()
}

// NewProduction creates a production logger with JSON output.
func NewProduction() *Logger {
	zl := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	return &Logger{zl: zl, fields: make(map[string]interface{})}
}

// NewDevelopment creates a development logger with pretty console output.
func NewDevelopment() *Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zl := zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &Logger{zl: zl, fields: make(map[string]interface{})}
}

// NewWithWriter creates a logger with a custom writer, used by tests.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, fields: make(map[string]interface{})}
}

// NewFromConfig creates a logger from configuration.
func NewFromConfig(cfg config.LoggingConfig) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	switch cfg.OutputPath {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		logDir := filepath.Dir(cfg.OutputPath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.OutputPath, err)
		}
		output = file
	}

	if cfg.Format == "console" || cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, fields: make(map[string]interface{})}, nil
}

// SetGlobal sets the global logger instance.
func SetGlobal(logger *Logger) {
	global = logger
}

// Global returns the global logger instance.
func Global() *Logger {
	return global
}

// appendFields applies stored fields and variadic key-value pairs to an
// event. Errors passed under the "error" key are rendered as strings.
func (l *Logger) appendFields(e *zerolog.Event, fields []interface{}) {
	for k, v := range l.fields {
		e.Interface(k, v)
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr && key == "error" {
			e.Str(key, err.Error())
			continue
		}
		e.Interface(key, fields[i+1])
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	e := l.zl.Debug()
	l.appendFields(e, fields)
	e.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...interface{}) {
	e := l.zl.Info()
	l.appendFields(e, fields)
	e.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	e := l.zl.Warn()
	l.appendFields(e, fields)
	e.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...interface{}) {
	e := l.zl.Error()
	l.appendFields(e, fields)
	e.Msg(msg)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	e := l.zl.Fatal()
	l.appendFields(e, fields)
	e.Msg(msg)
}

// With creates a child logger with additional fields.
func (l *Logger) With(fields ...interface{}) *Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields)/2)
	for k, v := range l.fields {
		newFields[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			newFields[key] = fields[i+1]
		}
	}
	return &Logger{zl: l.zl, fields: newFields}
}

// WithContext returns a logger carrying the context's request ID.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if requestID, ok := RequestIDFromContext(ctx); ok {
		return l.With("request_id", requestID)
	}
	return l
}

// Global convenience functions

// Debug logs a debug message using the global logger.
func Debug(msg string, fields ...interface{}) { global.Debug(msg, fields...) }

// Info logs an info message using the global logger.
func Info(msg string, fields ...interface{}) { global.Info(msg, fields...) }

// Warn logs a warning message using the global logger.
func Warn(msg string, fields ...interface{}) { global.Warn(msg, fields...) }

// Error logs an error message using the global logger.
func Error(msg string, fields ...interface{}) { global.Error(msg, fields...) }

// Fatal logs a fatal message and exits using the global logger.
func Fatal(msg string, fields ...interface{}) { global.Fatal(msg, fields...) }

package logger

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "family-gazette-api"

// New creates a new zerolog logger with structured output
func New() zerolog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a logger writing to out, plus a rotating log file
// when LOG_FILE is set
func NewWithWriter(out io.Writer) zerolog.Logger {
	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel := parseLevel(os.Getenv("LOG_LEVEL"))

	// Use pretty console output in development
	if os.Getenv("ENV") == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	if file := os.Getenv("LOG_FILE"); file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    envInt("LOG_MAX_SIZE_MB", 100), // megabytes
			MaxBackups: envInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     envInt("LOG_MAX_AGE_DAYS", 28), // days
		})
	}

	ctx := zerolog.New(out).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName)

	if os.Getenv("ENV") == "development" {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func envInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

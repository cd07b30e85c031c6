package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger constructs a zerolog.Logger with sane defaults for the service.
func NewLogger(appEnv string) zerolog.Logger {
	return NewLoggerWithFile(appEnv, "")
}

// NewLoggerWithFile behaves like NewLogger and additionally tees JSON records
// into a size-rotated file when logFile is set.
func NewLoggerWithFile(appEnv, logFile string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	var out io.Writer = os.Stdout
	if appEnv == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if logFile != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		})
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	l := zerolog.Nop()
	return &l
}

// Logger aliases the zerolog.Logger so callers outside the infra package can
// depend on the logging contract without importing the third-party module
// directly.
type Logger = zerolog.Logger

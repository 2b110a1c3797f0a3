package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information,
	// including every memoizer hit and miss.
	LogDebug LogLevel = "debug"
)

// ParseLevel maps a level name to a LogLevel. Unknown names are an error.
func ParseLevel(s string) (LogLevel, error) {
	switch l := LogLevel(s); l {
	case LogInfo, LogWarn, LogError, LogDebug:
		return l, nil
	case "":
		return LogInfo, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogDebug:
		return zap.DebugLevel
	case LogWarn:
		return zap.WarnLevel
	case LogError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// NewConsoleLogger builds a development-style console logger on stdout.
func NewConsoleLogger(level LogLevel) *zap.Logger {
	return NewLogger(os.Stdout, level)
}

// NewLogger builds a console logger writing to w.
func NewLogger(w io.Writer, level LogLevel) *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level.zapLevel(),
	)
	return zap.New(consoleCore)
}

// Sync flushes the logger, reporting failures through the logger itself.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Warn("failed to sync logger", zap.Error(err))
	}
}

package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger so components can depend on one concrete type.
type Logger struct {
	*zap.Logger
}

// NewLogger builds the process logger from the environment.
func NewLogger() *Logger {
	return New(ConfigFromEnv())
}

// New builds a logger from cfg. A destination that cannot be opened falls
// back to stdout and the problem is reported on stderr.
func New(cfg Config) *Logger {
	zc := zap.NewProductionConfig()
	if cfg.Level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Encoding = cfg.Format
	if cfg.Format == FormatConsole {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.OutputPaths = []string{"stdout"}
	zc.ErrorOutputPaths = []string{"stderr"}
	switch cfg.Output {
	case "", "stdout":
	case "stderr":
		zc.OutputPaths = []string{"stderr"}
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create directory for %q, logging to stdout: %v\n", cfg.Output, err)
		} else {
			zc.OutputPaths = append(zc.OutputPaths, cfg.Output)
		}
	}

	l, err := zc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to production logger: %v\n", err)
		l, _ = zap.NewProduction()
	}
	return &Logger{Logger: l}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects the level, encoding and destination of the process logger.
// Output is stdout, stderr or a file path.
type Config struct {
	Level  zapcore.Level
	Format string
	Output string
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE. Unknown
// values keep the defaults: info, json, stdout.
func ConfigFromEnv() Config {
	cfg := Config{Level: zapcore.InfoLevel, Format: FormatJSON, Output: "stdout"}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if lvl, err := zapcore.ParseLevel(strings.ToLower(v)); err == nil {
			cfg.Level = lvl
		}
	}
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "console", "text":
		cfg.Format = FormatConsole
	}
	if v := os.Getenv("LOG_OUTPUT_FILE"); v != "" {
		cfg.Output = v
	}
	return cfg
}

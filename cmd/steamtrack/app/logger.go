package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/steamtrack/steamtrack/pkg/logging"
)

// NewLogger builds the application logger from config.
func NewLogger(cfg *Config) zerolog.Logger {
	level := determineLogLevel(cfg)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Output:    cfg.LogOutput,
		NoColor:   cfg.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel applies the precedence rules: explicit level, then
// the verbose/quiet shortcuts, then the default.
func determineLogLevel(cfg *Config) string {
	if cfg.LogLevel != "" {
		return validateLogLevel(cfg.LogLevel)
	}
	if cfg.Verbose && cfg.Quiet {
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if cfg.Verbose {
		return "debug"
	}
	if cfg.Quiet {
		return "warn"
	}
	return "info"
}

func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", level)
	return "info"
}

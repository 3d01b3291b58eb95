package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mbund/cse2331-linter/internal/config"
	"github.com/mbund/cse2331-linter/internal/logging"
	"github.com/mbund/cse2331-linter/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "clint [files...]",
	Short: "clint - C style and complexity checker",
	Long: `clint parses C translation units, flags global variables and
undocumented functions, checks identifier case consistency across the
project, and computes a macro-expansion-aware logical line count for
every function body so that hidden complexity is flagged too.`,
	Version: version.Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runCheck,
}

func init() {
	rootCmd.SetVersionTemplate("clint version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
}

// resolveLogLevel determines the effective log level from the CLI flag,
// the CLINT_LOG_LEVEL env var, and the config file, in that order.
func resolveLogLevel(cfg *config.Config) logging.LogLevel {
	if logLevelFlag != "" {
		return logging.LogLevel(logLevelFlag)
	}
	if env := os.Getenv("CLINT_LOG_LEVEL"); env != "" {
		return logging.LogLevel(env)
	}
	if cfg != nil && cfg.Logging.Level != "" {
		return logging.LogLevel(cfg.Logging.Level)
	}
	return logging.InfoLevel
}

// newLogger builds the run logger from config plus CLI overrides.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.HumanFormat
	if cfg != nil && cfg.Logging.Format == "json" {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  resolveLogLevel(cfg),
	})
}

// Package config loads clint configuration from .clint/config.json,
// falling back to defaults when no config file exists.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete clint configuration
type Config struct {
	Version      int                `json:"version" mapstructure:"version"`
	Preprocessor PreprocessorConfig `json:"preprocessor" mapstructure:"preprocessor"`
	Jobs         int                `json:"jobs" mapstructure:"jobs"`
	Cache        CacheConfig        `json:"cache" mapstructure:"cache"`
	Logging      LoggingConfig      `json:"logging" mapstructure:"logging"`
}

// PreprocessorConfig describes how the external C preprocessor is
// invoked as a stdin-fed text filter.
type PreprocessorConfig struct {
	Command   string   `json:"command" mapstructure:"command"`
	Args      []string `json:"args" mapstructure:"args"`
	DebugArgs []string `json:"debugArgs" mapstructure:"debugArgs"`
	TimeoutMs int      `json:"timeoutMs" mapstructure:"timeoutMs"`
}

// CacheConfig controls the preprocessor output cache.
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Preprocessor: PreprocessorConfig{
			Command:   "gcc",
			Args:      []string{"-E", "-"},
			DebugArgs: []string{"-DDEBUG"},
			TimeoutMs: 30000,
		},
		Jobs: 0, // 0 means one worker per CPU
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <baseDir>/.clint/config.json
func LoadConfig(baseDir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("preprocessor.command", defaults.Preprocessor.Command)
	v.SetDefault("preprocessor.args", defaults.Preprocessor.Args)
	v.SetDefault("preprocessor.debugArgs", defaults.Preprocessor.DebugArgs)
	v.SetDefault("preprocessor.timeoutMs", defaults.Preprocessor.TimeoutMs)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(baseDir, ".clint"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <baseDir>/.clint/config.json
func (c *Config) Save(baseDir string) error {
	dir := filepath.Join(baseDir, ".clint")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Preprocessor.Command == "" {
		return &ConfigError{Field: "preprocessor.command", Message: "preprocessor command must not be empty"}
	}
	if c.Jobs < 0 {
		return &ConfigError{Field: "jobs", Message: "jobs must be >= 0"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

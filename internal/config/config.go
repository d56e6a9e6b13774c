// Package config provides the layered configuration (defaults, config
// file, environment variables, CLI flags) shared by the langdetect CLI
// and server commands.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

// Config is the complete configuration for the langdetect application: it
// covers the detect/batch/serve commands alike, with each command reading
// only the sections it needs.
type Config struct {
	ProfilesDir string `mapstructure:"profiles_dir" yaml:"profiles_dir" json:"profiles_dir"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Detector DetectorConfig `mapstructure:"detector" yaml:"detector" json:"detector"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server" json:"server"`
	Batch    BatchConfig    `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// DetectorConfig contains the Monte-Carlo detector's tunable parameters.
type DetectorConfig struct {
	Alpha         float64 `mapstructure:"alpha" yaml:"alpha" json:"alpha"`
	MaxTextLength int     `mapstructure:"max_text_length" yaml:"max_text_length" json:"max_text_length"`
	Seed          int64   `mapstructure:"seed" yaml:"seed" json:"seed"`
	SeedSet       bool    `mapstructure:"seed_set" yaml:"seed_set" json:"seed_set"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host         string `mapstructure:"host" yaml:"host" json:"host"`
	Port         int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin   string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	TimeoutSec   int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	RateLimitRPS int    `mapstructure:"rate_limit_rps" yaml:"rate_limit_rps" json:"rate_limit_rps"`

	// MaxTextBytesPerDay caps how many bytes of request text a single
	// client may submit per day (0 disables the quota). Detection
	// payloads are plain text, not image uploads, so this defaults to
	// megabytes rather than gigabytes.
	MaxTextBytesPerDay int64 `mapstructure:"max_text_bytes_per_day" yaml:"max_text_bytes_per_day" json:"max_text_bytes_per_day"`
}

// BatchConfig contains batch-detection settings.
type BatchConfig struct {
	Workers int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	Format  string `mapstructure:"format" yaml:"format" json:"format"` // "text", "json", "csv"
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Detector: DetectorConfig{
			Alpha:         langdetect.AlphaDefault,
			MaxTextLength: langdetect.DefaultMaxTextLength,
		},
		Server: ServerConfig{
			Host:               "localhost",
			Port:               8080,
			CORSOrigin:         "*",
			TimeoutSec:         30,
			RateLimitRPS:       50,
			MaxTextBytesPerDay: 50 * 1024 * 1024, // 50MB of request text per client per day
		},
		Batch: BatchConfig{
			Workers: 4,
			Format:  "text",
		},
	}
}

// Validate checks the configuration for internally inconsistent values,
// returning an InitParamError-wrapped error so callers see the same error
// taxonomy the core package uses.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("config: invalid log level %q: %w", c.LogLevel, langdetect.ErrInitParam)
	}

	if c.Detector.Alpha < 0 {
		return fmt.Errorf("config: detector.alpha must not be negative: %w", langdetect.ErrInitParam)
	}
	if c.Detector.MaxTextLength <= 0 {
		return fmt.Errorf("config: detector.max_text_length must be positive: %w", langdetect.ErrInitParam)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d: %w", c.Server.Port, langdetect.ErrInitParam)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("config: server.timeout_sec must be positive: %w", langdetect.ErrInitParam)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("config: server.rate_limit_rps must not be negative: %w", langdetect.ErrInitParam)
	}
	if c.Server.MaxTextBytesPerDay < 0 {
		return fmt.Errorf("config: server.max_text_bytes_per_day must not be negative: %w", langdetect.ErrInitParam)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("config: batch.workers must be positive: %w", langdetect.ErrInitParam)
	}
	validFormats := []string{"text", "json", "csv"}
	if !contains(validFormats, c.Batch.Format) {
		return fmt.Errorf("config: invalid batch.format %q: %w", c.Batch.Format, langdetect.ErrInitParam)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

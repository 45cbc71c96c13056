// Package config loads application configuration with multi-source
// priority: environment variables override the config file, which overrides
// built-in defaults.
//
// The config file is config.yaml, searched in ~/.agentcouncil/ and the
// current directory. Environment variables use the AGENTCOUNCIL_ prefix with
// underscores, e.g. AGENTCOUNCIL_DATABASE_URL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors, matchable with errors.Is.
var (
	ErrInvalidTemperature  = errors.New("temperature must be between 0 and 2")
	ErrInvalidHistoryLimit = errors.New("history_limit must be positive")
	ErrInvalidRunBudget    = errors.New("run_budget must be positive")
	ErrInvalidHeartbeat    = errors.New("heartbeat_interval must be positive")
)

// Config stores the application configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`

	// DatabaseURL is the postgres:// connection string. Empty selects the
	// in-memory gateway, which loses everything on restart.
	DatabaseURL string `mapstructure:"database_url"`

	// Model selection per council role.
	ArchitectModel string `mapstructure:"architect_model"`
	ReviewerModel  string `mapstructure:"reviewer_model"`
	CriticModel    string `mapstructure:"critic_model"`

	Temperature float64 `mapstructure:"temperature"`

	// HistoryLimit caps how many recent messages feed the AI context.
	HistoryLimit int `mapstructure:"history_limit"`

	// RunBudget bounds the wall-clock time of a whole run.
	RunBudget time.Duration `mapstructure:"run_budget"`

	// HeartbeatInterval paces SSE keep-alive frames.
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogJSON switches log output from text to JSON.
	LogJSON bool `mapstructure:"log_json"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".agentcouncil"))
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("AGENTCOUNCIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Missing file is fine, defaults plus environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:8420")
	v.SetDefault("database_url", "")

	v.SetDefault("architect_model", "claude-sonnet-4-5")
	v.SetDefault("reviewer_model", "gpt-4o")
	v.SetDefault("critic_model", "gpt-4o")
	v.SetDefault("temperature", 0.7)

	v.SetDefault("history_limit", 50)
	v.SetDefault("run_budget", 5*time.Minute)
	v.SetDefault("heartbeat_interval", 15*time.Second)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// Validate fails fast on out-of-range values.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: got %v", ErrInvalidTemperature, c.Temperature)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHistoryLimit, c.HistoryLimit)
	}
	if c.RunBudget <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidRunBudget, c.RunBudget)
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidHeartbeat, c.HeartbeatInterval)
	}
	return nil
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds backend connection settings
type ServerConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	LogFile string `mapstructure:"log_file"`
	Persist bool   `mapstructure:"persist"`
}

// ChatConfig holds transcript persistence settings
type ChatConfig struct {
	HistoryPath string `mapstructure:"history_path"`
}

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Chat    ChatConfig    `mapstructure:"chat"`
}

var global *Config

// SetDefaults registers defaults with viper. Called before config load.
func SetDefaults() {
	viper.SetDefault("server.url", "http://localhost:8000")
	viper.SetDefault("server.timeout_seconds", 60)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.log_file", "yotei.log")
	viper.SetDefault("logging.persist", false)

	viper.SetDefault("chat.history_path", "chat_history.json")
}

// Load unmarshals the viper state into the global Config.
func Load() error {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	global = cfg
	return nil
}

// Get returns the global configuration, loading it on first use.
func Get() *Config {
	if global == nil {
		if err := Load(); err != nil {
			// Fall back to defaults-only config rather than crash
			global = &Config{}
			viper.Unmarshal(global)
		}
	}
	return global
}

// Reset clears the cached config (used by tests).
func Reset() {
	global = nil
}

// ServerTimeout returns the configured request timeout as a duration.
func (c *Config) ServerTimeout() time.Duration {
	if c.Server.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

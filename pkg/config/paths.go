package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

func BaseSettingsDir() string {
	// Check if config.path is explicitly set (for testing)
	if configPath := viper.GetString("config.path"); configPath != "" {
		return configPath
	}

	currentConfig := viper.ConfigFileUsed()
	return filepath.Dir(currentConfig)
}

// BuildSettingsPath resolves target relative to the settings directory.
func BuildSettingsPath(target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(BaseSettingsDir(), target)
}

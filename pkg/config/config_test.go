package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	Reset()
	SetDefaults()

	require.NoError(t, Load())
	cfg := Get()
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.Equal(t, 60, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "yotei.log", cfg.Logging.LogFile)
	assert.False(t, cfg.Logging.Persist)
	assert.Equal(t, "chat_history.json", cfg.Chat.HistoryPath)
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "settings.yaml")

	configContent := `
server:
  url: http://backend.example:9000
  timeout_seconds: 120
logging:
  level: debug
  persist: true
chat:
  history_path: /tmp/history.json
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	viper.Reset()
	Reset()
	SetDefaults()
	viper.SetConfigFile(configFile)
	require.NoError(t, viper.ReadInConfig())

	require.NoError(t, Load())
	cfg := Get()

	assert.Equal(t, "http://backend.example:9000", cfg.Server.URL)
	assert.Equal(t, 120, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Persist)
	assert.Equal(t, "/tmp/history.json", cfg.Chat.HistoryPath)

	// Unset keys keep their defaults
	assert.Equal(t, "yotei.log", cfg.Logging.LogFile)
}

func TestServerTimeout(t *testing.T) {
	cfg := &Config{Server: ServerConfig{TimeoutSeconds: 30}}
	assert.Equal(t, 30*time.Second, cfg.ServerTimeout())

	cfg = &Config{}
	assert.Equal(t, 60*time.Second, cfg.ServerTimeout())
}

func TestBuildSettingsPath(t *testing.T) {
	viper.Reset()
	viper.Set("config.path", "/etc/yotei")

	assert.Equal(t, "/etc/yotei/chat_history.json", BuildSettingsPath("chat_history.json"))
	assert.Equal(t, "/abs/history.json", BuildSettingsPath("/abs/history.json"))
}

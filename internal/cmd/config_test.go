package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeskhq/opsdesk/internal/config"
)

func TestConfigValue(t *testing.T) {
	cfg := config.Config{
		APIURL:         "https://api.example.com",
		TimeoutSeconds: 30,
		Output:         "json",
	}
	cfg.Logging.Level = "debug"

	tests := []struct {
		key  string
		want string
	}{
		{"api_url", "https://api.example.com"},
		{"timeout_seconds", "30"},
		{"output", "json"},
		{"logging.level", "debug"},
	}
	for _, tt := range tests {
		got, err := configValue(cfg, tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got)
	}

	_, err := configValue(cfg, "nope")
	assert.Error(t, err)
}

func TestSetConfigValue(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, setConfigValue(&cfg, "api_url", "https://new.example.com"))
	assert.Equal(t, "https://new.example.com", cfg.APIURL)

	require.NoError(t, setConfigValue(&cfg, "timeout_seconds", "45"))
	assert.Equal(t, 45, cfg.TimeoutSeconds)

	require.NoError(t, setConfigValue(&cfg, "output", "csv"))
	assert.Equal(t, "csv", cfg.Output)
}

func TestSetConfigValueRejectsBadInput(t *testing.T) {
	cfg := config.Default()

	assert.Error(t, setConfigValue(&cfg, "timeout_seconds", "zero"))
	assert.Error(t, setConfigValue(&cfg, "timeout_seconds", "-1"))
	assert.Error(t, setConfigValue(&cfg, "output", "xml"))
	assert.Error(t, setConfigValue(&cfg, "nope", "x"))
}

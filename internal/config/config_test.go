package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())
}

func TestLoadReadsFile(t *testing.T) {
	home := withTempHome(t)
	dir := filepath.Join(home, ConfigDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(
		"api_url: https://api.example.com\ntimeout_seconds: 30\noutput: json\n",
	), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := withTempHome(t)
	dir := filepath.Join(home, ConfigDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(
		"api_url: https://file.example.com\n",
	), 0o600))
	t.Setenv(EnvAPIURL, "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
}

func TestLoadInvalidYAMLIsAnError(t *testing.T) {
	home := withTempHome(t)
	dir := filepath.Join(home, ConfigDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{{"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	withTempHome(t)

	cfg := Default()
	cfg.APIURL = "https://saved.example.com"
	cfg.Output = "yaml"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", loaded.APIURL)
	assert.Equal(t, "yaml", loaded.Output)
}

func TestTimeoutFloorsInvalidValues(t *testing.T) {
	cfg := Config{TimeoutSeconds: 0}
	assert.Equal(t, DefaultTimeout, cfg.Timeout())

	cfg.TimeoutSeconds = -5
	assert.Equal(t, DefaultTimeout, cfg.Timeout())

	cfg.TimeoutSeconds = 25
	assert.Equal(t, 25*time.Second, cfg.Timeout())
}

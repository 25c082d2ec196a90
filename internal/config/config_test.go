package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"IMAGELAB_SERVICE_URL", "IMAGELAB_START_HINT", "IMAGELAB_TIMEOUT", "LOG_LEVEL", "IMAGELAB_JSON_LOGS"} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Service.BaseURL)
	assert.Equal(t, "/compress", cfg.Service.CompressPath)
	assert.Equal(t, "/filter", cfg.Service.FilterPath)
	assert.Equal(t, 60*time.Second, cfg.Service.Timeout)
	assert.Contains(t, cfg.Service.StartHint, "python app.py")
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "imagelab.yaml", `
service:
  base_url: http://images.local:8080
  timeout: 5s
log:
  level: debug
  json: true
`)

	cfg, err := Load(Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "http://images.local:8080", cfg.Service.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "/compress", cfg.Service.CompressPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "imagelab.toml", `
monitor_interval = "0s"

[service]
base_url = "https://images.example.com"
filter_path = "/v2/filter"
start_hint = "run the service"
`)

	cfg, err := Load(Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "https://images.example.com", cfg.Service.BaseURL)
	assert.Equal(t, "/v2/filter", cfg.Service.FilterPath)
	assert.Equal(t, "run the service", cfg.Service.StartHint)
	assert.Zero(t, cfg.MonitorInterval)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "imagelab.yaml", "service:\n  base_url: http://from-file:1\n")
	t.Setenv("IMAGELAB_SERVICE_URL", "http://from-env:2")
	t.Setenv("IMAGELAB_TIMEOUT", "250ms")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("IMAGELAB_JSON_LOGS", "true")

	cfg, err := Load(Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:2", cfg.Service.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Service.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadRejectsBadInput(t *testing.T) {
	clearEnv(t)
	_, err := Load(Options{Path: writeFile(t, "imagelab.ini", "x=1")})
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(Options{Path: writeFile(t, "bad.yaml", "service: [")})
	assert.ErrorContains(t, err, "failed to decode config file")

	t.Setenv("IMAGELAB_TIMEOUT", "soon")
	_, err = Load(Options{Path: writeFile(t, "ok.yaml", "log:\n  level: info\n")})
	assert.ErrorContains(t, err, "IMAGELAB_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Service.BaseURL = "ftp://nope"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Service.Timeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Service.CompressPath = "compress"
	assert.Error(t, cfg.Validate())
}

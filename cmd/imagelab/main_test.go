package main

import (
	"testing"
	"time"

	"imagelab/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	cfg := config.Default()
	var applyErr error
	app := &cli.App{
		Name:  "imagelab",
		Flags: flags,
		Action: func(c *cli.Context) error {
			applyErr = applyFlags(c, cfg)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"imagelab"}, args...)))
	return cfg, applyErr
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg, err := runFlags(t,
		"--service-url", "http://images.internal:8080",
		"--timeout", "5s",
		"--log-level", "debug",
		"--json-logs",
	)
	require.NoError(t, err)

	assert.Equal(t, "http://images.internal:8080", cfg.Service.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestUnsetFlagsKeepConfig(t *testing.T) {
	cfg, err := runFlags(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInvalidFlagIsRejected(t *testing.T) {
	_, err := runFlags(t, "--service-url", "ftp://images")
	assert.Error(t, err)
}

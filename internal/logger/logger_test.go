package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Info("Workflow", "run finished", map[string]interface{}{"workflow": "jpeg"})

	var entry map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Workflow", entry["component"])
	assert.Equal(t, "run finished", entry["message"])
	assert.Equal(t, "jpeg", entry["workflow"])
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Client", "hidden", nil)
	log.Info("Client", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("Client", errors.New("boom"), nil)

	var entry map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "operation failed", entry["message"])
}

func TestNoOpLoggerSatisfiesInterface(t *testing.T) {
	var log Logger = NoOpLogger{}
	log.Info("x", "y", nil)
	log.Error("x", errors.New("y"), nil)
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycportal/internal/config"
)

func TestConfigure_JSON(t *testing.T) {
	l := log.New()
	var buf bytes.Buffer

	require.NoError(t, configure(l, config.LogConfig{Level: "info", Format: "json"}, &buf))
	l.WithField("user_id", "u-1").Info("hello")
	l.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestConfigure_Console(t *testing.T) {
	l := log.New()
	var buf bytes.Buffer

	require.NoError(t, configure(l, config.LogConfig{Level: "debug", Format: "console"}, &buf))
	l.Debug("visible")

	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "visible")
}

func TestConfigure_BadLevel(t *testing.T) {
	err := configure(log.New(), config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

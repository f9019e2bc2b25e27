package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, "production")).With("service", serviceName)

	l.Debug("hidden")
	l.Info("subscription approved", "order_code", "KK-2026-ABC123")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "subscription approved", line["msg"])
	assert.Equal(t, "KK-2026-ABC123", line["order_code"])
	assert.Equal(t, serviceName, line["service"])
	assert.Contains(t, line, "source")
}

func TestNewHandler_TestEnvOnlyWarns(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, "test"))

	l.Info("noise")
	assert.Empty(t, buf.String())
	l.Warn("rate limit exceeded", "key", "ip:192.0.2.1")
	assert.Contains(t, buf.String(), "rate limit exceeded")
}

func TestWorkerLog_Levels(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	var buf bytes.Buffer
	log = slog.New(newHandler(&buf, "production"))

	WorkerLog("subscriptions", "expire", nil, "expired", 0)
	assert.Empty(t, buf.String(), "completed runs are debug")

	WorkerLog("subscriptions", "expire", errors.New("db down"), "expired", 0)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "subscriptions", line["worker"])
	assert.Equal(t, "db down", line["error"])
}

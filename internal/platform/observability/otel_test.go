package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")

	settings := SettingsFromEnv("shop-api")
	assert.Equal(t, "shop-api", settings.ServiceName)
	assert.Equal(t, "staging", settings.Environment)
	assert.Equal(t, slog.LevelError, settings.LogLevel)
	assert.False(t, settings.OTLPInsecure)
}

func TestNewLoggerTagsService(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(Settings{ServiceName: "shop-api", LogLevel: slog.LevelInfo, LogOutput: &buf})
	logger.Debug("hidden")
	logger.Info("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["msg"])
	assert.Equal(t, "shop-api", line["service"])
}

func TestNilInstrumentsFallBack(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("x"))
	assert.NotNil(t, instruments.Meter("x"))
	_, err := instruments.Collect(context.Background())
	assert.Error(t, err)
}

func TestInMemoryCollectsCounters(t *testing.T) {
	instruments := NewInMemory(nil)
	counter, err := instruments.Meter("test").Int64Counter("orders.service.orders_placed")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)
	counter.Add(context.Background(), 1)

	rm, err := instruments.Collect(context.Background())
	require.NoError(t, err)
	total, ok := Int64Sum(rm, "orders.service.orders_placed")
	require.True(t, ok)
	assert.Equal(t, int64(3), total)

	_, ok = Int64Sum(rm, "unknown")
	assert.False(t, ok)
}

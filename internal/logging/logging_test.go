package logging

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
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"2", slog.Level(2), true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("MOXCONV_LOG_LEVEL", "debug")
	t.Setenv("MOXCONV_LOG_FORMAT", "json")
	t.Setenv("MOXCONV_LOG_ADD_SOURCE", "true")

	config := LoadConfig()
	assert.Equal(t, slog.LevelDebug, config.Level)
	assert.Equal(t, "json", config.Format)
	assert.True(t, config.AddSource)
}

func TestLoadConfig_IgnoresInvalidEnv(t *testing.T) {
	t.Setenv("MOXCONV_LOG_LEVEL", "loud")
	t.Setenv("MOXCONV_LOG_FORMAT", "xml")
	t.Setenv("MOXCONV_LOG_ADD_SOURCE", "maybe")

	assert.Equal(t, DefaultConfig().Level, LoadConfig().Level)
	assert.Equal(t, "text", LoadConfig().Format)
	assert.False(t, LoadConfig().AddSource)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.Debug("hidden")
	logger.Info("converted", "lines", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, float64(3), entry["lines"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "text", Writer: &buf})

	logger.Debug("parsed", "records", 2)
	assert.Contains(t, buf.String(), "msg=parsed")
	assert.Contains(t, buf.String(), "records=2")
}

func TestContext(t *testing.T) {
	logger := Discard()
	ctx := NewContext(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-dev/agora/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", true)

	log.Info("dropped")
	log.Warn("reply created", "replyId", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "reply created", record["msg"])
	assert.Equal(t, AppName, record["app"])
	assert.EqualValues(t, 7, record["replyId"])
	assert.Contains(t, record, "source")
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", false).Info("thread listed", "channel", "go")

	assert.Contains(t, buf.String(), "app="+AppName)
	assert.Contains(t, buf.String(), "channel=go")
}

func TestSetupReplacesGlobal(t *testing.T) {
	before := Log
	Setup(config.Public{LogLevel: "debug", LogJSON: true})
	defer Setup(config.Public{})

	assert.NotSame(t, before, Log)
	assert.True(t, Log.Enabled(context.Background(), slog.LevelDebug))
	assert.Same(t, Log, slog.Default())
}

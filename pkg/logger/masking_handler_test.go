package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maskedRecord(t *testing.T, attrs ...any) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	handler := NewMaskingHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	log.Info("test message", attrs...)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestMaskingHandler_MasksSensitiveKeys(t *testing.T) {
	record := maskedRecord(t,
		"password", "hunter2",
		"token", "abc123",
		"id_token", "eyJhbGciOi",
		"secret", "s3cret",
		"api_key", "key-1",
		"authorization", "Bearer xyz",
	)

	assert.Equal(t, "***", record["password"])
	assert.Equal(t, "***", record["token"])
	assert.Equal(t, "***", record["id_token"])
	assert.Equal(t, "***", record["secret"])
	assert.Equal(t, "***", record["api_key"])
	assert.Equal(t, "***", record["authorization"])
}

func TestMaskingHandler_CaseInsensitive(t *testing.T) {
	record := maskedRecord(t, "Password", "hunter2", "ID_TOKEN", "abc")

	assert.Equal(t, "***", record["Password"])
	assert.Equal(t, "***", record["ID_TOKEN"])
}

func TestMaskingHandler_LeavesOtherKeysAlone(t *testing.T) {
	record := maskedRecord(t, "uid", "u1", "balance", 500)

	assert.Equal(t, "test message", record["msg"])
	assert.Equal(t, "u1", record["uid"])
	assert.Equal(t, float64(500), record["balance"])
}

func TestMaskingHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMaskingHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("unknown"))
}

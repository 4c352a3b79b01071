package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init("production", "debug")
	SetOutput(&buf)

	ctx := WithRequestID(context.Background(), "rid-42")
	FromContext(ctx, "refine").Info("section refined")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rid-42", line["request_id"])
	assert.Equal(t, "refine", line["operation"])
	assert.Equal(t, "section refined", line["msg"])
}

func TestFromContext_UnknownRequestID(t *testing.T) {
	entry := FromContext(context.Background(), "op")
	assert.Equal(t, "unknown", entry.Data["request_id"])
	assert.Empty(t, RequestID(context.Background()))
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	Init("development", "loud")
	assert.Equal(t, "info", Base().GetLevel().String())
}

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")

	assert.Equal(t, zerolog.WarnLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("loud"))

	t.Setenv(EnvLevel, "info")
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Output: &buf})

	ctx := logger.WithContext(context.Background())
	l := WithComponentFromContext(ctx, "history")
	l.Debug().Str("tag", "1.0.0").Msg("last release")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "history", entry["component"])
	assert.Equal(t, "1.0.0", entry["tag"])
	assert.Equal(t, "last release", entry["message"])
}

func TestFromContextWithoutLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())

	//nolint:staticcheck
	assert.NotNil(t, FromContext(nil))
}

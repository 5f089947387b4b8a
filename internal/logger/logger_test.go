package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("client")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "client", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("client", path)

	l.Info().Str("remote_id", "R1").Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"remote_id":"R1"`)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_Independent(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf)}
	child := parent.GetChildLogger()
	child.Logger = child.With().Str("phase", "download").Logger()

	parent.Info().Msg("parent")
	assert.NotContains(t, buf.String(), "phase")

	buf.Reset()
	child.Info().Msg("child")
	assert.Contains(t, buf.String(), `"phase":"download"`)
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
	ctx := base.WithContext(context.Background())

	FromContext(ctx).Info().Msg("ctx")
	assert.Contains(t, buf.String(), `"trace_id":"abc"`)

	buf.Reset()
	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	FromRequest(r).Info().Msg("req")
	assert.Contains(t, buf.String(), `"trace_id":"abc"`)
}

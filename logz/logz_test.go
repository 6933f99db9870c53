package logz_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/attrkit/attrkit/logz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDetach(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, logz.Attach(&buf, logz.FormatText, slog.LevelInfo))
	t.Cleanup(func() { logz.Detach() })
	assert.True(t, logz.Attached())

	// A second attach is refused.
	assert.False(t, logz.AttachStderr(slog.LevelDebug))

	slog.Info("hello", "who", "world")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "who=world")

	assert.True(t, logz.Detach())
	assert.False(t, logz.Detach())
	assert.False(t, logz.Attached())
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, logz.Attach(&buf, logz.FormatText, slog.LevelInfo))
	t.Cleanup(func() { logz.Detach() })

	slog.Debug("quiet")
	assert.NotContains(t, buf.String(), "quiet")

	logz.SetLevel(slog.LevelDebug)
	slog.Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestAttachJSON(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, logz.Attach(&buf, logz.FormatJSON, slog.LevelInfo))
	t.Cleanup(func() { logz.Detach() })

	slog.Info("hello", "who", "world")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"who":"world"`)
}

type payload struct {
	inner map[string]any
}

func (p payload) Dump() map[string]any { return p.inner }

func TestJSONDumps(t *testing.T) {
	out, err := logz.JSONDumps(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", out)
}

func TestJSONDumps_Dumper(t *testing.T) {
	v := payload{inner: map[string]any{
		"name": "a",
		"sub":  payload{inner: map[string]any{"x": true}},
		"list": []any{payload{inner: map[string]any{"y": 1}}},
	}}
	out, err := logz.JSONDumps(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","sub":{"x":true},"list":[{"y":1}]}`, out)
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv(t *testing.T) {
	opts := FromEnv(env(map[string]string{
		"AXCORE_DEBUG":    "1",
		"AXCORE_LOG_JSON": "0",
		"AXCORE_LOG_DEST": "both:/tmp/x.log",
	}))
	assert.Equal(t, Options{Debug: true, Dest: "both:/tmp/x.log"}, opts)
}

func TestNew_TextLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog := New(Options{}, &buf)
	defer closeLog()

	logger.Debug("hidden")
	logger.Info("shown", "pid", 42)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "pid=42")
	assert.Contains(t, out, "component=axcore")
	assert.NotContains(t, out, "time=")
}

func TestNew_DebugJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog := New(Options{Debug: true, JSON: true}, &buf)
	defer closeLog()

	logger.Debug("retry", "op", "element_at")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "retry", rec["msg"])
	assert.Equal(t, "element_at", rec["op"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_FileDest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axcore.log")
	var stderr bytes.Buffer
	logger, closeLog := New(Options{Dest: "both:" + path}, &stderr)
	logger.Info("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, stderr.String(), "msg=hello")
}

func TestNew_BadFileFallsBackToStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closeLog := New(Options{Dest: "file:" + filepath.Join(t.TempDir(), "missing", "x.log")}, &stderr)
	defer closeLog()
	logger.Info("still here")
	assert.True(t, strings.Contains(stderr.String(), "failed to open log file"))
	assert.Contains(t, stderr.String(), "msg=\"still here\"")
}

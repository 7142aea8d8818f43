package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: "warn", Format: "json"})

	log.Info("dropped")
	log.WithField("op", "routes").Error(errors.New("boom"), "request failed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "request failed", entry["msg"])
	assert.Equal(t, "routes", entry["op"])
	assert.Equal(t, "boom", entry["error"])
}

func TestOpen(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		log, closer, err := Open(Config{})
		require.NoError(t, err)
		assert.NotNil(t, log)
		assert.NoError(t, closer.Close())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "airmap.log")
		log, closer, err := Open(Config{File: path, Level: "debug"})
		require.NoError(t, err)
		log.Debug("hello", "n", 1)
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "msg=hello")
		assert.Contains(t, string(data), "n=1")
	})
}

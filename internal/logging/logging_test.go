package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	quiet, err := New(false, "")
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.WarnLevel))

	verbose, err := New(true, "")
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treesync.log")

	logger, err := New(true, path)
	require.NoError(t, err)

	logger.Info("document saved", zap.String("path", "Screen.kt"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "document saved", entry["msg"])
	assert.Equal(t, "Screen.kt", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestNew_BadPath(t *testing.T) {
	_, err := New(false, filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

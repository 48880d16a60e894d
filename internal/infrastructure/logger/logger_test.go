package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileSinkRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(&Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("below threshold")
	log.Warn("kept entry")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below threshold")
	assert.Contains(t, string(data), "kept entry")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(&Config{Level: "chatty", Format: "json", Output: path})
	require.NoError(t, err)

	log.Debug("debug entry")
	log.Info("info entry")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "debug entry")
	assert.Contains(t, string(data), "info entry")
}

func TestNew_ConsoleFormat(t *testing.T) {
	log, err := New(&Config{Level: "info", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNew_UnwritableFileIsAnError(t *testing.T) {
	_, err := New(&Config{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "service.log")})
	assert.Error(t, err)
}

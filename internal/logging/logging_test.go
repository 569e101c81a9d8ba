package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := New(level, "")
		require.NoError(t, err, "level %q", level)
		// Sync on stderr fails on some platforms; only creation is
		// under test here.
		_ = logger.Sync()
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", "")
	assert.Error(t, err)
}

func TestNewWritesToLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "crawler.log")

	logger, err := New("info", logFile)
	require.NoError(t, err)

	logger.Info("crawl started")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "crawl started")
}

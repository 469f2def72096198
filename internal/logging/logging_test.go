package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "loanboard.log")
	logger, err := New(path, "debug")
	require.NoError(t, err)
	logger.Debug("payment processed", zap.String("payment_id", "PAY-002"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	require.Equal(t, "payment processed", entry["msg"])
	require.Equal(t, "PAY-002", entry["payment_id"])
	require.Equal(t, "debug", entry["level"])
}

func TestNewLevelFilters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loanboard.log")
	logger, err := New(path, "bogus")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}

func TestNewEmptyPathDiscards(t *testing.T) {
	t.Parallel()

	logger, err := New("", "info")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("nothing happens")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	loansQuery = ""
	configPath = ""
	verbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LOANBOARD_CONFIG", "")
	return home
}

func TestLoansListsSeed(t *testing.T) {
	testHome(t)

	out, err := execute(t, "loans")
	require.NoError(t, err)
	for _, id := range []string{"LN-2024-001", "LN-2024-005"} {
		require.Contains(t, out, id)
	}
}

func TestLoansQuery(t *testing.T) {
	testHome(t)

	out, err := execute(t, "loans", "--query", "medical")
	require.NoError(t, err)
	require.Contains(t, out, "LN-2024-003")
	require.NotContains(t, out, "LN-2024-001")

	out, err = execute(t, "loans", "-q", "zzzzzz")
	require.NoError(t, err)
	require.Contains(t, out, "no loans")
}

func TestPayInMemory(t *testing.T) {
	testHome(t)

	out, err := execute(t, "pay", "PAY-002")
	require.NoError(t, err)
	require.Contains(t, out, "payment PAY-002 processed")
	require.Contains(t, out, "not stored")

	_, err = execute(t, "pay", "PAY-404")
	require.ErrorContains(t, err, "PAY-404 not found")
}

func TestPayPersistsAndResetRestores(t *testing.T) {
	home := testHome(t)
	t.Setenv("LOANBOARD_DATABASE_PATH", filepath.Join(home, "loans.db"))

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "migrated")

	out, err = execute(t, "pay", "PAY-004")
	require.NoError(t, err)
	require.NotContains(t, out, "not stored")

	out, err = execute(t, "reset")
	require.NoError(t, err)
	require.Contains(t, out, "restored 5 loans and 6 payments")
}

func TestMigrateNeedsDatabasePath(t *testing.T) {
	testHome(t)

	_, err := execute(t, "migrate")
	require.ErrorContains(t, err, "database.path is not set")

	_, err = execute(t, "reset")
	require.ErrorContains(t, err, "database.path is not set")
}

func TestConfigInitWritesFile(t *testing.T) {
	home := testHome(t)
	path := filepath.Join(home, "custom", "config.toml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "LN-2024")
}

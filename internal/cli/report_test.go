package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedDatabase(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "pruefungen.db")
	_, err := executeCommand(t, "check", "--db", db,
		filepath.Join("testdata", "minimal.yaml"))
	// Exit 1 from the high findings; the run is still recorded.
	require.Error(t, err)
	require.Equal(t, ExitFailure, GetExitCode(err))
	return db
}

func TestReportCommandLatestRun(t *testing.T) {
	db := recordedDatabase(t)

	out, err := executeCommand(t, "report", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Projekt: Rohbau Süd")
	assert.Contains(t, out, "kg420_0001")
}

func TestReportCommandByRunID(t *testing.T) {
	db := recordedDatabase(t)

	list, err := executeCommand(t, "report", "--db", db, "--list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(list), "\n")
	require.Len(t, lines, 1)
	runID := strings.Fields(lines[0])[0]

	out, err := executeCommand(t, "report", "--db", db, runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Lauf:    "+runID)
}

func TestReportCommandUnknownRun(t *testing.T) {
	db := recordedDatabase(t)

	_, err := executeCommand(t, "report", "--db", db, "missing-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found")
}

func TestReportCommandEmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "leer.db")

	_, err := executeCommand(t, "report", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

package testutil

import (
	"bytes"
	"log/slog"
	"testing"
)

// Logger returns a slog.Logger routed through the test log, so evaluator
// warnings and panic reports show up under -v without polluting stderr.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", bytes.TrimRight(p, "\n"))
	return len(p), nil
}

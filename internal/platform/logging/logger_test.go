package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestConsoleLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, LevelInfo).Named("sheetstore")

	logger.Debug("hidden")
	logger.WarnContext(context.Background(), "score clamped", "entity_id", "3", "day", 4, "error", errors.New("out of range"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	for _, want := range []string{"WARN", "sheetstore", "score clamped", `"entity_id": "3"`, `"day": 4`, "out of range"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("With on nil logger must return a usable logger")
	}
}

package logging

import (
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	logger, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	for i := 0; i < 5; i++ {
		logger.Info("entry-%d", i)
	}
	lines := logger.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestLevelsAreRecorded(t *testing.T) {
	logger, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("catalog loaded")
	logger.Warn("slow response")
	logger.Error("order rejected")
	lines := logger.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lines))
	}
	for idx, level := range []string{"INFO", "WARN", "ERROR"} {
		if !strings.Contains(lines[idx], level) {
			t.Fatalf("line %d = %q, missing level %s", idx, lines[idx], level)
		}
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("ignored")
	if lines := logger.Tail(5); lines != nil {
		t.Fatalf("expected nil tail from nil logger, got %v", lines)
	}
}

package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", &buf)

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("Expected debug and info to be filtered, got: %s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "warn line") {
		t.Errorf("Expected warn line, got: %s", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "error line") {
		t.Errorf("Expected error line, got: %s", out)
	}
}

func TestFieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", &buf)

	l.Debug("saved", map[string]any{"tasks": 3, "file": "/tmp/tasks.json"})

	out := strings.TrimSpace(buf.String())
	if !strings.HasSuffix(out, "saved file=/tmp/tasks.json tasks=3") {
		t.Errorf("Expected sorted key=value fields, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warning ", WARN},
		{"error", ERROR},
		{"bogus", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

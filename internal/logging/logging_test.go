/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("reserved", "count", 3)
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"count":3`) {
		t.Errorf("Expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, "warn", "text").Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info should be filtered at warn level, got %q", buf.String())
	}

	New(&buf, "debug", "text").Debug("shown", "entity", "people")
	if !strings.Contains(buf.String(), "entity=people") {
		t.Errorf("Expected text output, got %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(New(&buf, "info", "text"))

	WithFields("entity", "people", "count", 3).Info("keys reserved")
	out := buf.String()
	if !strings.Contains(out, "entity=people") || !strings.Contains(out, "count=3") {
		t.Errorf("Expected fields in output, got %q", out)
	}
}

package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogJSON(t *testing.T) {
	dir := t.TempDir()
	data := map[string]int{"count": 17}
	if err := LogJSON(dir, "artifact", data); err != nil {
		t.Fatalf("LogJSON: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "artifact.json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("parse artifact: %v", err)
	}
	if got["count"] != 17 {
		t.Errorf("artifact count = %d, want 17", got["count"])
	}
}

package logger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger and installs it as the slog default.
// format selects the handler, "json" or anything else for text.
func New(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	log := slog.New(h)
	slog.SetDefault(log)
	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogJSON writes data as an indented JSON artifact at dir/id.json.
func LogJSON(dir, id string, data interface{}) error {
	file := fmt.Sprintf("%s/%s.json", dir, id)
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0644)
}

package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"petrarch/internal/config"
	"petrarch/internal/logging"
	"petrarch/internal/services"
)

func newFileLogger(t *testing.T, format, level string) (string, func(string, ...any)) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "petrarch.log")
	logger, err := logging.New(logging.Options{Format: format, Level: level, OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logPath, logger.Info
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("coding started")

	if !strings.Contains(readLog(t, filepath.Join(cfg.Paths.LogDir, "petrarch.log")), "coding started") {
		t.Fatal("expected message in petrarch.log")
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	path, info := newFileLogger(t, "console", "info")
	info("message without caller")
	if content := readLog(t, path); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	path, info := newFileLogger(t, "console", "debug")
	info("message with caller")
	if content := readLog(t, path); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerPrefixesComponent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "component.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "discard").Info("story discard", logging.String("phrase", "TROOPS WITHDRAW"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO discard: story discard") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, `phrase="TROOPS WITHDRAW"`) {
		t.Fatalf("expected quoted attribute, got %q", content)
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should not be repeated as attribute, got %q", content)
	}
}

func TestConsoleLoggerPrefixesGroups(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "group.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.WithGroup("coder").Info("sentence coded", logging.Int("events", 2))

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO sentence coded coder.events=2") {
		t.Fatalf("expected grouped attribute, got %q", content)
	}
}

func TestJSONLoggerKeys(t *testing.T) {
	path, info := newFileLogger(t, "json", "info")
	info("json message", "k", "v")

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	for _, key := range []string{"ts", "level", "msg", "k"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("expected key %q in %v", key, payload)
		}
	}
	if payload["level"] != "info" {
		t.Fatalf("expected lower-case level, got %v", payload["level"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-xyz")
	ctx = services.WithStoryID(ctx, "AFP001")
	ctx = services.WithSentenceID(ctx, "2")

	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WithContext(ctx, logger).Info("contextual log")

	content := readLog(t, logPath)
	for _, fragment := range []string{"run_id=run-xyz", "story_id=AFP001", "sentence_id=2"} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in %q", fragment, content)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected no-op logger to be disabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}

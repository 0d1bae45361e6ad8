package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "houseprice.log")
	logger, err := New(Config{Level: "debug", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("model loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"model loaded"`) {
		t.Fatalf("expected json log line, got %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWithConsoleFiltersByLevel(t *testing.T) {
	var console bytes.Buffer
	logger, err := NewWithConsole(Config{Level: "error"}, zapcore.AddSync(&console))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("starting")
	logger.Error("model unavailable")
	_ = logger.Sync()

	out := console.String()
	if strings.Contains(out, "starting") {
		t.Fatalf("info line should be filtered at error level: %s", out)
	}
	if !strings.Contains(out, "model unavailable") {
		t.Fatalf("expected error line on console, got %q", out)
	}
}

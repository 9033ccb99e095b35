package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConsoleLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Options{Level: "warn", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", zap.String("ticker", "BMW.DE"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") || !strings.Contains(out, "BMW.DE") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Options{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error: %v", err)
	}
	logger.Debug("statement fetched", zap.Int("line_items", 12))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "statement fetched" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["line_items"] != float64(12) {
		t.Errorf("line_items = %v", entry["line_items"])
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := NewWithWriter(Options{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

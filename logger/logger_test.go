package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", buf)
}

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").Info("hello")
	if !strings.Contains(buf.String(), `"service":"test-svc"`) {
		t.Errorf("expected service field, got %q", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected info to be written with fallback level, got %q", buf.String())
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug")
	l.WithComponent("auth").Info("login", Fields(FieldUserID, 1, FieldUsername, "admin"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "login" {
		t.Errorf("expected message 'login', got %v", entry["message"])
	}
	if entry[FieldComponent] != "auth" {
		t.Errorf("expected component 'auth', got %v", entry[FieldComponent])
	}
	if entry[FieldUsername] != "admin" {
		t.Errorf("expected username 'admin', got %v", entry[FieldUsername])
	}
	if entry["service"] != "test-svc" {
		t.Errorf("expected service 'test-svc', got %v", entry["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn to be written, got %q", buf.String())
	}
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("handled")
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("expected request_id in output, got %q", buf.String())
	}
}

func TestWithContextWithoutRequestID(t *testing.T) {
	l := NewNop()
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when context has no request ID")
	}
}

func TestInitAndGlobal(t *testing.T) {
	prev, prevLevel := global, zerolog.GlobalLevel()
	defer func() {
		global = prev
		zerolog.SetGlobalLevel(prevLevel)
	}()

	Init(&Config{Level: "error", Format: "json", ServiceName: "authgate"})
	if GetGlobalLogger() == nil || GetGlobalLogger() != global {
		t.Fatal("expected Init to set the global logger")
	}
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Errorf("expected global level error, got %v", zerolog.GlobalLevel())
	}

	global = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	prev := global
	defer func() { global = prev }()

	var buf bytes.Buffer
	global = jsonLogger(&buf, "debug")
	WithComponent("store").Debug("component")
	WithContext(ContextWithRequestID(context.Background(), "r1")).Info("ctx")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"component":"store"`) {
		t.Errorf("expected component field, got %q", lines[0])
	}
	if !strings.Contains(lines[1], `"request_id":"r1"`) {
		t.Errorf("expected request_id field, got %q", lines[1])
	}
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty request ID, got %q", id)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"pretty", Config{Level: "debug", Format: "pretty", Output: "stderr"}, false},
		{"bad level", Config{Level: "verbose", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "authgate", &buf)
	l.Info("started")
	out := buf.String()
	if !strings.Contains(out, "[AUT][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "started") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("login", errors.New("bad"))
	if m[FieldOperation] != "login" || m[FieldError] != "bad" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("verify", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}

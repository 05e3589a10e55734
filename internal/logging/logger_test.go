package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return entry
}

func TestInfoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	logger.Info("readings accepted", "subject_id", 7, "count", 12)

	entry := decodeLine(t, &buf)
	if entry["message"] != "readings accepted" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["subject_id"] != float64(7) || entry["count"] != float64(12) {
		t.Errorf("fields = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestErrorFieldRendering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	logger.Error("store write failed", "error", errors.New("connection refused"))

	entry := decodeLine(t, &buf)
	if entry["error"] != "connection refused" {
		t.Errorf("error field = %v, want string rendering", entry["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.WarnLevel)

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info line emitted below warn level: %q", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn line missing")
	}
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel).With("service", "api")

	logger.Info("started")

	entry := decodeLine(t, &buf)
	if entry["service"] != "api" {
		t.Errorf("service = %v, want api", entry["service"])
	}
}

func TestOddFieldCountIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	logger.Info("lonely key", "dangling")

	entry := decodeLine(t, &buf)
	if _, ok := entry["dangling"]; ok {
		t.Error("dangling key should be dropped")
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "req-9" {
		t.Errorf("request id = %q, %v", id, ok)
	}
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("bare context should carry no request id")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)
	ctx := WithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext should fall back to the global logger")
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)
	ctx := WithRequestID(context.Background(), "req-42")

	logger.WithContext(ctx).Info("handled")

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
}

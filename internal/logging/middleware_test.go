package logging

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func TestFiberMiddlewareLogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	app := fiber.New()
	app.Use(FiberMiddleware(logger, DefaultMiddlewareConfig()))
	app.Get("/v1/subjects", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/subjects", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be assigned")
	}

	line := decodeLine(t, &buf)
	if line["message"] != "Request completed" {
		t.Errorf("message = %v", line["message"])
	}
	if line["path"] != "/v1/subjects" {
		t.Errorf("path = %v", line["path"])
	}
	if line["request_id"] == nil || line["request_id"] == "" {
		t.Error("request_id missing from log line")
	}
}

func TestFiberMiddlewarePropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	app := fiber.New()
	app.Use(FiberMiddleware(logger, MiddlewareConfig{}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		if id, ok := RequestIDFromContext(c.UserContext()); !ok || id != "req-7" {
			t.Error("request id not propagated on user context")
		}
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "req-7")
	if _, err := app.Test(req, -1); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if !strings.Contains(buf.String(), `"request_id":"req-7"`) {
		t.Errorf("log line should carry the caller's request id: %s", buf.String())
	}
}

func TestFiberMiddlewareSkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	app := fiber.New()
	app.Use(FiberMiddleware(logger, DefaultMiddlewareConfig()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("health probe should not be logged: %s", buf.String())
	}
}

func TestFiberMiddlewareWarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	app := fiber.New()
	app.Use(FiberMiddleware(logger, MiddlewareConfig{}))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/missing", nil), -1); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	line := decodeLine(t, &buf)
	if line["level"] != "warn" || line["message"] != "Client error" {
		t.Errorf("line = %v", line)
	}
}

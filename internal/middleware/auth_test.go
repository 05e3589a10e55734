package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
)

const testKey = "0123456789abcdef0123456789abcdef"

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
}

func authApp(t *testing.T, keys []string, enabled bool) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(APIKeyAuth(testLogger(), keys, enabled))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{testKey, true},
		{"short", false},
		{"", false},
		{strings.Repeat("x", MinAPIKeyLength), true},
		{strings.Repeat("x", MinAPIKeyLength-1), false},
	}
	for _, tt := range tests {
		if got := ValidateAPIKey(tt.key); got != tt.want {
			t.Errorf("ValidateAPIKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	app := authApp(t, nil, false)
	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAuthAcceptsValidKey(t *testing.T) {
	app := authApp(t, []string{testKey}, true)

	headers := []struct {
		name  string
		value string
	}{
		{"X-API-Key", testKey},
		{"Authorization", testKey},
		{"Authorization", "Bearer " + testKey},
	}
	for _, h := range headers {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(h.name, h.value)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: %q status = %d, want 200", h.name, h.value, resp.StatusCode)
		}
	}
}

func TestAuthRejectsMissingAndInvalidKey(t *testing.T) {
	app := authApp(t, []string{testKey}, true)

	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "wrong-key-wrong-key-wrong-key-wrong")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("invalid key status = %d, want 401", resp.StatusCode)
	}
}

func TestAuthSkipsTooShortConfiguredKeys(t *testing.T) {
	// A configured key below the minimum length must never authenticate.
	app := authApp(t, []string{"short"}, true)
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", "short")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("abcd1234"); got != "abcd****" {
		t.Errorf("maskAPIKey = %q", got)
	}
	if got := maskAPIKey("ab"); got != "****" {
		t.Errorf("maskAPIKey short = %q", got)
	}
}

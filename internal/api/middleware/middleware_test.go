package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayumi/capgen/internal/logger"
)

func testEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func quietLogger() *logger.Logger {
	return logger.New(&logger.Config{
		Level:       "error",
		Format:      "json",
		Output:      io.Discard,
		ServiceName: "test",
	})
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := testEngine(RequestLogger(quietLogger()))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected an X-Request-ID header")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a uuid request ID, got %q: %v", id, err)
	}
}

func TestRequestLoggerUniqueIDs(t *testing.T) {
	r := testEngine(RequestLogger(quietLogger()))

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		if seen[id] {
			t.Fatalf("request ID %s repeated", id)
		}
		seen[id] = true
	}
}

func TestCORSAllowAll(t *testing.T) {
	r := testEngine(CORS(CORSConfig{AllowAllOrigins: true}))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := testEngine(CORS(CORSConfig{AllowAllOrigins: true}))

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected Access-Control-Allow-Methods on preflight")
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"http://app.example.com"}}
	r := testEngine(CORS(cfg))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.example.com" {
		t.Errorf("expected the origin echoed back, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials allowed, got %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"http://app.example.com"}}
	r := testEngine(CORS(cfg))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers for a disallowed origin, got %q", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected the handler to still run, got status %d", w.Code)
	}
}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		config CORSConfig
		want   bool
	}{
		{name: "allow all", origin: "http://anywhere.com", config: CORSConfig{AllowAllOrigins: true}, want: true},
		{name: "listed origin", origin: "http://app.example.com", config: CORSConfig{AllowedOrigins: []string{"http://app.example.com"}}, want: true},
		{name: "case insensitive", origin: "http://APP.example.com", config: CORSConfig{AllowedOrigins: []string{"http://app.example.com"}}, want: true},
		{name: "wildcard entry", origin: "http://anywhere.com", config: CORSConfig{AllowedOrigins: []string{"*"}}, want: true},
		{name: "unlisted origin", origin: "http://evil.example.com", config: CORSConfig{AllowedOrigins: []string{"http://app.example.com"}}, want: false},
		{name: "empty config", origin: "http://anywhere.com", config: CORSConfig{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOriginAllowed(tt.origin, tt.config); got != tt.want {
				t.Errorf("IsOriginAllowed(%q): expected %v, got %v", tt.origin, tt.want, got)
			}
		})
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func servePage(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", NewPageHandler().Page)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPage(t *testing.T) {
	w := servePage(t)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected an HTML content type, got %q", ct)
	}
}

func TestPage_GenerateStartsDisabled(t *testing.T) {
	body := servePage(t).Body.String()

	// Empty inputs disable the generate actions instead of producing an
	// error on click; the page enables them once input is present.
	for _, tag := range []string{
		`<button id="textBtn" class="generate" disabled>`,
		`<button id="imageBtn" class="generate" disabled>`,
	} {
		if !strings.Contains(body, tag) {
			t.Errorf("expected the page to contain %q", tag)
		}
	}
}

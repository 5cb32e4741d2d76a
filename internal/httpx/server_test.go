package httpx

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

func TestEngine_HealthzAndRequestID(t *testing.T) {
	r := NewEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("incoming request id not propagated: %q", got)
	}
}

func TestEngine_RIDInsideHandler(t *testing.T) {
	r := NewEngine()
	var seen string
	r.GET("/probe", func(c *gin.Context) {
		seen = RID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	r.ServeHTTP(w, req)
	if seen != "rid-1" {
		t.Fatalf("RID=%q", seen)
	}
}

func TestWithCORS_Preflight(t *testing.T) {
	h := WithCORS(NewEngine(), []string{"https://school.example.org"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/store-orders", nil)
	req.Header.Set("Origin", "https://school.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://school.example.org" {
		t.Fatalf("allow origin=%q status=%d", got, w.Code)
	}
}

func TestRequestID_RejectsUnsafeIncomingID(t *testing.T) {
	r := NewEngine()

	for _, bad := range []string{strings.Repeat("a", maxRIDLen+1), "id with spaces", "rid\x00"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-ID", bad)
		r.ServeHTTP(w, req)
		got := w.Header().Get("X-Request-ID")
		if got == bad || got == "" {
			t.Fatalf("incoming id %q should have been replaced, got %q", bad, got)
		}
	}
}

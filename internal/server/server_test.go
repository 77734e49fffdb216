package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/oddhouse/hearth/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(store.New(), "test-version")
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if _, ok := body["collections"].(map[string]any); !ok {
		t.Errorf("collections missing from health body: %s", w.Body.String())
	}
}

func TestPreflightReturns204Everywhere(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api/seeds", "/api/well/echoes", "/anything/else"} {
		req := httptest.NewRequest("OPTIONS", path, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("OPTIONS %s: status = %d, want %d", path, w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("OPTIONS %s: Allow-Origin = %q, want *", path, got)
		}
	}
}

func TestCORSHeadersOnAPIResponses(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/pulse", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestSPAFallback(t *testing.T) {
	SetUI(fstest.MapFS{
		"index.html":  {Data: []byte("<html>the house</html>")},
		"app.abc1.js": {Data: []byte("console.log('hi')")},
	})
	t.Cleanup(func() { SetUI(nil) })

	srv := testServer(t)

	// A real asset is served with long-term caching.
	req := httptest.NewRequest("GET", "/app.abc1.js", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("asset: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "console.log") {
		t.Errorf("asset body = %q", w.Body.String())
	}
	if got := w.Header().Get("Cache-Control"); !strings.Contains(got, "max-age=31536000") {
		t.Errorf("asset Cache-Control = %q", got)
	}

	// An unmatched path falls back to index.html, uncached.
	req = httptest.NewRequest("GET", "/rooms/lighthouse", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("fallback: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "the house") {
		t.Errorf("fallback body = %q, want index.html content", w.Body.String())
	}
	if got := w.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("fallback Cache-Control = %q, want no-cache", got)
	}

	// An unmatched method on an API path also falls through to the SPA.
	req = httptest.NewRequest("DELETE", "/api/seeds", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "the house") {
		t.Errorf("unmatched method body = %q, want index.html content", w.Body.String())
	}
}

func TestNoUIReturns404(t *testing.T) {
	SetUI(nil)
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/anything", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "hearth_swept_rooms_total") {
		t.Error("exposition missing hearth counters")
	}
}

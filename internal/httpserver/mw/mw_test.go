package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/awareness/internal/logger"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"awareness.example.org", "awareness.example.org", true},
		{"awareness.example.org:8080", "awareness.example.org", true},
		{"awareness.example.org:8080", "awareness.example.org:9090", false},
		{"ops.example.org", "*.example.org", true},
		{"example.org", "*.example.org", false},
		{"evil-example.org", "*.example.org", false},
		{"other.org", "example.org", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestPassthroughWhenUnconfigured(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	log := logger.NewNop()

	for name, h := range map[string]http.Handler{
		"cidrs":      AllowOnlyCIDRS(nil, false, log)(ok),
		"hosts":      EnforceHost(nil, log)(ok),
		"rate limit": RateLimit(RateLimitConfig{})(ok),
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusTeapot {
			t.Errorf("%s: status = %d, want passthrough", name, rec.Code)
		}
	}
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(RateLimitConfig{PerSecond: 1, TrustProxy: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := hit("1.1.1.1"); code != http.StatusOK {
		t.Fatalf("first = %d", code)
	}
	if code := hit("1.1.1.1"); code != http.StatusTooManyRequests {
		t.Errorf("repeat = %d, want 429", code)
	}
	if code := hit("2.2.2.2"); code != http.StatusOK {
		t.Errorf("other client = %d, want 200", code)
	}
}

func TestStatusWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if w.status != http.StatusOK || w.bytes != 5 {
		t.Errorf("statusWriter = %d/%d, want 200/5", w.status, w.bytes)
	}
}

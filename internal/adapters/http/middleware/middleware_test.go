package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/csrf"
)

// TestRateLimiter_Allow verifies token exhaustion per client.
func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 2, time.Hour)

	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatal("first two requests rejected")
	}
	if rl.Allow("1.1.1.1") {
		t.Error("third request allowed")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("other client rejected")
	}
}

// TestRateLimit_IgnoresPort verifies that a client cannot bypass the limit by reconnecting.
func TestRateLimit_IgnoresPort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := RateLimit(NewRateLimiter(ctx, 1, time.Hour))(okHandler(http.StatusOK))

	for i, addr := range []string{"10.0.0.1:5000", "10.0.0.1:5001"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		want := http.StatusOK
		if i == 1 {
			want = http.StatusTooManyRequests
		}
		if rr.Code != want {
			t.Errorf("request %d status = %d, want %d", i+1, rr.Code, want)
		}
	}
}

// TestSecurityHeaders verifies the CSP allows the external image hosts.
func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(okHandler(http.StatusOK)).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	csp := rr.Header().Get("Content-Security-Policy")
	for _, host := range []string{"https://images.unsplash.com", "https://api.dicebear.com"} {
		if !strings.Contains(csp, host) {
			t.Errorf("CSP missing %s: %s", host, csp)
		}
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("X-Frame-Options not set")
	}
}

// TestCSRF_RejectsMissingToken verifies unsafe methods need a token.
func TestCSRF_RejectsMissingToken(t *testing.T) {
	key := make([]byte, 32)
	var token string
	handler := CSRF(key, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = csrf.Token(r)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/auth", nil))
	if rr.Code != http.StatusOK || token == "" {
		t.Fatalf("GET status = %d, token %q", rr.Code, token)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/logout", nil))
	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token status = %d, want 403", rr.Code)
	}
}

package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/communityhub/internal/app/system/ratelimit"
)

func TestLimiterAllow(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Fatal("request over the limit should be blocked")
	}
	if !l.Allow("other") {
		t.Fatal("a different key should not share the window")
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second request inside the window should be blocked")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("key") {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestLimiterReset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("second request should be blocked")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Fatal("request after reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr", "10.0.0.1:1234", "", "", "10.0.0.1"},
		{"remote addr no port", "10.0.0.1", "", "", "10.0.0.1"},
		{"x-forwarded-for", "10.0.0.1:1234", "203.0.113.9", "", "203.0.113.9"},
		{"x-forwarded-for chain", "10.0.0.1:1234", "203.0.113.9, 10.0.0.2", "", "203.0.113.9"},
		{"x-real-ip", "10.0.0.1:1234", "", "203.0.113.7", "203.0.113.7"},
		{"xff wins over xri", "10.0.0.1:1234", "203.0.113.9", "203.0.113.7", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiterBlocksLogin(t *testing.T) {
	ll := ratelimit.NewLoginLimiter()

	// Five attempts for one account are allowed, the sixth is not. Each
	// request uses a distinct IP so only the per-login limit is in play.
	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("POST", "/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113."+string(rune('1'+i)))
		if ok, _ := ll.Check(r, "user@example.com"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	ok, reason := ll.Check(r, "USER@example.com") // case-insensitive key
	if ok {
		t.Fatal("sixth attempt for the account should be blocked")
	}
	if reason == "" {
		t.Error("blocked attempt should carry a reason")
	}

	ll.ResetLogin("user@example.com")
	r = httptest.NewRequest("POST", "/auth/login", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.10")
	if ok, _ := ll.Check(r, "user@example.com"); !ok {
		t.Fatal("attempt after reset should be allowed")
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/olegiv/sitekit/internal/cache"
)

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, errors.New("redis down")
}

func (failingCounter) Close() error { return nil }

func TestRateLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	counter := cache.NewMemoryCounter(cache.MemoryCounterOptions{Now: clock})
	defer func() { _ = counter.Close() }()

	handler := RateLimit(counter, RateLimitConfig{Max: 2, Window: time.Minute, Now: clock})(http.HandlerFunc(okHandler))

	request := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
		req.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i, wantRemaining := range []string{"1", "0"} {
		rr := request("10.0.0.1")
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want 200", i+1, rr.Code)
		}
		if got := rr.Header().Get("X-RateLimit-Remaining"); got != wantRemaining {
			t.Errorf("request %d: Remaining = %q, want %q", i+1, got, wantRemaining)
		}
		if got := rr.Header().Get("X-RateLimit-Limit"); got != "2" {
			t.Errorf("Limit = %q, want 2", got)
		}
	}

	rr := request("10.0.0.1")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("Status = %d, want 429", rr.Code)
	}
	if body := decodeAPIError(t, rr); body.Code != CodeRateLimited {
		t.Errorf("Code = %q, want %q", body.Code, CodeRateLimited)
	}
	if got := rr.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	wantReset := strconv.FormatInt(now.Add(time.Minute).Unix(), 10)
	if got := rr.Header().Get("X-RateLimit-Reset"); got != wantReset {
		t.Errorf("Reset = %q, want %q", got, wantReset)
	}

	if rr := request("10.0.0.2"); rr.Code != http.StatusOK {
		t.Errorf("other client Status = %d, want 200", rr.Code)
	}

	now = now.Add(time.Minute + time.Second)
	if rr := request("10.0.0.1"); rr.Code != http.StatusOK {
		t.Errorf("after window Status = %d, want 200", rr.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	handler := RateLimit(failingCounter{}, RateLimitConfig{Max: 1, Window: time.Minute})(http.HandlerFunc(okHandler))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want 200", i+1, rr.Code)
		}
		if rr.Header().Get("X-RateLimit-Limit") != "" {
			t.Error("headers should not be set when the counter fails")
		}
	}
}

func TestRateLimitUsesForwardedIP(t *testing.T) {
	counter := cache.NewMemoryCounter(cache.MemoryCounterOptions{})
	defer func() { _ = counter.Close() }()
	handler := RateLimit(counter, RateLimitConfig{Max: 1, Window: time.Minute})(http.HandlerFunc(okHandler))

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("1.1.1.1"); code != 200 {
		t.Errorf("first = %d", code)
	}
	if code := send("2.2.2.2, 1.1.1.1"); code != 200 {
		t.Errorf("different client = %d", code)
	}
	if code := send("1.1.1.1, 9.9.9.9"); code != 429 {
		t.Errorf("repeat client = %d, want 429", code)
	}
}

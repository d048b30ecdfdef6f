// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	handler := CORS(DefaultCORSConfig([]string{"http://localhost:3000", " https://admin.example.com/ "}))(http.HandlerFunc(okHandler))

	tests := []struct {
		name       string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantOrigin string
	}{
		{name: "no origin", method: "GET", wantStatus: 200},
		{name: "allowed origin", method: "GET", origin: "http://localhost:3000", wantStatus: 200, wantOrigin: "http://localhost:3000"},
		{name: "trimmed config origin", method: "GET", origin: "https://admin.example.com", wantStatus: 200, wantOrigin: "https://admin.example.com"},
		{name: "disallowed simple request", method: "GET", origin: "https://evil.example", wantStatus: 200},
		{name: "allowed preflight", method: "OPTIONS", origin: "http://localhost:3000", preflight: true, wantStatus: 204, wantOrigin: "http://localhost:3000"},
		{name: "disallowed preflight", method: "OPTIONS", origin: "https://evil.example", preflight: true, wantStatus: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/blogs", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.preflight && tt.wantStatus == 204 {
				if rr.Header().Get("Access-Control-Allow-Methods") == "" {
					t.Error("missing Allow-Methods on preflight")
				}
				if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
					t.Error("missing Allow-Credentials on preflight")
				}
			}
		})
	}
}

func TestCORSWildcard(t *testing.T) {
	handler := CORS(DefaultCORSConfig([]string{"*"}))(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Allow-Credentials = %q, want empty for wildcard", got)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	failing := func(context.Context) error { return errors.New("connection refused") }
	healthy := func(context.Context) error { return nil }

	cases := []struct {
		name       string
		source     string
		ping       Pinger
		path       string
		wantCode   int
		wantStatus string
		wantSource string
	}{
		{name: "healthz ok", source: "yfinance", path: "/healthz", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "readyz without store", source: "yfinance", ping: nil, path: "/readyz", wantCode: http.StatusOK, wantStatus: "ready", wantSource: "yfinance"},
		{name: "readyz chart without store", source: "chart", ping: nil, path: "/readyz", wantCode: http.StatusOK, wantStatus: "ready", wantSource: "chart"},
		{name: "readyz store ok", source: "postgres", ping: healthy, path: "/readyz", wantCode: http.StatusOK, wantStatus: "ready", wantSource: "postgres"},
		{name: "readyz store down", source: "postgres", ping: failing, path: "/readyz", wantCode: http.StatusServiceUnavailable, wantStatus: "degraded", wantSource: "postgres"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.source, tc.ping).Register(r)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.wantCode {
				t.Fatalf("want %d got %d", tc.wantCode, w.Code)
			}
			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Status != tc.wantStatus || body.Source != tc.wantSource {
				t.Fatalf("unexpected body: %+v", body)
			}
			if tc.wantCode == http.StatusServiceUnavailable && body.Error == "" {
				t.Fatalf("degraded body must carry an error")
			}
		})
	}
}

func TestHealthHandler_ReadyPingHasDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var deadline time.Time
	ping := func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}

	r := gin.New()
	NewHealthHandler("postgres", ping).Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if deadline.IsZero() || time.Until(deadline) > DefaultReadyTimeout {
		t.Fatalf("ping context deadline not bounded: %v", deadline)
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }

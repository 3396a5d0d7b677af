package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/localarthub-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test"}}
}

func TestHealthLive(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthLive(testConfig()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get(envHeader) != "test" {
		t.Fatalf("missing env header")
	}
}

func TestHealthReady(t *testing.T) {
	cases := []struct {
		name     string
		backends map[string]Pinger
		want     int
	}{
		{name: "no backends", backends: nil, want: http.StatusOK},
		{name: "healthy", backends: map[string]Pinger{"redis": stubPinger{}, "db": stubPinger{}}, want: http.StatusOK},
		{name: "nil backend skipped", backends: map[string]Pinger{"db": nil}, want: http.StatusOK},
		{name: "redis down", backends: map[string]Pinger{"redis": stubPinger{err: errors.New("dial tcp")}, "db": stubPinger{}}, want: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			HealthReady(testConfig(), nil, tc.backends).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if resp.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.Code)
			}
		})
	}
}

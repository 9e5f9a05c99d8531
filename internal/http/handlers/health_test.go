package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubPinger struct {
	enabled bool
	err     error
}

func (p stubPinger) Enabled() bool                  { return p.enabled }
func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthCheckReportsGraphStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		pinger GraphPinger
		want   string
	}{
		{name: "no client", pinger: nil, want: "disabled"},
		{name: "disabled", pinger: stubPinger{}, want: "disabled"},
		{name: "up", pinger: stubPinger{enabled: true}, want: "up"},
		{name: "down", pinger: stubPinger{enabled: true, err: errors.New("refused")}, want: "down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthcheck", NewHealthHandler("astrograph", "test", tc.pinger).HealthCheck)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != "healthy" || resp.Service != "astrograph" || resp.Graph != tc.want {
				t.Fatalf("unexpected health response: %+v", resp)
			}
		})
	}
}

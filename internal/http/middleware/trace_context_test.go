package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/astrograph-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(AttachTraceContext())
	r.POST("/webhook", func(c *gin.Context) {
		seen = ctxutil.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen != "req-123" {
		t.Fatalf("unexpected request id in context: got=%q want=%q", seen, "req-123")
	}
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("unexpected echoed request id: got=%q", got)
	}
}

func TestAttachTraceContextGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id")
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatal("expected trace id")
	}
}

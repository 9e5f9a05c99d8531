package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/astrograph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/astrograph-backend/internal/http/middleware"
	"github.com/yungbote/astrograph-backend/internal/observability"
	"github.com/yungbote/astrograph-backend/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName string
	CORSOrigins []string
	Log         *logger.Logger
	Metrics     *observability.Metrics

	WebhookHandler *httpH.WebhookHandler
	ChartHandler   *httpH.ChartHandler
	HealthHandler  *httpH.HealthHandler
}

// NewRouter builds the engine first and registers routes onto it; handlers never
// reach for a global app.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	RegisterRoutes(r, cfg)
	return r
}

func RegisterRoutes(r gin.IRouter, cfg RouterConfig) {
	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Ingest
	if cfg.WebhookHandler != nil {
		r.POST("/webhook", cfg.WebhookHandler.Receive)
	}
	if cfg.ChartHandler != nil {
		r.POST("/input_transit", cfg.ChartHandler.InputTransit)
	}
}

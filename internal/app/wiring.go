package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/astrograph-backend/internal/data/graph"
	httpx "github.com/yungbote/astrograph-backend/internal/http"
	httpH "github.com/yungbote/astrograph-backend/internal/http/handlers"
	"github.com/yungbote/astrograph-backend/internal/observability"
	"github.com/yungbote/astrograph-backend/internal/platform/logger"
	"github.com/yungbote/astrograph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/astrograph-backend/internal/services"
)

type Services struct {
	ChartIngest services.ChartIngestService
	Webhook     services.WebhookReceiver
}

type Handlers struct {
	Chart   *httpH.ChartHandler
	Webhook *httpH.WebhookHandler
	Health  *httpH.HealthHandler
}

func wireServices(log *logger.Logger, writer services.ChartWriter, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		ChartIngest: services.NewChartIngestService(log, writer, metrics),
		Webhook:     services.NewNoopWebhookReceiver(log, metrics),
	}
}

func wireHandlers(cfg Config, svc Services, client *neo4jdb.Client) Handlers {
	return Handlers{
		Chart:   httpH.NewChartHandler(svc.ChartIngest, cfg.MaxBodyBytes),
		Webhook: httpH.NewWebhookHandler(svc.Webhook, cfg.MaxBodyBytes),
		Health:  httpH.NewHealthHandler(serviceName, cfg.Version, client),
	}
}

func wireRouter(cfg Config, log *logger.Logger, metrics *observability.Metrics, h Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return httpx.NewRouter(httpx.RouterConfig{
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		Log:            log,
		Metrics:        metrics,
		WebhookHandler: h.Webhook,
		ChartHandler:   h.Chart,
		HealthHandler:  h.Health,
	})
}

var _ services.ChartWriter = (*graph.ChartGraph)(nil)

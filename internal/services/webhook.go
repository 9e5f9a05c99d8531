package services

import (
	"context"

	"github.com/yungbote/astrograph-backend/internal/observability"
	"github.com/yungbote/astrograph-backend/internal/platform/ctxutil"
	"github.com/yungbote/astrograph-backend/internal/platform/logger"
)

// WebhookReceiver handles the generic /webhook payloads.
type WebhookReceiver interface {
	Handle(ctx context.Context, payload any) map[string]any
}

// noopWebhookReceiver accepts anything and stores nothing.
type noopWebhookReceiver struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

func NewNoopWebhookReceiver(log *logger.Logger, metrics *observability.Metrics) WebhookReceiver {
	return &noopWebhookReceiver{
		log:     log.With("service", "WebhookReceiver"),
		metrics: metrics,
	}
}

func (r *noopWebhookReceiver) Handle(ctx context.Context, payload any) map[string]any {
	r.metrics.IncWebhookReceived()
	r.log.Debug("webhook received", "request_id", ctxutil.RequestID(ctx), "kind", payloadKind(payload))
	return map[string]any{"status": "success"}
}

func payloadKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "number"
	}
}

package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/astrograph-backend/internal/http/response"
)

type GraphPinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Graph     string    `json:"graph"`
}

type HealthHandler struct {
	serviceName string
	version     string
	graph       GraphPinger
}

func NewHealthHandler(serviceName, version string, graph GraphPinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, graph: graph}
}

// HealthCheck always answers 200; graph reachability is reported, not enforced.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	graphStatus := "disabled"
	if h.graph != nil && h.graph.Enabled() {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := h.graph.Ping(pingCtx); err != nil {
			graphStatus = "down"
		} else {
			graphStatus = "up"
		}
	}
	response.RespondOK(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Graph:     graphStatus,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/astrograph-backend/internal/domain"
	"github.com/yungbote/astrograph-backend/internal/http/response"
	"github.com/yungbote/astrograph-backend/internal/platform/apierr"
	"github.com/yungbote/astrograph-backend/internal/services"
)

// Pointers let "required" tell a missing field from a zero value such as degree 0.
type positionRequest struct {
	Planet *string  `json:"planet" binding:"required"`
	Sign   *string  `json:"sign" binding:"required"`
	Degree *float64 `json:"degree" binding:"required"`
}

type aspectRequest struct {
	Planet1 *string  `json:"planet1" binding:"required"`
	Planet2 *string  `json:"planet2" binding:"required"`
	Aspect  *string  `json:"aspect" binding:"required"`
	Orb     *float64 `json:"orb" binding:"required"`
}

type inputTransitRequest struct {
	ChartID   *types.ChartID    `json:"chart_id" binding:"required"`
	Positions []positionRequest `json:"positions" binding:"required,dive"`
	Aspects   []aspectRequest   `json:"aspects" binding:"required,dive"`
}

func (r *inputTransitRequest) toChart() *types.Chart {
	chart := &types.Chart{
		ID:        *r.ChartID,
		Positions: make([]types.Position, 0, len(r.Positions)),
		Aspects:   make([]types.Aspect, 0, len(r.Aspects)),
	}
	for _, p := range r.Positions {
		chart.Positions = append(chart.Positions, types.Position{Planet: *p.Planet, Sign: *p.Sign, Degree: *p.Degree})
	}
	for _, a := range r.Aspects {
		chart.Aspects = append(chart.Aspects, types.Aspect{Planet1: *a.Planet1, Planet2: *a.Planet2, Type: *a.Aspect, Orb: *a.Orb})
	}
	return chart
}

type ChartHandler struct {
	charts       services.ChartIngestService
	maxBodyBytes int64
}

func NewChartHandler(charts services.ChartIngestService, maxBodyBytes int64) *ChartHandler {
	useJSONFieldNames()
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &ChartHandler{charts: charts, maxBodyBytes: maxBodyBytes}
}

// InputTransit persists one chart. Every failure, including a bad payload, is a 500
// with the error envelope; the payload is fully validated before any write.
func (h *ChartHandler) InputTransit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req inputTransitRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, apierr.Internal("invalid_payload", describeBindError(err)))
		return
	}
	if _, err := h.charts.Ingest(c.Request.Context(), req.toChart()); err != nil {
		fail(c, apierr.Internal("chart_ingest_failed", err))
		return
	}
	response.RespondSuccess(c)
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	response.RespondError(c, err)
}

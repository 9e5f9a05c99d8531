package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/astrograph-backend/internal/data/graph"
	types "github.com/yungbote/astrograph-backend/internal/domain"
	"github.com/yungbote/astrograph-backend/internal/observability"
	"github.com/yungbote/astrograph-backend/internal/platform/ctxutil"
	"github.com/yungbote/astrograph-backend/internal/platform/logger"
)

// ChartWriter persists one chart atomically.
type ChartWriter interface {
	SaveChart(ctx context.Context, chart *types.Chart) (graph.WriteSummary, error)
}

type IngestResult struct {
	ChartID              string
	IngestID             string
	Positions            int
	Aspects              int
	RelationshipsCreated int
}

type ChartIngestService interface {
	Ingest(ctx context.Context, chart *types.Chart) (*IngestResult, error)
}

type chartIngestService struct {
	log     *logger.Logger
	writer  ChartWriter
	metrics *observability.Metrics
}

func NewChartIngestService(log *logger.Logger, writer ChartWriter, metrics *observability.Metrics) ChartIngestService {
	return &chartIngestService{
		log:     log.With("service", "ChartIngestService"),
		writer:  writer,
		metrics: metrics,
	}
}

func (s *chartIngestService) Ingest(ctx context.Context, chart *types.Chart) (*IngestResult, error) {
	if chart == nil {
		return nil, fmt.Errorf("ingest chart: nil chart")
	}
	start := time.Now()
	sum, err := s.writer.SaveChart(ctx, chart)
	if err != nil {
		s.metrics.ObserveChartIngest("error", 0, 0, 0, time.Since(start))
		s.log.Error("chart ingest failed",
			"chart_id", chart.ID.String(),
			"request_id", ctxutil.RequestID(ctx),
			"statements", sum.Statements,
			"error", err,
		)
		return nil, fmt.Errorf("ingest chart %s: %w", chart.ID.String(), err)
	}
	s.metrics.ObserveChartIngest("success", len(chart.Positions), len(chart.Aspects), sum.RelationshipsCreated, time.Since(start))

	if unmatched := len(chart.Aspects) - sum.RelationshipsCreated; unmatched > 0 {
		s.log.Debug("aspects matched no endpoint pair",
			"chart_id", chart.ID.String(),
			"unmatched", unmatched,
		)
	}
	s.log.Info("chart ingested",
		"chart_id", chart.ID.String(),
		"ingest_id", sum.IngestID,
		"request_id", ctxutil.RequestID(ctx),
		"positions", len(chart.Positions),
		"aspects", len(chart.Aspects),
		"edges", sum.RelationshipsCreated,
	)
	return &IngestResult{
		ChartID:              chart.ID.String(),
		IngestID:             sum.IngestID,
		Positions:            len(chart.Positions),
		Aspects:              len(chart.Aspects),
		RelationshipsCreated: sum.RelationshipsCreated,
	}, nil
}

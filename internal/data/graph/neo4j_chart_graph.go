package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	types "github.com/yungbote/astrograph-backend/internal/domain"
	"github.com/yungbote/astrograph-backend/internal/platform/logger"
	"github.com/yungbote/astrograph-backend/internal/platform/neo4jdb"
)

var ErrGraphUnavailable = errors.New("graph store not configured")

const (
	createPositionCypher = `
CREATE (p:Position {chart_id: $chart_id, ingest_id: $ingest_id, planet: $planet, sign: $sign, degree: $degree})
`
	// Endpoints are scoped to chart and submission; a missing endpoint matches nothing.
	createAspectCypher = `
MATCH (p1:Position {chart_id: $chart_id, ingest_id: $ingest_id, planet: $planet1}),
      (p2:Position {chart_id: $chart_id, ingest_id: $ingest_id, planet: $planet2})
CREATE (p1)-[:ASPECT {chart_id: $chart_id, ingest_id: $ingest_id, type: $aspect, orb: $orb}]->(p2)
`
	positionIndexCypher = `CREATE INDEX position_chart_planet_idx IF NOT EXISTS FOR (p:Position) ON (p.chart_id, p.planet)`
)

// WriteSummary reports what one SaveChart call issued and what the store created.
type WriteSummary struct {
	IngestID             string
	Statements           int
	NodesCreated         int
	RelationshipsCreated int
}

type writeCounts struct {
	nodes         int
	relationships int
}

type statementRunner interface {
	run(ctx context.Context, cypher string, params map[string]any) (writeCounts, error)
}

type explicitTxRunner struct {
	tx neo4j.ExplicitTransaction
}

func (r explicitTxRunner) run(ctx context.Context, cypher string, params map[string]any) (writeCounts, error) {
	res, err := r.tx.Run(ctx, cypher, params)
	if err != nil {
		return writeCounts{}, err
	}
	summary, err := res.Consume(ctx)
	if err != nil {
		return writeCounts{}, err
	}
	counters := summary.Counters()
	return writeCounts{
		nodes:         counters.NodesCreated(),
		relationships: counters.RelationshipsCreated(),
	}, nil
}

// writeChart issues every position before any aspect, stopping at the first failure.
func writeChart(ctx context.Context, r statementRunner, ingestID string, chart *types.Chart) (WriteSummary, error) {
	sum := WriteSummary{IngestID: ingestID}
	chartID := chart.ID.Value()

	for i, p := range chart.Positions {
		c, err := r.run(ctx, createPositionCypher, map[string]any{
			"chart_id":  chartID,
			"ingest_id": ingestID,
			"planet":    p.Planet,
			"sign":      p.Sign,
			"degree":    p.Degree,
		})
		if err != nil {
			return sum, fmt.Errorf("create position %d (%s): %w", i, p.Planet, err)
		}
		sum.Statements++
		sum.NodesCreated += c.nodes
	}

	for i, a := range chart.Aspects {
		c, err := r.run(ctx, createAspectCypher, map[string]any{
			"chart_id":  chartID,
			"ingest_id": ingestID,
			"planet1":   a.Planet1,
			"planet2":   a.Planet2,
			"aspect":    a.Type,
			"orb":       a.Orb,
		})
		if err != nil {
			return sum, fmt.Errorf("create aspect %d (%s-%s): %w", i, a.Planet1, a.Planet2, err)
		}
		sum.Statements++
		sum.RelationshipsCreated += c.relationships
	}
	return sum, nil
}

// ChartGraph stores charts as :Position nodes joined by :ASPECT relationships.
type ChartGraph struct {
	client      *neo4jdb.Client
	log         *logger.Logger
	tracer      trace.Tracer
	newIngestID func() string
}

func NewChartGraph(client *neo4jdb.Client, log *logger.Logger) *ChartGraph {
	if log == nil {
		log = logger.NewNop()
	}
	return &ChartGraph{
		client:      client,
		log:         log.With("repo", "ChartGraph"),
		tracer:      otel.Tracer("astrograph/graph"),
		newIngestID: uuid.NewString,
	}
}

// EnsureSchema creates the lookup index used by aspect matching. Best-effort.
func (g *ChartGraph) EnsureSchema(ctx context.Context) {
	if !g.client.Enabled() {
		return
	}
	session := g.client.WriteSession(ctx)
	defer session.Close(ctx)

	res, err := session.Run(ctx, positionIndexCypher, nil)
	if err != nil {
		g.log.Warn("neo4j schema init failed (continuing)", "error", err)
		return
	}
	if _, err := res.Consume(ctx); err != nil {
		g.log.Warn("neo4j schema init failed (continuing)", "error", err)
	}
}

// SaveChart writes the chart in one explicit transaction. Nothing is retried; any
// statement failure rolls the whole chart back.
func (g *ChartGraph) SaveChart(ctx context.Context, chart *types.Chart) (sum WriteSummary, err error) {
	if chart == nil {
		return WriteSummary{}, fmt.Errorf("save chart: nil chart")
	}
	if !g.client.Enabled() {
		return WriteSummary{}, ErrGraphUnavailable
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ingestID := g.newIngestID()
	ctx, span := g.tracer.Start(ctx, "graph.SaveChart", trace.WithAttributes(
		attribute.String("chart.id", chart.ID.String()),
		attribute.String("chart.ingest_id", ingestID),
		attribute.Int("chart.positions", len(chart.Positions)),
		attribute.Int("chart.aspects", len(chart.Aspects)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session := g.client.WriteSession(ctx)
	defer func() {
		if cerr := session.Close(ctx); cerr != nil {
			g.log.Warn("neo4j session close failed", "error", cerr)
		}
	}()

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return WriteSummary{IngestID: ingestID}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Close(ctx)

	sum, err = writeChart(ctx, explicitTxRunner{tx: tx}, ingestID, chart)
	if err != nil {
		if rerr := tx.Rollback(ctx); rerr != nil {
			g.log.Debug("neo4j rollback after failed write", "error", rerr)
		}
		return sum, err
	}
	if err = tx.Commit(ctx); err != nil {
		return sum, fmt.Errorf("commit chart: %w", err)
	}

	g.log.Debug("chart written",
		"chart_id", chart.ID.String(),
		"ingest_id", ingestID,
		"nodes_created", sum.NodesCreated,
		"relationships_created", sum.RelationshipsCreated,
	)
	return sum, nil
}

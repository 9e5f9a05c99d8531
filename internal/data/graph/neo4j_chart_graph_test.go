package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/astrograph-backend/internal/domain"
)

type fakeNode struct {
	props map[string]any
}

type fakeEdge struct {
	from, to *fakeNode
	props    map[string]any
}

// memGraph follows the CREATE / MATCH...CREATE semantics of the chart statements.
type memGraph struct {
	nodes  []*fakeNode
	edges  []fakeEdge
	issued []string
	failOn int // 1-based statement index to fail at; 0 disables
}

func (g *memGraph) run(_ context.Context, cypher string, params map[string]any) (writeCounts, error) {
	g.issued = append(g.issued, cypher)
	if g.failOn > 0 && len(g.issued) == g.failOn {
		return writeCounts{}, errors.New("store unavailable")
	}
	switch cypher {
	case createPositionCypher:
		props := make(map[string]any, len(params))
		for k, v := range params {
			props[k] = v
		}
		g.nodes = append(g.nodes, &fakeNode{props: props})
		return writeCounts{nodes: 1}, nil
	case createAspectCypher:
		from := g.match(params["chart_id"], params["ingest_id"], params["planet1"])
		to := g.match(params["chart_id"], params["ingest_id"], params["planet2"])
		created := 0
		for _, a := range from {
			for _, b := range to {
				g.edges = append(g.edges, fakeEdge{from: a, to: b, props: map[string]any{
					"chart_id":  params["chart_id"],
					"ingest_id": params["ingest_id"],
					"type":      params["aspect"],
					"orb":       params["orb"],
				}})
				created++
			}
		}
		return writeCounts{relationships: created}, nil
	default:
		return writeCounts{}, errors.New("unexpected statement")
	}
}

func (g *memGraph) match(chartID, ingestID, planet any) []*fakeNode {
	var out []*fakeNode
	for _, n := range g.nodes {
		if n.props["chart_id"] == chartID && n.props["ingest_id"] == ingestID && n.props["planet"] == planet {
			out = append(out, n)
		}
	}
	return out
}

func sunMoonChart(planet2 string) *types.Chart {
	return &types.Chart{
		ID: types.StringChartID("c1"),
		Positions: []types.Position{
			{Planet: "Sun", Sign: "Leo", Degree: 15.2},
			{Planet: "Moon", Sign: "Pisces", Degree: 3.1},
		},
		Aspects: []types.Aspect{
			{Planet1: "Sun", Planet2: planet2, Type: "square", Orb: 2.5},
		},
	}
}

func TestWriteChartSunMoonSquare(t *testing.T) {
	g := &memGraph{}

	sum, err := writeChart(context.Background(), g, "ing-1", sunMoonChart("Moon"))
	require.NoError(t, err)

	assert.Equal(t, WriteSummary{IngestID: "ing-1", Statements: 3, NodesCreated: 2, RelationshipsCreated: 1}, sum)
	require.Len(t, g.nodes, 2)
	for _, n := range g.nodes {
		assert.Equal(t, "c1", n.props["chart_id"])
	}
	require.Len(t, g.edges, 1)
	edge := g.edges[0]
	assert.Equal(t, "Sun", edge.from.props["planet"])
	assert.Equal(t, "Moon", edge.to.props["planet"])
	assert.Equal(t, "square", edge.props["type"])
	assert.Equal(t, 2.5, edge.props["orb"])
	assert.Equal(t, "c1", edge.props["chart_id"])
}

func TestWriteChartMissingEndpointIsNoop(t *testing.T) {
	g := &memGraph{}

	sum, err := writeChart(context.Background(), g, "ing-1", sunMoonChart("Mars"))
	require.NoError(t, err)

	assert.Equal(t, 2, sum.NodesCreated)
	assert.Equal(t, 0, sum.RelationshipsCreated)
	assert.Equal(t, 3, sum.Statements)
	assert.Empty(t, g.edges)
}

func TestWriteChartIssuesPositionsBeforeAspects(t *testing.T) {
	chart := &types.Chart{
		ID: types.IntChartID(9),
		Positions: []types.Position{
			{Planet: "Sun"}, {Planet: "Moon"}, {Planet: "Venus"},
		},
		Aspects: []types.Aspect{
			{Planet1: "Sun", Planet2: "Moon", Type: "trine"},
			{Planet1: "Venus", Planet2: "Sun", Type: "sextile"},
		},
	}
	g := &memGraph{}

	_, err := writeChart(context.Background(), g, "ing-1", chart)
	require.NoError(t, err)

	want := []string{
		createPositionCypher, createPositionCypher, createPositionCypher,
		createAspectCypher, createAspectCypher,
	}
	assert.Equal(t, want, g.issued)
	assert.Len(t, g.edges, 2)
}

func TestWriteChartResubmissionIsIndependent(t *testing.T) {
	g := &memGraph{}
	chart := sunMoonChart("Moon")

	_, err := writeChart(context.Background(), g, "ing-1", chart)
	require.NoError(t, err)
	second, err := writeChart(context.Background(), g, "ing-2", chart)
	require.NoError(t, err)

	assert.Equal(t, 1, second.RelationshipsCreated)
	assert.Len(t, g.nodes, 4)
	assert.Len(t, g.edges, 2)
	for _, e := range g.edges {
		assert.Equal(t, e.from.props["ingest_id"], e.to.props["ingest_id"])
	}
}

func TestWriteChartEdgesNeverCrossCharts(t *testing.T) {
	g := &memGraph{}
	other := &types.Chart{
		ID:        types.StringChartID("c2"),
		Positions: []types.Position{{Planet: "Moon", Sign: "Aries"}},
	}
	_, err := writeChart(context.Background(), g, "shared", other)
	require.NoError(t, err)

	chart := &types.Chart{
		ID:        types.StringChartID("c1"),
		Positions: []types.Position{{Planet: "Sun", Sign: "Leo"}},
		Aspects:   []types.Aspect{{Planet1: "Sun", Planet2: "Moon", Type: "square"}},
	}
	sum, err := writeChart(context.Background(), g, "shared", chart)
	require.NoError(t, err)

	assert.Equal(t, 0, sum.RelationshipsCreated)
	assert.Empty(t, g.edges)
}

func TestWriteChartStopsAtFirstFailure(t *testing.T) {
	g := &memGraph{failOn: 2}

	sum, err := writeChart(context.Background(), g, "ing-1", sunMoonChart("Moon"))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "create position 1 (Moon)")
	assert.Len(t, g.issued, 2)
	assert.Equal(t, 1, sum.Statements)
}

func TestWriteChartEmptyListsIssueNothing(t *testing.T) {
	g := &memGraph{}

	sum, err := writeChart(context.Background(), g, "ing-1", &types.Chart{ID: types.StringChartID("c1")})
	require.NoError(t, err)

	assert.Zero(t, sum.Statements)
	assert.Empty(t, g.issued)
}

func TestSaveChartWithoutClient(t *testing.T) {
	g := NewChartGraph(nil, nil)

	_, err := g.SaveChart(context.Background(), sunMoonChart("Moon"))
	assert.ErrorIs(t, err, ErrGraphUnavailable)

	_, err = g.SaveChart(context.Background(), nil)
	assert.Error(t, err)

	g.EnsureSchema(context.Background())
}

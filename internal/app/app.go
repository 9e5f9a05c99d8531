package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/astrograph-backend/internal/data/graph"
	httpx "github.com/yungbote/astrograph-backend/internal/http"
	"github.com/yungbote/astrograph-backend/internal/observability"
	"github.com/yungbote/astrograph-backend/internal/platform/logger"
	"github.com/yungbote/astrograph-backend/internal/platform/neo4jdb"
)

type App struct {
	Log     *logger.Logger
	Cfg     Config
	Neo4j   *neo4jdb.Client
	Graph   *graph.ChartGraph
	Metrics *observability.Metrics
	Router  *gin.Engine

	server       *httpx.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	loaded, envErr := LoadEnvFile()
	cfg := LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if envErr != nil {
		log.Warn("Env file not loaded", "error", envErr)
	} else if loaded {
		log.Debug("Loaded .env")
	}
	if err := cfg.Validate(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting",
		"service", serviceName,
		"env", cfg.Environment,
		"version", cfg.Version,
		"graph_enabled", cfg.Neo4j.URI != "",
	)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	client, err := neo4jdb.New(ctx, cfg.Neo4j, log)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init neo4j: %w", err)
	}

	chartGraph := graph.NewChartGraph(client, log)
	if cfg.SchemaInit && client.Enabled() {
		chartGraph.EnsureSchema(ctx)
	}

	serviceset := wireServices(log, chartGraph, metrics)
	handlerset := wireHandlers(cfg, serviceset, client)
	router := wireRouter(cfg, log, metrics, handlerset)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Neo4j:        client,
		Graph:        chartGraph,
		Metrics:      metrics,
		Router:       router,
		server:       httpx.NewServerWithEngine(router),
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil || a.server == nil {
		return errors.New("app not initialized")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", a.Cfg.Addr())
		return a.server.Run(a.Cfg.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down server", "timeout", a.Cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if err := a.Neo4j.Close(ctx); err != nil && a.Log != nil {
		a.Log.Warn("Neo4j close failed", "error", err)
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

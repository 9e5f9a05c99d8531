package neo4jdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/astrograph-backend/internal/platform/logger"
)

type Config struct {
	URI         string
	User        string
	Password    string
	Database    string
	Timeout     time.Duration
	MaxPoolSize int
}

// Validate accepts an empty URI (graph disabled) or one of the bolt/neo4j schemes.
func (c Config) Validate() error {
	uri := strings.TrimSpace(c.URI)
	if uri == "" {
		return nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("neo4jdb: parse uri: %w", err)
	}
	switch u.Scheme {
	case "bolt", "bolt+s", "bolt+ssc", "neo4j", "neo4j+s", "neo4j+ssc":
	default:
		return fmt.Errorf("neo4jdb: unsupported uri scheme %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("neo4jdb: timeout must be positive")
	}
	if c.MaxPoolSize <= 0 {
		return fmt.Errorf("neo4jdb: max pool size must be positive")
	}
	return nil
}

type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	timeout  time.Duration
	log      *logger.Logger
}

// New builds the process-wide driver. It returns (nil, nil) when no URI is configured.
// A failed connectivity check is logged, not fatal: the driver reconnects lazily and
// per-request failures surface at the HTTP boundary.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	if strings.TrimSpace(cfg.URI) == "" {
		log.Warn("NEO4J_URI not set; chart persistence disabled")
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = cfg.MaxPoolSize
		c.SocketConnectTimeout = cfg.Timeout
		c.MaxTransactionRetryTime = 0
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	client := &Client{
		Driver:   driver,
		Database: cfg.Database,
		timeout:  cfg.Timeout,
		log:      log.With("client", "Neo4jDB"),
	}
	if err := client.Ping(ctx); err != nil {
		client.log.Warn("neo4j connectivity check failed (continuing)", "uri", cfg.URI, "error", err)
	} else {
		client.log.Info("neo4j connected", "uri", cfg.URI, "database", cfg.Database)
	}
	return client, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.Driver != nil
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("neo4jdb: client not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Driver.VerifyConnectivity(ctx)
}

// WriteSession opens a write session against the configured database. Callers must Close it.
func (c *Client) WriteSession(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
}

func (c *Client) Close(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}

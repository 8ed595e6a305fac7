package graphstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

// Config holds the connection configuration for a Graph, the Go
// equivalent of GraphForRAG's constructor arguments in graphforrag.py.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Graph is the top-level façade over the knowledge graph store: schema
// management, node manager operations, and the deletion cascade all hang
// off it. It corresponds to spec.md §6's external interface.
type Graph struct {
	driver   neo4j.DriverWithContext
	database string
	embedder llmfacade.EmbedderClient
	log      *slog.Logger

	usage llmfacade.Usage
}

// NewGraph opens a driver connection, verifies connectivity, and returns a
// ready-to-use Graph. Grounded on internal/importer/neo4j.go's
// NewNeo4jImporter and graphforrag.py's GraphForRAG.__init__.
func NewGraph(ctx context.Context, cfg Config, embedder llmfacade.EmbedderClient, log *slog.Logger) (*Graph, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4j uri is required: %w", ErrConfig)
	}
	database := cfg.Database
	if database == "" {
		database = "neo4j"
	}
	if log == nil {
		log = slog.Default()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w: %w", ErrConfig, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("connect to neo4j: %w: %w", ErrConfig, err)
	}

	g := &Graph{
		driver:   driver,
		database: database,
		embedder: embedder,
		log:      log.With("component", "graphstore"),
	}
	if err := validateCatalog(); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("catalog is invalid: %w: %w", ErrConfig, err)
	}
	return g, nil
}

// Close releases the underlying driver.
func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// Usage returns the Graph's usage field. No operation in this package adds
// to it, so it always reports zero usage.
func (g *Graph) Usage() llmfacade.Usage {
	return g.usage
}

func (g *Graph) session(ctx context.Context) neo4j.SessionWithContext {
	return g.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: g.database})
}

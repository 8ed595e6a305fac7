package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dbczarnota/graphforrag-go/internal/extraction"
	"github.com/dbczarnota/graphforrag-go/internal/graphstore"
	"github.com/dbczarnota/graphforrag-go/internal/ingest"
	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
	"github.com/dbczarnota/graphforrag-go/internal/resolver"
	"github.com/dbczarnota/graphforrag-go/internal/search"
)

// connectionConfig builds a graphstore.Config from environment variables,
// the same GRAPHFORRAG_NEO4J_* / NEO4J_* convention
// cmd/neo4j/main.go reads flags/env for.
func connectionConfig() graphstore.Config {
	return graphstore.Config{
		URI:      firstNonEmpty(os.Getenv("GRAPHFORRAG_NEO4J_URI"), os.Getenv("NEO4J_URI")),
		Username: firstNonEmpty(os.Getenv("GRAPHFORRAG_NEO4J_USERNAME"), os.Getenv("NEO4J_USERNAME"), "neo4j"),
		Password: firstNonEmpty(os.Getenv("GRAPHFORRAG_NEO4J_PASSWORD"), os.Getenv("NEO4J_PASSWORD")),
		Database: firstNonEmpty(os.Getenv("GRAPHFORRAG_NEO4J_DATABASE"), os.Getenv("NEO4J_DATABASE"), "neo4j"),
	}
}

// fallbackModelNames reads the ordered fallback chain from
// GRAPHFORRAG_MODELS (comma-separated), defaulting to the same
// three-rung chain files/llm_models.py's setup_fallback_model tries.
func fallbackModelNames() []string {
	raw := os.Getenv("GRAPHFORRAG_MODELS")
	if raw == "" {
		return []string{"claude-opus-4", "gpt-4.1-mini", "gemini-2.5-flash"}
	}
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func embedderFromEnv() llmfacade.EmbedderClient {
	cfg := llmfacade.EmbedderConfig{
		Model:  os.Getenv("GRAPHFORRAG_EMBEDDER_MODEL"),
		APIKey: os.Getenv("OPENAI_API_KEY"),
	}
	if dims := os.Getenv("GRAPHFORRAG_EMBEDDER_DIMENSIONS"); dims != "" {
		if n, err := strconv.Atoi(dims); err == nil {
			cfg.Dimensions = n
		}
	}
	return llmfacade.NewOpenAIEmbedder(cfg)
}

// openGraph connects to Neo4j and wires an embedder, exiting the command
// with an error if either fails. It returns the embedder too, since
// resolver.New and search.NewManager both need it alongside the graph.
func openGraph(ctx context.Context, log *slog.Logger) (*graphstore.Graph, llmfacade.EmbedderClient, error) {
	embedder := embedderFromEnv()
	graph, err := graphstore.NewGraph(ctx, connectionConfig(), embedder, log)
	return graph, embedder, err
}

// buildOrchestrator assembles an ingest.Orchestrator over graph, sharing
// one fallback model across entity extraction, relationship extraction,
// and entity resolution, the way Orchestrator.New expects.
func buildOrchestrator(graph *graphstore.Graph, embedder llmfacade.EmbedderClient, log *slog.Logger) (*ingest.Orchestrator, error) {
	model, err := llmfacade.BuildFallbackModel(fallbackModelNames(), log)
	if err != nil {
		return nil, err
	}
	entityExtractor := extraction.NewEntityExtractor(model, log)
	relationshipExtractor := extraction.NewRelationshipExtractor(model, log)
	res := resolver.New(graph, embedder, model, resolver.Config{}, log)
	return ingest.New(graph, embedder, entityExtractor, relationshipExtractor, res, log), nil
}

// buildSearchManager assembles a search.Manager over graph, sharing one
// fallback model across multi-query generation and Cypher generation.
func buildSearchManager(graph *graphstore.Graph, embedder llmfacade.EmbedderClient, log *slog.Logger) (*search.Manager, error) {
	model, err := llmfacade.BuildFallbackModel(fallbackModelNames(), log)
	if err != nil {
		return nil, err
	}
	multiQuery := search.NewMultiQueryGenerator(model, log)
	cypherGen := search.NewCypherGenerator(model, log)
	return search.NewManager(graph, embedder, multiQuery, cypherGen, log), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

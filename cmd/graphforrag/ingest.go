package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbczarnota/graphforrag-go/internal/ingest"
)

func newIngestCmd(log *slog.Logger) *cobra.Command {
	var (
		sourceName string
		sourceType string
		watchDir   string
		isCatalog  bool
	)

	cmd := &cobra.Command{
		Use:   "ingest [path]",
		Short: "Ingest a text file or product catalog into the graph",
		Long: `Ingest reads a single file as one Source and its content as one Chunk (or,
with --catalog, a YAML product catalog whose entries become Product
items), runs entity/relationship extraction and resolution over it, and
writes the result into Neo4j.

With --watch DIR, ingest instead watches DIR for file creates/writes and
re-ingests each changed file as it happens, running until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			graph, embedder, err := openGraph(ctx, log)
			if err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			defer func() { _ = graph.Close(ctx) }()

			orchestrator, err := buildOrchestrator(graph, embedder, log)
			if err != nil {
				return fmt.Errorf("build ingestion pipeline: %w", err)
			}

			if watchDir != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "watching %s for changes (ctrl-c to stop)\n", watchDir)
				return orchestrator.Watch(ctx, watchDir, ingest.WatchOptions{}, func(path string, result ingest.Result, err error) {
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
						return
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: source %s, %d items\n", path, result.SourceUUID, len(result.ItemUUIDs))
					reportUsage(cmd.OutOrStdout(), result.Usage)
				})
			}

			if len(args) != 1 {
				return fmt.Errorf("ingest requires a file path argument (or --watch DIR)")
			}

			var result ingest.Result
			if isCatalog {
				result, err = ingestCatalogFile(ctx, orchestrator, args[0])
			} else {
				result, err = ingestTextFile(ctx, orchestrator, args[0], sourceName, sourceType)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "source %s: %d items ingested\n", result.SourceUUID, len(result.ItemUUIDs))
			reportUsage(cmd.OutOrStdout(), result.Usage)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceName, "name", "", "Source name (defaults to the file's base name)")
	cmd.Flags().StringVar(&sourceType, "type", "document", "Source type")
	cmd.Flags().StringVar(&watchDir, "watch", "", "Watch DIR for file changes and re-ingest them as they happen")
	cmd.Flags().BoolVar(&isCatalog, "catalog", false, "Treat the file as a YAML product catalog")

	return cmd
}

func ingestTextFile(ctx context.Context, orchestrator *ingest.Orchestrator, path, name, sourceType string) (ingest.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ingest.Result{}, fmt.Errorf("read %q: %w", path, err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	items := []ingest.Item{{PageContent: string(content), Metadata: map[string]any{"path": path}}}
	return orchestrator.AddDocumentsFromSource(ctx, name, sourceType, contentHashOf(content), string(content), map[string]any{"path": path}, items)
}

func ingestCatalogFile(ctx context.Context, orchestrator *ingest.Orchestrator, path string) (ingest.Result, error) {
	catalog, err := ingest.LoadProductCatalogFile(path)
	if err != nil {
		return ingest.Result{}, err
	}
	items := catalog.Items()
	raw, err := json.Marshal(catalog)
	if err != nil {
		return ingest.Result{}, fmt.Errorf("re-marshal catalog for content hash: %w", err)
	}
	name := catalog.Source
	if name == "" {
		name = filepath.Base(path)
	}
	return orchestrator.AddDocumentsFromSource(ctx, name, "product_catalog", contentHashOf(raw), string(raw), map[string]any{"path": path}, items)
}

func contentHashOf(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

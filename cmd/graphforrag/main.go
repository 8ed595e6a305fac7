// Command graphforrag ingests documents and product catalogs into a
// Neo4j-backed knowledge graph and answers hybrid keyword+vector search
// queries against it.
//
// Usage:
//
//	graphforrag ingest        - Ingest a text file, directory, or product catalog
//	graphforrag search        - Run hybrid search against the graph
//	graphforrag ensure-schema - Create missing constraints/indexes
//	graphforrag clear-schema  - Drop every constraint/index in the database
//	graphforrag clear-data    - Delete every node and relationship
//	graphforrag delete-source - Cascade-delete one Source and its subtree
//	graphforrag design        - Print the retriever/pipeline configuration
//	graphforrag usage         - Print accumulated LLM/embedding usage
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:   "graphforrag",
		Short: "RAG knowledge-graph ingestion and retrieval over Neo4j",
	}

	rootCmd.AddCommand(newIngestCmd(log))
	rootCmd.AddCommand(newSearchCmd(log))
	rootCmd.AddCommand(newEnsureSchemaCmd(log))
	rootCmd.AddCommand(newClearSchemaCmd(log))
	rootCmd.AddCommand(newClearDataCmd(log))
	rootCmd.AddCommand(newDeleteSourceCmd(log))
	rootCmd.AddCommand(newDesignCmd())
	rootCmd.AddCommand(newUsageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dbczarnota/graphforrag-go/internal/search"
)

func newSearchCmd(log *slog.Logger) *cobra.Command {
	var (
		limit      int
		multiQuery bool
		cypher     bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run hybrid keyword+vector search against the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			graph, embedder, err := openGraph(ctx, log)
			if err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			defer func() { _ = graph.Close(ctx) }()

			manager, err := buildSearchManager(graph, embedder, log)
			if err != nil {
				return fmt.Errorf("build search manager: %w", err)
			}

			cfg := search.DefaultConfig()
			cfg.OverallResultsLimit = limit
			cfg.MultiQuery.Enabled = multiQuery
			cfg.CypherSearch.Enabled = cypher

			results, usage, err := manager.Search(ctx, args[0], cfg)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, item := range results.Items {
				label := item.Name
				if label == "" {
					label = item.FactSentence
				}
				if label == "" {
					label = item.Content
				}
				fmt.Fprintf(out, "%2d. [%s] score=%.4f %s\n", i+1, item.Type, item.Score, truncate(label, 120))
			}
			if results.ExecutedLLMCypherQuery != "" {
				fmt.Fprintf(out, "\ncypher fallback:\n%s\n%d rows\n", results.ExecutedLLMCypherQuery, len(results.RawLLMCypherQueryResults))
			}
			reportUsage(out, usage)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results to return")
	cmd.Flags().BoolVar(&multiQuery, "multi-query", false, "Expand the query into LLM-generated alternative phrasings before searching")
	cmd.Flags().BoolVar(&cypher, "cypher", false, "Additionally ask the LLM to generate and run a fallback Cypher query")

	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

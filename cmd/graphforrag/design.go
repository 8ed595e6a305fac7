package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbczarnota/graphforrag-go/internal/graphstore"
	"github.com/dbczarnota/graphforrag-go/internal/kg"
	"github.com/dbczarnota/graphforrag-go/internal/resolver"
	"github.com/dbczarnota/graphforrag-go/internal/retrievers"
	"github.com/dbczarnota/graphforrag-go/internal/search"
)

// newDesignCmd prints the retriever and ingestion-pipeline configuration
// this binary actually runs, in the declarative shapes
// internal/retrievers and internal/kg describe. It replaces the teacher's
// AI-assisted interactive design session (wetwire-core-go's agent
// orchestrator/Kiro integration), which has no place here: this project
// has a fixed, code-defined schema rather than one an agent proposes and
// the user iterates on.
func newDesignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "design",
		Short: "Print the retriever and ingestion-pipeline configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			defaultCfg := search.DefaultConfig()

			serializer := retrievers.NewRetrieverSerializer()
			retrieverJSON, err := serializer.BatchToJSON(retrievers.DefaultRetrievers(defaultCfg))
			if err != nil {
				return fmt.Errorf("serialize retrievers: %w", err)
			}
			fmt.Fprintln(out, "retrievers:")
			fmt.Fprintln(out, string(retrieverJSON))

			kgSerializer := kg.NewKGSerializer()
			pipelineJSON, err := kgSerializer.ToJSON(kg.DefaultPipeline(
				fallbackModelNames(), graphstore.EmbeddingDimensions, resolver.DefaultSimilarityThreshold,
			))
			if err != nil {
				return fmt.Errorf("serialize pipeline: %w", err)
			}
			fmt.Fprintln(out, "\ningestion pipeline:")
			fmt.Fprintln(out, string(pipelineJSON))

			fmt.Fprintln(out, "\ngraph schema:")
			fmt.Fprintln(out, search.SchemaString())

			defaultCfgJSON, err := json.MarshalIndent(defaultCfg, "", "  ")
			if err != nil {
				return fmt.Errorf("serialize search config: %w", err)
			}
			fmt.Fprintln(out, "default search config:")
			fmt.Fprintln(out, string(defaultCfgJSON))

			return nil
		},
	}
}

package kg

import "strings"

// DefaultPipeline derives this package's declarative description from the
// actual settings internal/ingest.Orchestrator and internal/resolver.Resolver
// run with — the fallback LLM chain, the embedding width, and the
// similarity threshold — so this description cannot drift from the
// runtime pipeline the way a second hand-maintained copy of the same
// numbers would.
func DefaultPipeline(fallbackModelNames []string, embeddingDimensions int, resolverSimilarityThreshold float64) *SimpleKGPipeline {
	performResolution := true
	return &SimpleKGPipeline{
		BasePipeline: BasePipeline{
			Name: "graphforrag_ingest",
			LLMConfig: &LLMConfig{
				Provider: "fallback-chain",
				Model:    strings.Join(fallbackModelNames, ","),
			},
			EmbedderConfig: &EmbedderConfig{
				Provider:   "openai",
				Model:      "text-embedding-3-small",
				Dimensions: embeddingDimensions,
			},
		},
		EntityTypes: []EntityType{
			{Name: "Entity", Description: "A named real-world thing mentioned in ingested content"},
			{Name: "Product", Description: "A product promoted from a resolved Entity or ingested directly"},
		},
		RelationTypes: []RelationType{
			{
				Name:        "RELATES_TO",
				Description: "A fact-bearing relationship extracted between two entities",
				SourceTypes: []string{"Entity", "Product"},
				TargetTypes: []string{"Entity", "Product"},
				Properties: []RelationProperty{
					{Name: "fact_sentence", Type: "STRING", Description: "The extracted sentence supporting this relationship"},
				},
			},
		},
		EntityResolver:          &SemanticMatchResolver{ResolveProperty: "name", Threshold: resolverSimilarityThreshold, Model: "text-embedding-3-small"},
		PerformEntityResolution: &performResolution,
		OnError:                 "WARN",
	}
}

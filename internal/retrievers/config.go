package retrievers

import "github.com/dbczarnota/graphforrag-go/internal/search"

// embedderModel names the embedding model internal/search's vector
// searches query against, matching internal/llmfacade's default embedder
// model. Kept as a single constant rather than threaded through
// search.Config (which has no embedder-model field of its own — the
// embedder is wired at the ingest.Orchestrator/search.Manager
// construction site, not per search kind).
const embedderModel = "text-embedding-3-small"

// DefaultRetrievers derives this package's declarative description from
// the search.Config internal/search.Manager runs with. Each retriever's
// TopK comes from cfg; index names, the embedder model and returned
// properties are literals written here, since search.Config has no field
// for them.
func DefaultRetrievers(cfg search.Config) []Retriever {
	return []Retriever{
		&HybridRetriever{
			BaseRetriever:     BaseRetriever{Name: "chunk_search"},
			VectorIndexName:   "chunk_content_embedding_vector",
			FulltextIndexName: "chunk_content_ft",
			EmbedderModel:     embedderModel,
			TopK:              cfg.Chunk.Limit,
			ReturnProperties:  []string{"content"},
		},
		&HybridRetriever{
			BaseRetriever:     BaseRetriever{Name: "entity_search"},
			VectorIndexName:   "entity_name_embedding_vector",
			FulltextIndexName: "entity_name_ft",
			EmbedderModel:     embedderModel,
			TopK:              cfg.Entity.Limit,
			ReturnProperties:  []string{"name"},
		},
		&HybridRetriever{
			BaseRetriever:     BaseRetriever{Name: "relationship_search"},
			VectorIndexName:   "relates_to_fact_embedding_vector",
			FulltextIndexName: "relationship_fact_ft",
			EmbedderModel:     embedderModel,
			TopK:              cfg.Relationship.Limit,
			ReturnProperties:  []string{"fact_sentence"},
		},
		&HybridRetriever{
			BaseRetriever:     BaseRetriever{Name: "mention_search"},
			VectorIndexName:   "mentions_fact_embedding_vector",
			FulltextIndexName: "mentions_fact_ft",
			EmbedderModel:     embedderModel,
			TopK:              cfg.Mention.Limit,
			ReturnProperties:  []string{"fact_sentence"},
		},
		&HybridRetriever{
			BaseRetriever:     BaseRetriever{Name: "source_search"},
			VectorIndexName:   "source_content_embedding_vector",
			FulltextIndexName: "source_name_ft",
			EmbedderModel:     embedderModel,
			TopK:              cfg.Source.Limit,
			ReturnProperties:  []string{"content"},
		},
		&HybridRetriever{
			BaseRetriever:     BaseRetriever{Name: "product_search"},
			VectorIndexName:   "product_name_embedding_vector",
			FulltextIndexName: "product_name_content_ft",
			EmbedderModel:     embedderModel,
			TopK:              cfg.Product.Limit,
			ReturnProperties:  []string{"name", "content"},
		},
		&Text2CypherRetriever{
			BaseRetriever: BaseRetriever{Name: "cypher_fallback"},
			LLMProvider:   "fallback-chain",
			SchemaDescription: "rendered at query time from internal/graphstore's node/relationship " +
				"catalog by internal/search.SchemaString",
		},
	}
}

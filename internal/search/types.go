// Package search implements hybrid keyword+vector retrieval over the
// knowledge graph, a Go port of graphforrag_core/search_types.py and
// search_manager.py: one Cypher "part" per enabled search method, combined
// with UNION ALL and reranked with reciprocal rank fusion.
package search

// Reranker selects how a search kind's method results are combined into a
// single ranked list.
type Reranker string

const (
	// RRF combines each method's ranked list with reciprocal rank fusion.
	RRF Reranker = "rrf"
	// ScoreOnly sorts the union of results by their raw similarity/fulltext
	// score and slices to the limit, skipping RRF.
	ScoreOnly Reranker = "score"
)

// ResultType labels which node/relationship kind a SearchResultItem came
// from.
type ResultType string

const (
	ChunkResult        ResultType = "Chunk"
	EntityResult       ResultType = "Entity"
	RelationshipResult ResultType = "Relationship"
	SourceResult       ResultType = "Source"
	ProductResult      ResultType = "Product"
	MentionResult      ResultType = "Mention"
)

// ChunkSearchMethod selects which Cypher part(s) chunk search runs.
type ChunkSearchMethod string

const (
	ChunkKeywordFulltext ChunkSearchMethod = "keyword_fulltext"
	ChunkSemanticVector  ChunkSearchMethod = "semantic_vector"
)

// ChunkSearchConfig configures Chunk search, a Go port of
// search_types.py::ChunkSearchConfig.
type ChunkSearchConfig struct {
	SearchMethods      []ChunkSearchMethod
	Reranker           Reranker
	Limit              int
	MinResults         int
	KeywordFetchLimit  int
	SemanticFetchLimit int
	MinSimilarityScore float64
	RRFK               int
}

// DefaultChunkSearchConfig mirrors the Python dataclass defaults.
func DefaultChunkSearchConfig() ChunkSearchConfig {
	return ChunkSearchConfig{
		SearchMethods:      []ChunkSearchMethod{ChunkKeywordFulltext, ChunkSemanticVector},
		Reranker:           RRF,
		Limit:              5,
		MinResults:         1,
		KeywordFetchLimit:  20,
		SemanticFetchLimit: 20,
		MinSimilarityScore: 0.7,
		RRFK:               60,
	}
}

// EntitySearchMethod selects which Cypher part(s) entity search runs.
//
// The Python original also searched an entity_description_embedding_vector
// index and an entity_name_desc_ft fulltext index, because its Entity
// carried a free-text description. This graph's Entity has no description
// property (contextual facts live on MENTIONS.fact_sentence instead, see
// internal/extraction), so KEYWORD_NAME_DESC/SEMANTIC_DESCRIPTION have no
// Go equivalent here; "what was said about this entity" is answered by
// MentionSearchConfig's fact-sentence search instead, not by an Entity
// field.
type EntitySearchMethod string

const (
	EntityKeywordName  EntitySearchMethod = "keyword_name"
	EntitySemanticName EntitySearchMethod = "semantic_name"
)

// EntitySearchConfig configures Entity search, a Go port of
// search_types.py::EntitySearchConfig with the description-based methods
// dropped per this graph's schema (see EntitySearchMethod).
type EntitySearchConfig struct {
	SearchMethods      []EntitySearchMethod
	Reranker           Reranker
	Limit              int
	MinResults         int
	KeywordFetchLimit  int
	SemanticFetchLimit int
	MinSimilarityScore float64
	RRFK               int
}

func DefaultEntitySearchConfig() EntitySearchConfig {
	return EntitySearchConfig{
		SearchMethods:      []EntitySearchMethod{EntityKeywordName, EntitySemanticName},
		Reranker:           RRF,
		Limit:              5,
		MinResults:         1,
		KeywordFetchLimit:  20,
		SemanticFetchLimit: 20,
		MinSimilarityScore: 0.7,
		RRFK:               60,
	}
}

// RelationshipSearchMethod selects which Cypher part(s) relationship
// search runs.
type RelationshipSearchMethod string

const (
	RelationshipKeywordFact  RelationshipSearchMethod = "keyword_fact"
	RelationshipSemanticFact RelationshipSearchMethod = "semantic_fact"
)

// RelationshipSearchConfig configures RELATES_TO search, a Go port of
// search_types.py::RelationshipSearchConfig. It searches the
// relationship_fact_ft fulltext index and relates_to_fact_embedding_vector
// vector index created by graphstore/ensure.go's
// relationshipIndexStatements.
type RelationshipSearchConfig struct {
	SearchMethods      []RelationshipSearchMethod
	Reranker           Reranker
	Limit              int
	MinResults         int
	KeywordFetchLimit  int
	SemanticFetchLimit int
	MinSimilarityScore float64
	RRFK               int
}

func DefaultRelationshipSearchConfig() RelationshipSearchConfig {
	return RelationshipSearchConfig{
		SearchMethods:      []RelationshipSearchMethod{RelationshipKeywordFact, RelationshipSemanticFact},
		Reranker:           RRF,
		Limit:              5,
		MinResults:         1,
		KeywordFetchLimit:  20,
		SemanticFetchLimit: 20,
		MinSimilarityScore: 0.7,
		RRFK:               60,
	}
}

// MentionSearchMethod selects which Cypher part(s) mention search runs. It
// searches MENTIONS.fact_sentence/fact_embedding, the fact-level search
// the Python added as MentionSearchConfig and that this graph's Entity
// search leans on in place of a description field.
type MentionSearchMethod string

const (
	MentionKeywordFact  MentionSearchMethod = "keyword_fact"
	MentionSemanticFact MentionSearchMethod = "semantic_fact"
)

// MentionSearchConfig configures MENTIONS search, a Go port of
// search_types.py::MentionSearchConfig.
type MentionSearchConfig struct {
	SearchMethods      []MentionSearchMethod
	Reranker           Reranker
	Limit              int
	MinResults         int
	KeywordFetchLimit  int
	SemanticFetchLimit int
	MinSimilarityScore float64
	RRFK               int
}

func DefaultMentionSearchConfig() MentionSearchConfig {
	return MentionSearchConfig{
		SearchMethods:      []MentionSearchMethod{MentionKeywordFact, MentionSemanticFact},
		Reranker:           RRF,
		Limit:              5,
		MinResults:         1,
		KeywordFetchLimit:  20,
		SemanticFetchLimit: 20,
		MinSimilarityScore: 0.7,
		RRFK:               60,
	}
}

// SourceSearchMethod selects which Cypher part(s) source search runs.
type SourceSearchMethod string

const (
	SourceKeywordContent  SourceSearchMethod = "keyword_content"
	SourceSemanticContent SourceSearchMethod = "semantic_content"
)

// SourceSearchConfig configures Source search, a Go port of
// search_types.py::SourceSearchConfig.
type SourceSearchConfig struct {
	SearchMethods      []SourceSearchMethod
	Reranker           Reranker
	Limit              int
	MinResults         int
	KeywordFetchLimit  int
	SemanticFetchLimit int
	MinSimilarityScore float64
	RRFK               int
}

func DefaultSourceSearchConfig() SourceSearchConfig {
	return SourceSearchConfig{
		SearchMethods:      []SourceSearchMethod{SourceKeywordContent, SourceSemanticContent},
		Reranker:           RRF,
		Limit:              3,
		MinResults:         1,
		KeywordFetchLimit:  20,
		SemanticFetchLimit: 20,
		MinSimilarityScore: 0.7,
		RRFK:               60,
	}
}

// ProductSearchMethod selects which Cypher part(s) product search runs.
type ProductSearchMethod string

const (
	ProductKeywordNameContent ProductSearchMethod = "keyword_name_content"
	ProductSemanticName       ProductSearchMethod = "semantic_name"
	ProductSemanticContent    ProductSearchMethod = "semantic_content"
)

// ProductSearchConfig configures Product search, a Go port of
// search_types.py::ProductSearchConfig; name and content embeddings are
// fetched with independent limits/thresholds since they live in separate
// vector indexes (product_name_embedding_vector/
// product_content_embedding_vector).
type ProductSearchConfig struct {
	SearchMethods             []ProductSearchMethod
	Reranker                  Reranker
	Limit                     int
	MinResults                int
	KeywordFetchLimit         int
	SemanticNameFetchLimit    int
	SemanticContentFetchLimit int
	MinSimilarityScoreName    float64
	MinSimilarityScoreContent float64
	RRFK                      int
}

func DefaultProductSearchConfig() ProductSearchConfig {
	return ProductSearchConfig{
		SearchMethods:             []ProductSearchMethod{ProductKeywordNameContent, ProductSemanticName, ProductSemanticContent},
		Reranker:                  RRF,
		Limit:                     5,
		MinResults:                1,
		KeywordFetchLimit:         20,
		SemanticNameFetchLimit:    20,
		SemanticContentFetchLimit: 20,
		MinSimilarityScoreName:    0.7,
		MinSimilarityScoreContent: 0.7,
		RRFK:                      60,
	}
}

// MultiQueryConfig enables generating alternative phrasings of a query
// before fanning out search, a Go port of search_types.py::MultiQueryConfig.
type MultiQueryConfig struct {
	Enabled                 bool
	IncludeOriginalQuery    bool
	MaxAlternativeQuestions int
	MQRLLMModels            []string
}

func DefaultMultiQueryConfig() MultiQueryConfig {
	return MultiQueryConfig{
		Enabled:                 false,
		IncludeOriginalQuery:    true,
		MaxAlternativeQuestions: 3,
	}
}

// CypherSearchConfig enables the text-to-Cypher fallback search path, a Go
// port of search_types.py::CypherSearchConfig.
type CypherSearchConfig struct {
	Enabled           bool
	LLMModels         []string
	FlaggedProperties map[string][]string
}

func DefaultCypherSearchConfig() CypherSearchConfig {
	return CypherSearchConfig{Enabled: false}
}

// Config bundles every search kind's configuration plus the optional
// multi-query and Cypher-fallback stages, a Go port of
// search_types.py::SearchConfig.
type Config struct {
	Chunk               ChunkSearchConfig
	Entity              EntitySearchConfig
	Relationship        RelationshipSearchConfig
	Source              SourceSearchConfig
	Product             ProductSearchConfig
	Mention             MentionSearchConfig
	MultiQuery          MultiQueryConfig
	CypherSearch        CypherSearchConfig
	OverallResultsLimit int
}

// DefaultConfig returns the Python original's default SearchConfig, with
// every per-kind config at its own default.
func DefaultConfig() Config {
	return Config{
		Chunk:               DefaultChunkSearchConfig(),
		Entity:              DefaultEntitySearchConfig(),
		Relationship:        DefaultRelationshipSearchConfig(),
		Source:              DefaultSourceSearchConfig(),
		Product:             DefaultProductSearchConfig(),
		Mention:             DefaultMentionSearchConfig(),
		MultiQuery:          DefaultMultiQueryConfig(),
		CypherSearch:        DefaultCypherSearchConfig(),
		OverallResultsLimit: 10,
	}
}

// ResultItem is one ranked hit from any search kind, a Go port of
// search_types.py::SearchResultItem. Fields not applicable to a given
// ResultType are left zero.
type ResultItem struct {
	UUID           string
	Name           string
	Content        string
	FactSentence   string
	Label          string
	SourceNodeUUID string
	TargetNodeUUID string
	Score          float64
	Type           ResultType
	ConnectedFacts []string
	Metadata       map[string]any
}

// CombinedResults is the final answer returned to a caller of Manager.Search,
// a Go port of search_types.py::CombinedSearchResults. SourceDataReferences
// holds the unique Chunk/Source/Product items among Items that a reader
// can cite as provenance for the facts Items surfaces, matching
// search_types.py's source_data_references: Optional[List[SearchResultItem]]
// (not a list of bare identifiers).
type CombinedResults struct {
	Items                    []ResultItem
	QueryText                string
	ContextSnippet           string
	SourceDataReferences     []ResultItem
	SourceDataSnippet        string
	ExecutedLLMCypherQuery   string
	RawLLMCypherQueryResults []map[string]any
}

package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"github.com/dbczarnota/graphforrag-go/internal/graphstore"
	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

// Manager runs hybrid keyword+vector search against the knowledge graph, a
// Go port of graphforrag_core/search_manager.py::SearchManager. Each
// exported SearchX method builds one Cypher statement per enabled search
// method, unions them in a single query, and reranks the combined rows.
type Manager struct {
	graph      *graphstore.Graph
	embedder   llmfacade.EmbedderClient
	multiQuery *MultiQueryGenerator
	cypherGen  *CypherGenerator
	log        *slog.Logger
}

// NewManager constructs a Manager over an already-connected graph store
// and embedder. multiQuery and cypherGen are optional (nil disables
// Config.MultiQuery/Config.CypherSearch even if their Enabled flag is set);
// internal/ingest's caller wires them once and shares them across search
// calls the same way it shares extractors across chunks.
func NewManager(graph *graphstore.Graph, embedder llmfacade.EmbedderClient, multiQuery *MultiQueryGenerator, cypherGen *CypherGenerator, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{graph: graph, embedder: embedder, multiQuery: multiQuery, cypherGen: cypherGen, log: log}
}

// embed embeds a single query string, returning a nil vector (rather than
// an error) when no embedder is configured or the call fails, so semantic
// search methods are simply skipped instead of aborting the whole search —
// the same degrade-gracefully posture as the rest of this codebase.
func (m *Manager) embed(ctx context.Context, text string) ([]float32, llmfacade.Usage, error) {
	if m.embedder == nil || text == "" {
		return nil, llmfacade.Usage{}, nil
	}
	vectors, usage, err := m.embedder.Embed(ctx, []string{text})
	if err != nil || len(vectors) == 0 {
		return nil, usage, err
	}
	return vectors[0], usage, nil
}

// queryPart is one UNION ALL branch plus its parameters, merged into a
// single statement by runCombinedQuery.
type queryPart struct {
	method string
	cypher string
	params map[string]any
}

// runCombinedQuery joins parts with UNION ALL and runs them as one
// statement, a Go port of search_manager.py's pattern of issuing a single
// execute_query call per search kind rather than one round-trip per
// method. Returns rows grouped by the `method` column each part selects,
// preserving Neo4j's per-branch result order (index fetches are already
// score-ordered).
func (m *Manager) runCombinedQuery(ctx context.Context, parts []queryPart) (map[string][]rawResult, error) {
	grouped := map[string][]rawResult{}
	if len(parts) == 0 {
		return grouped, nil
	}

	// Parameters are suffixed per part (e.g. $query_0, $query_1) since
	// identically-named parameters across methods (every part's $query,
	// $vector, $limit) would otherwise collide once joined.
	cypher := ""
	params := map[string]any{}
	for i, p := range parts {
		if i > 0 {
			cypher += "\nUNION ALL\n"
		}
		suffixed, suffixedParams := suffixParams(p, i)
		cypher += suffixed
		for k, v := range suffixedParams {
			params[k] = v
		}
	}

	records, err := m.graph.RunRead(ctx, cypher, params)
	if err != nil {
		m.log.Error("combined search query failed", "error", err)
		return grouped, nil
	}
	for _, rec := range records {
		method, _ := rec.Get("method")
		methodKey, _ := method.(string)
		grouped[methodKey] = append(grouped[methodKey], recordToRaw(rec))
	}
	return grouped, nil
}

func suffixParams(p queryPart, index int) (string, map[string]any) {
	cypher := p.cypher
	params := map[string]any{}
	for k, v := range p.params {
		suffixedKey := fmt.Sprintf("%s_%d", k, index)
		params[suffixedKey] = v
		cypher = replaceParam(cypher, k, suffixedKey)
	}
	return cypher, params
}

// replaceParam rewrites every `$name` occurrence (word-bounded) to
// `$suffixedName` in a Cypher fragment.
func replaceParam(cypher, name, suffixedName string) string {
	old := "$" + name
	replacement := "$" + suffixedName
	out := ""
	for {
		idx := indexOfWordBoundary(cypher, old)
		if idx < 0 {
			out += cypher
			break
		}
		out += cypher[:idx] + replacement
		cypher = cypher[idx+len(old):]
	}
	return out
}

func indexOfWordBoundary(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] != substr {
			continue
		}
		if i+len(substr) < len(s) {
			c := s[i+len(substr)]
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
				continue
			}
		}
		return i
	}
	return -1
}

func recordToRaw(rec *neo4j.Record) rawResult {
	get := func(key string) string {
		v, ok := rec.Get(key)
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}
	score := 0.0
	if v, ok := rec.Get("score"); ok && v != nil {
		if f, ok := v.(float64); ok {
			score = f
		}
	}
	raw := rawResult{
		UUID:           get("uuid"),
		Score:          score,
		Name:           get("name"),
		Content:        get("content"),
		FactSentence:   get("fact_sentence"),
		Label:          get("label"),
		SourceNodeUUID: get("source_node_uuid"),
		TargetNodeUUID: get("target_node_uuid"),
	}
	for _, key := range []string{"uuid", "score", "name", "content", "fact_sentence", "label", "source_node_uuid", "target_node_uuid"} {
		if v, ok := rec.Get(key); ok && v != nil {
			raw.fieldCount++
		}
	}
	return raw
}

// rerank applies a search kind's configured reranker to its grouped
// per-method rows.
func rerank(grouped map[string][]rawResult, reranker Reranker, rrfK, limit int, resultType ResultType) []ResultItem {
	if reranker == RRF {
		lists := make([][]rawResult, 0, len(grouped))
		for _, rows := range grouped {
			lists = append(lists, rows)
		}
		return ApplyRRF(lists, rrfK, limit, resultType)
	}
	var flat []rawResult
	for _, rows := range grouped {
		flat = append(flat, rows...)
	}
	return scoreSortResults(flat, limit, resultType)
}

// SearchChunks runs Chunk search, a Go port of
// SearchManager.search_chunks.
func (m *Manager) SearchChunks(ctx context.Context, query string, cfg ChunkSearchConfig) ([]ResultItem, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	var parts []queryPart

	for _, method := range cfg.SearchMethods {
		switch method {
		case ChunkKeywordFulltext:
			if escaped := EscapeLuceneQuery(query); escaped != "" {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.fulltext.queryNodes('chunk_content_ft', $query) YIELD node, score
WHERE score >= 0
RETURN 'keyword_fulltext' AS method, node.uuid AS uuid, node.content AS content, score
ORDER BY score DESC LIMIT $limit`,
					params: map[string]any{"query": escaped, "limit": cfg.KeywordFetchLimit},
				})
			}
		case ChunkSemanticVector:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("chunk search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryNodes('chunk_content_embedding_vector', $limit, $vector) YIELD node, score
WHERE score >= $minScore
RETURN 'semantic_vector' AS method, node.uuid AS uuid, node.content AS content, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticFetchLimit, "minScore": cfg.MinSimilarityScore},
				})
			}
		}
	}

	grouped, err := m.runCombinedQuery(ctx, parts)
	if err != nil {
		return nil, usage, err
	}
	return rerank(grouped, cfg.Reranker, cfg.RRFK, cfg.Limit, ChunkResult), usage, nil
}

// SearchEntities runs Entity search, a Go port of
// SearchManager.search_entities with the description-based methods
// dropped (see EntitySearchMethod).
func (m *Manager) SearchEntities(ctx context.Context, query string, cfg EntitySearchConfig) ([]ResultItem, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	var parts []queryPart

	for _, method := range cfg.SearchMethods {
		switch method {
		case EntityKeywordName:
			if escaped := EscapeLuceneQuery(query); escaped != "" {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.fulltext.queryNodes('entity_name_ft', $query) YIELD node, score
RETURN 'keyword_name' AS method, node.uuid AS uuid, node.name AS name, labels(node)[0] AS label, score
ORDER BY score DESC LIMIT $limit`,
					params: map[string]any{"query": escaped, "limit": cfg.KeywordFetchLimit},
				})
			}
		case EntitySemanticName:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("entity search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryNodes('entity_name_embedding_vector', $limit, $vector) YIELD node, score
WHERE score >= $minScore
RETURN 'semantic_name' AS method, node.uuid AS uuid, node.name AS name, labels(node)[0] AS label, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticFetchLimit, "minScore": cfg.MinSimilarityScore},
				})
			}
		}
	}

	grouped, err := m.runCombinedQuery(ctx, parts)
	if err != nil {
		return nil, usage, err
	}
	return rerank(grouped, cfg.Reranker, cfg.RRFK, cfg.Limit, EntityResult), usage, nil
}

// SearchRelationships runs RELATES_TO search, a Go port of
// SearchManager.search_relationships against the fulltext/vector indexes
// graphstore/ensure.go::relationshipIndexStatements creates.
func (m *Manager) SearchRelationships(ctx context.Context, query string, cfg RelationshipSearchConfig) ([]ResultItem, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	var parts []queryPart

	for _, method := range cfg.SearchMethods {
		switch method {
		case RelationshipKeywordFact:
			if escaped := EscapeLuceneQuery(query); escaped != "" {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.fulltext.queryRelationships('relationship_fact_ft', $query) YIELD relationship, score
MATCH (a)-[relationship]->(b)
RETURN 'keyword_fact' AS method, relationship.uuid AS uuid, relationship.fact_sentence AS fact_sentence, a.uuid AS source_node_uuid, b.uuid AS target_node_uuid, score
ORDER BY score DESC LIMIT $limit`,
					params: map[string]any{"query": escaped, "limit": cfg.KeywordFetchLimit},
				})
			}
		case RelationshipSemanticFact:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("relationship search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryRelationships('relates_to_fact_embedding_vector', $limit, $vector) YIELD relationship, score
MATCH (a)-[relationship]->(b)
WHERE score >= $minScore
RETURN 'semantic_fact' AS method, relationship.uuid AS uuid, relationship.fact_sentence AS fact_sentence, a.uuid AS source_node_uuid, b.uuid AS target_node_uuid, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticFetchLimit, "minScore": cfg.MinSimilarityScore},
				})
			}
		}
	}

	grouped, err := m.runCombinedQuery(ctx, parts)
	if err != nil {
		return nil, usage, err
	}
	return rerank(grouped, cfg.Reranker, cfg.RRFK, cfg.Limit, RelationshipResult), usage, nil
}

// SearchMentions runs MENTIONS search over fact_sentence/fact_embedding,
// the fact-level search this graph relies on in place of an
// Entity.description field (see EntitySearchMethod).
func (m *Manager) SearchMentions(ctx context.Context, query string, cfg MentionSearchConfig) ([]ResultItem, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	var parts []queryPart

	for _, method := range cfg.SearchMethods {
		switch method {
		case MentionKeywordFact:
			if escaped := EscapeLuceneQuery(query); escaped != "" {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.fulltext.queryRelationships('mentions_fact_ft', $query) YIELD relationship, score
MATCH (c)-[relationship]->(t)
RETURN 'keyword_fact' AS method, relationship.uuid AS uuid, relationship.fact_sentence AS fact_sentence, c.uuid AS source_node_uuid, t.uuid AS target_node_uuid, score
ORDER BY score DESC LIMIT $limit`,
					params: map[string]any{"query": escaped, "limit": cfg.KeywordFetchLimit},
				})
			}
		case MentionSemanticFact:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("mention search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryRelationships('mentions_fact_embedding_vector', $limit, $vector) YIELD relationship, score
MATCH (c)-[relationship]->(t)
WHERE score >= $minScore
RETURN 'semantic_fact' AS method, relationship.uuid AS uuid, relationship.fact_sentence AS fact_sentence, c.uuid AS source_node_uuid, t.uuid AS target_node_uuid, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticFetchLimit, "minScore": cfg.MinSimilarityScore},
				})
			}
		}
	}

	grouped, err := m.runCombinedQuery(ctx, parts)
	if err != nil {
		return nil, usage, err
	}
	return rerank(grouped, cfg.Reranker, cfg.RRFK, cfg.Limit, MentionResult), usage, nil
}

// SearchSources runs Source search, a Go port of
// SearchManager.search_sources.
func (m *Manager) SearchSources(ctx context.Context, query string, cfg SourceSearchConfig) ([]ResultItem, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	var parts []queryPart

	for _, method := range cfg.SearchMethods {
		switch method {
		case SourceKeywordContent:
			if escaped := EscapeLuceneQuery(query); escaped != "" {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.fulltext.queryNodes('source_name_ft', $query) YIELD node, score
RETURN 'keyword_content' AS method, node.uuid AS uuid, node.content AS content, score
ORDER BY score DESC LIMIT $limit`,
					params: map[string]any{"query": escaped, "limit": cfg.KeywordFetchLimit},
				})
			}
		case SourceSemanticContent:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("source search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryNodes('source_content_embedding_vector', $limit, $vector) YIELD node, score
WHERE score >= $minScore
RETURN 'semantic_content' AS method, node.uuid AS uuid, node.content AS content, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticFetchLimit, "minScore": cfg.MinSimilarityScore},
				})
			}
		}
	}

	grouped, err := m.runCombinedQuery(ctx, parts)
	if err != nil {
		return nil, usage, err
	}
	return rerank(grouped, cfg.Reranker, cfg.RRFK, cfg.Limit, SourceResult), usage, nil
}

// SearchProducts runs Product search, a Go port of the Python product
// search kind; name and content embeddings are fetched against their own
// vector indexes with independent limits/thresholds.
func (m *Manager) SearchProducts(ctx context.Context, query string, cfg ProductSearchConfig) ([]ResultItem, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	var parts []queryPart

	for _, method := range cfg.SearchMethods {
		switch method {
		case ProductKeywordNameContent:
			if escaped := EscapeLuceneQuery(query); escaped != "" {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.fulltext.queryNodes('product_name_content_ft', $query) YIELD node, score
RETURN 'keyword_name_content' AS method, node.uuid AS uuid, node.name AS name, node.content AS content, score
ORDER BY score DESC LIMIT $limit`,
					params: map[string]any{"query": escaped, "limit": cfg.KeywordFetchLimit},
				})
			}
		case ProductSemanticName:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("product name search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryNodes('product_name_embedding_vector', $limit, $vector) YIELD node, score
WHERE score >= $minScore
RETURN 'semantic_name' AS method, node.uuid AS uuid, node.name AS name, node.content AS content, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticNameFetchLimit, "minScore": cfg.MinSimilarityScoreName},
				})
			}
		case ProductSemanticContent:
			vector, u, err := m.embed(ctx, query)
			usage.Add(u)
			if err != nil {
				m.log.Error("product content search query embedding failed", "error", err)
				continue
			}
			if vector != nil {
				parts = append(parts, queryPart{
					method: string(method),
					cypher: `CALL db.index.vector.queryNodes('product_content_embedding_vector', $limit, $vector) YIELD node, score
WHERE score >= $minScore
RETURN 'semantic_content' AS method, node.uuid AS uuid, node.name AS name, node.content AS content, score`,
					params: map[string]any{"vector": vector, "limit": cfg.SemanticContentFetchLimit, "minScore": cfg.MinSimilarityScoreContent},
				})
			}
		}
	}

	grouped, err := m.runCombinedQuery(ctx, parts)
	if err != nil {
		return nil, usage, err
	}
	return rerank(grouped, cfg.Reranker, cfg.RRFK, cfg.Limit, ProductResult), usage, nil
}

// searchOnce fans the six search kinds out concurrently for a single query
// string, with golang.org/x/sync/errgroup doing the fan-out, and returns
// each kind's own already-reranked list keyed by ResultType rather than a
// single flattened slice — Search needs each sub-query's per-kind list
// kept separate so it can RRF-fuse them again across sub-queries (spec
// step 4), one fusion per kind.
func (m *Manager) searchOnce(ctx context.Context, query string, cfg Config) (map[ResultType][]ResultItem, llmfacade.Usage, error) {
	kinds := []struct {
		Type ResultType
		Run  func(context.Context) ([]ResultItem, llmfacade.Usage, error)
	}{
		{ChunkResult, func(c context.Context) ([]ResultItem, llmfacade.Usage, error) {
			return m.SearchChunks(c, query, cfg.Chunk)
		}},
		{EntityResult, func(c context.Context) ([]ResultItem, llmfacade.Usage, error) {
			return m.SearchEntities(c, query, cfg.Entity)
		}},
		{RelationshipResult, func(c context.Context) ([]ResultItem, llmfacade.Usage, error) {
			return m.SearchRelationships(c, query, cfg.Relationship)
		}},
		{SourceResult, func(c context.Context) ([]ResultItem, llmfacade.Usage, error) {
			return m.SearchSources(c, query, cfg.Source)
		}},
		{ProductResult, func(c context.Context) ([]ResultItem, llmfacade.Usage, error) {
			return m.SearchProducts(c, query, cfg.Product)
		}},
		{MentionResult, func(c context.Context) ([]ResultItem, llmfacade.Usage, error) {
			return m.SearchMentions(c, query, cfg.Mention)
		}},
	}

	results := make([][]ResultItem, len(kinds))
	usages := make([]llmfacade.Usage, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			items, u, err := kind.Run(gctx)
			results[i] = items
			usages[i] = u
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, llmfacade.Usage{}, err
	}

	var usage llmfacade.Usage
	out := make(map[ResultType][]ResultItem, len(kinds))
	for i, kind := range kinds {
		usage.Add(usages[i])
		out[kind.Type] = results[i]
	}
	return out, usage, nil
}

// rrfKAndLimitFor returns the RRF constant and result limit the given
// kind's own SearchConfig carries, used when re-fusing that kind's
// per-sub-query lists at the top level.
func rrfKAndLimitFor(cfg Config, kind ResultType) (int, int) {
	switch kind {
	case ChunkResult:
		return cfg.Chunk.RRFK, cfg.Chunk.Limit
	case EntityResult:
		return cfg.Entity.RRFK, cfg.Entity.Limit
	case RelationshipResult:
		return cfg.Relationship.RRFK, cfg.Relationship.Limit
	case SourceResult:
		return cfg.Source.RRFK, cfg.Source.Limit
	case ProductResult:
		return cfg.Product.RRFK, cfg.Product.Limit
	case MentionResult:
		return cfg.Mention.RRFK, cfg.Mention.Limit
	default:
		return 60, 0
	}
}

// Search runs every configured search kind concurrently for query (and,
// if Config.MultiQuery is enabled, for each LLM-generated alternative
// phrasing, searched one phrasing after another), RRF-fuses each kind's
// per-sub-query lists into one ranked
// list per kind, merges those into a single overall-limited list, and
// assembles context_snippet/source_data_references/source_data_snippet
// from it. It also optionally augments the answer with an LLM-generated
// Cypher query's raw rows. A Go port of graphforrag.py::GraphForRAG.search's
// orchestration of SearchManager, MultiQueryGenerator, and CypherGenerator
// (spec step 1-7).
func (m *Manager) Search(ctx context.Context, query string, cfg Config) (CombinedResults, llmfacade.Usage, error) {
	var usage llmfacade.Usage

	queries := []string{}
	if cfg.MultiQuery.IncludeOriginalQuery || !cfg.MultiQuery.Enabled {
		queries = append(queries, query)
	}
	if cfg.MultiQuery.Enabled && m.multiQuery != nil {
		alternatives, u, err := m.multiQuery.GenerateAlternativeQueries(ctx, query, cfg.MultiQuery.MaxAlternativeQuestions)
		usage.Add(u)
		if err != nil {
			m.log.Error("multi-query generation failed, continuing with original query only", "error", err)
		}
		queries = append(queries, alternatives...)
	}
	if len(queries) == 0 {
		queries = []string{query}
	}

	// Per kind, collect one ranked list per sub-query so they can be
	// RRF-fused together (step 4), instead of merging raw items by
	// max-score across sub-queries.
	perKindLists := make(map[ResultType][][]ResultItem, len(contextKindOrder))
	for _, q := range queries {
		kindItems, u, err := m.searchOnce(ctx, q, cfg)
		usage.Add(u)
		if err != nil {
			return CombinedResults{}, usage, err
		}
		for kind, items := range kindItems {
			perKindLists[kind] = append(perKindLists[kind], items)
		}
	}

	var all []ResultItem
	for _, kind := range contextKindOrder {
		lists := perKindLists[kind]
		if len(lists) == 0 {
			continue
		}
		rrfK, limit := rrfKAndLimitFor(cfg, kind)
		all = append(all, fuseRankedLists(lists, rrfK, limit)...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	limit := cfg.OverallResultsLimit
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	sourceRefs := buildSourceDataReferences(all)
	combined := CombinedResults{
		Items:                all,
		QueryText:            query,
		ContextSnippet:       buildContextSnippet(all),
		SourceDataReferences: sourceRefs,
		SourceDataSnippet:    buildSourceDataSnippet(sourceRefs),
	}

	if cfg.CypherSearch.Enabled && m.cypherGen != nil {
		cypherQuery, u, err := m.cypherGen.GenerateCypher(ctx, query, "")
		usage.Add(u)
		if err != nil {
			m.log.Error("cypher fallback generation failed", "error", err)
		} else if cypherQuery != "" {
			records, err := m.graph.RunRead(ctx, cypherQuery, nil)
			if err != nil {
				m.log.Error("executing generated cypher query failed", "error", err)
			} else {
				combined.ExecutedLLMCypherQuery = cypherQuery
				combined.RawLLMCypherQueryResults = recordsToMaps(records)
			}
		}
	}

	return combined, usage, nil
}

func recordsToMaps(records []*neo4j.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		row := map[string]any{}
		for i, key := range rec.Keys {
			row[key] = rec.Values[i]
		}
		out = append(out, row)
	}
	return out
}

// Package resolver decides whether a newly extracted entity or product is
// the same real-world thing as something already in the graph, a Go port
// of entity_resolver.py.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dbczarnota/graphforrag-go/internal/extraction"
	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine score a vector search
	// candidate must clear to be offered to the deduplication LLM.
	DefaultSimilarityThreshold = 0.85
	// DefaultTopKCandidates bounds how many combined Entity+Product
	// candidates are kept after merging and sorting by score.
	DefaultTopKCandidates = 5
)

// EmbedderClient is the minimal surface the resolver needs for the
// candidate name search, satisfied by llmfacade.EmbedderClient.
type EmbedderClient interface {
	Embed(ctx context.Context, texts []string) ([][]float32, llmfacade.Usage, error)
}

// GraphReader is the subset of *graphstore.Graph the resolver runs
// read-only vector searches against. Declared locally (rather than
// importing graphstore) to keep resolver testable with a fake reader and
// to avoid a resolver->graphstore->resolver import cycle if ingest later
// wires them together through a shared interface.
type GraphReader interface {
	RunRead(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// Candidate is an existing Entity or Product that might be the same thing
// as a newly extracted entity, a Go port of ExistingEntityCandidate.
// ExistingMentionFacts carries the candidate's own MENTIONS.fact_sentence
// history so the dedup LLM has disambiguating context beyond a bare
// name/label/score triple, per spec.md §4.4 step 4 and
// entity_resolver.py's existing_mention_facts.
type Candidate struct {
	UUID                 string
	Name                 string
	Label                string
	NodeType             string // "Entity" or "Product"
	Score                float64
	ExistingMentionFacts []string
}

// Decision is the deduplication agent's verdict, a Go port of
// EntityDeduplicationDecision.
type Decision struct {
	IsDuplicate   bool    `json:"is_duplicate"`
	DuplicateUUID *string `json:"duplicate_of_uuid"`
	CanonicalName string  `json:"canonical_name"`
}

const dedupSystemPrompt = `You decide whether a newly mentioned entity is the same real-world thing as one already in a knowledge graph.

Guidelines:
- Compare the new entity's name and its mention's contextual fact against each candidate's name, label, and existing mention facts.
- Only mark is_duplicate true when you are confident they refer to the same thing, not merely similar or related things.
- canonical_name should be the best name to use going forward: the candidate's name when it is a duplicate, otherwise the new entity's own name.
- Respond with JSON only.`

const dedupUserPromptTemplate = `NEW ENTITY:
name: %s
label: %s
contextual fact from this mention: %s

CANDIDATES (semantically similar existing Entity/Product nodes):
%s`

const productMatchSystemPrompt = `You decide whether a newly ingested product is the same real-world thing as an existing Entity node, which should then be promoted to a Product.

Guidelines:
- Compare the new product's name, description, and attributes against the candidate entity.
- Only report is_strong_match true when confident they are the same thing.
- matched_entity_uuid must echo the candidate's uuid exactly when is_strong_match is true.
- Respond with JSON only.`

const productMatchUserPromptTemplate = `NEW PRODUCT:
name: %s
description: %s
attributes: %s

CANDIDATE ENTITY:
uuid: %s
name: %s
label: %s
note: %s`

type productMatchDecision struct {
	IsStrongMatch     bool   `json:"is_strong_match"`
	MatchedEntityUUID string `json:"matched_entity_uuid"`
}

// Resolver deduplicates entities against the graph via vector-search
// candidate retrieval followed by an LLM adjudication pass.
type Resolver struct {
	graph               GraphReader
	embedder            EmbedderClient
	dedupAgent          *llmfacade.Agent[Decision]
	productMatchAgent   *llmfacade.Agent[productMatchDecision]
	similarityThreshold float64
	topKCandidates      int
	log                 *slog.Logger
}

// Config configures a Resolver's thresholds; zero values fall back to the
// package defaults.
type Config struct {
	SimilarityThreshold float64
	TopKCandidates      int
}

// New builds a Resolver. model backs both the deduplication and the
// product-promotion-match agents, matching the original's single
// self.llm_client shared across both call sites.
func New(graph GraphReader, embedder EmbedderClient, model *llmfacade.FallbackModel, cfg Config, log *slog.Logger) *Resolver {
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.TopKCandidates == 0 {
		cfg.TopKCandidates = DefaultTopKCandidates
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		graph:               graph,
		embedder:            embedder,
		dedupAgent:          llmfacade.NewAgent[Decision](model, dedupSystemPrompt, log),
		productMatchAgent:   llmfacade.NewAgent[productMatchDecision](model, productMatchSystemPrompt, log),
		similarityThreshold: cfg.SimilarityThreshold,
		topKCandidates:      cfg.TopKCandidates,
		log:                 log.With("component", "resolver"),
	}
}

// findSimilarEntitiesQuery and findSimilarProductsQuery each collect the
// candidate's existing mention-fact sentences alongside its identity
// fields, a Go port of FIND_SIMILAR_ENTITIES_BY_VECTOR/
// FIND_SIMILAR_PRODUCTS_BY_VECTOR's mention_facts column.
const findSimilarEntitiesQuery = `
CALL db.index.vector.queryNodes($index_name_param, $top_k_param, $embedding_vector_param)
YIELD node, score
WHERE score >= $min_similarity_score_param
OPTIONAL MATCH (node)<-[m:MENTIONS]-()
WITH node, score, collect(DISTINCT m.fact_sentence) AS mention_facts
RETURN node.uuid AS uuid, node.name AS name, node.label AS label, score AS score, mention_facts AS mention_facts`

const findSimilarProductsQuery = `
CALL db.index.vector.queryNodes($index_name_param, $top_k_param, $embedding_vector_param)
YIELD node, score
WHERE score >= $min_similarity_score_param
OPTIONAL MATCH (node)<-[m:MENTIONS]-()
WITH node, score, collect(DISTINCT m.fact_sentence) AS mention_facts
RETURN node.uuid AS uuid, node.name AS name, score AS score, mention_facts AS mention_facts`

// findSimilarExisting searches both the Entity and Product vector indexes
// for the given name, merges the two result sets, de-duplicates by uuid,
// sorts by descending score, and truncates to topKCandidates — a Go port
// of _find_similar_existing_entities.
func (r *Resolver) findSimilarExisting(ctx context.Context, name string) ([]Candidate, llmfacade.Usage, error) {
	if name == "" {
		return nil, llmfacade.Usage{}, nil
	}

	vectors, usage, err := r.embedder.Embed(ctx, []string{name})
	if err != nil || len(vectors) == 0 {
		r.log.Warn("could not embed entity name for candidate search", "name", name, "error", err)
		return nil, usage, nil
	}
	vec := vectors[0]

	var candidates []Candidate

	entityRows, err := r.graph.RunRead(ctx, findSimilarEntitiesQuery, map[string]any{
		"index_name_param":           "entity_name_embedding_vector",
		"top_k_param":                int64(r.topKCandidates),
		"embedding_vector_param":     vec,
		"min_similarity_score_param": r.similarityThreshold,
	})
	if err != nil {
		r.log.Error("search similar entities failed", "name", name, "error", err)
	} else {
		for _, rec := range entityRows {
			candidates = append(candidates, candidateFromRecord(rec, "Entity"))
		}
	}

	productRows, err := r.graph.RunRead(ctx, findSimilarProductsQuery, map[string]any{
		"index_name_param":           "product_name_embedding_vector",
		"top_k_param":                int64(r.topKCandidates),
		"embedding_vector_param":     vec,
		"min_similarity_score_param": r.similarityThreshold,
	})
	if err != nil {
		r.log.Error("search similar products failed", "name", name, "error", err)
	} else {
		for _, rec := range productRows {
			candidates = append(candidates, candidateFromRecord(rec, "Product"))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	var final []Candidate
	seen := map[string]bool{}
	for _, c := range candidates {
		if seen[c.UUID] {
			continue
		}
		final = append(final, c)
		seen[c.UUID] = true
		if len(final) >= r.topKCandidates {
			break
		}
	}
	return final, usage, nil
}

func candidateFromRecord(rec *neo4j.Record, nodeType string) Candidate {
	c := Candidate{NodeType: nodeType}
	if v, ok := rec.Get("uuid"); ok {
		c.UUID, _ = v.(string)
	}
	if v, ok := rec.Get("name"); ok {
		c.Name, _ = v.(string)
	}
	if v, ok := rec.Get("label"); ok {
		c.Label, _ = v.(string)
	}
	if c.Label == "" {
		c.Label = nodeType
	}
	if v, ok := rec.Get("score"); ok {
		switch n := v.(type) {
		case float64:
			c.Score = n
		case int64:
			c.Score = float64(n)
		}
	}
	if v, ok := rec.Get("mention_facts"); ok {
		if raw, ok := v.([]any); ok {
			for _, f := range raw {
				if s, ok := f.(string); ok && s != "" {
					c.ExistingMentionFacts = append(c.ExistingMentionFacts, s)
				}
			}
		}
	}
	return c
}

// ResolveEntity decides whether newEntity refers to something already in
// the graph, a Go port of resolve_entity. On no candidates, or on any LLM
// failure, it falls back to "not a duplicate, keep the new name" exactly
// as the original does.
func (r *Resolver) ResolveEntity(ctx context.Context, newEntity extraction.Entity) (Decision, llmfacade.Usage, llmfacade.Usage, error) {
	fallback := Decision{IsDuplicate: false, CanonicalName: newEntity.Name}

	candidates, embeddingUsage, err := r.findSimilarExisting(ctx, newEntity.Name)
	if err != nil {
		return fallback, llmfacade.Usage{}, embeddingUsage, nil
	}
	if len(candidates) == 0 {
		return fallback, llmfacade.Usage{}, embeddingUsage, nil
	}

	prompt := fmt.Sprintf(dedupUserPromptTemplate,
		newEntity.Name, newEntity.Label, orDefault(newEntity.ContextualFact, "No specific fact sentence provided for this mention."),
		formatCandidates(candidates))

	decision, genUsage, err := r.dedupAgent.Run(ctx, prompt)
	if err != nil {
		return fallback, genUsage, embeddingUsage, nil
	}
	return decision, genUsage, embeddingUsage, nil
}

// FindMatchingEntityForProductPromotion looks for an existing Entity that
// the newly ingested product should be merged into (by label-swap
// promotion) rather than created as a brand-new Product, a Go port of
// find_matching_entity_for_product_promotion. It returns the matched
// Entity's uuid, or "" when no strong match is found.
func (r *Resolver) FindMatchingEntityForProductPromotion(ctx context.Context, productName, productDescription string, attributes map[string]any) (string, llmfacade.Usage, llmfacade.Usage, error) {
	candidates, embeddingUsage, err := r.findSimilarExisting(ctx, productName)
	if err != nil {
		return "", llmfacade.Usage{}, embeddingUsage, nil
	}

	var entityCandidates []Candidate
	for _, c := range candidates {
		if c.NodeType == "Entity" {
			entityCandidates = append(entityCandidates, c)
		}
	}
	if len(entityCandidates) == 0 {
		return "", llmfacade.Usage{}, embeddingUsage, nil
	}
	top := entityCandidates[0]

	attrsStr := "Not provided"
	if len(attributes) > 0 {
		if b, err := json.Marshal(attributes); err == nil {
			attrsStr = string(b)
		}
	}

	prompt := fmt.Sprintf(productMatchUserPromptTemplate,
		productName, orDefault(productDescription, "Not provided."), attrsStr,
		top.UUID, top.Name, top.Label,
		"Contextual statements for this entity are on its MENTIONS relationships, not directly on the entity.")

	decision, genUsage, err := r.productMatchAgent.Run(ctx, prompt)
	if err != nil {
		return "", genUsage, embeddingUsage, nil
	}
	if decision.IsStrongMatch && decision.MatchedEntityUUID == top.UUID {
		return decision.MatchedEntityUUID, genUsage, embeddingUsage, nil
	}
	return "", genUsage, embeddingUsage, nil
}

func formatCandidates(candidates []Candidate) string {
	if len(candidates) == 0 {
		return "No semantically similar candidates found in the knowledge graph."
	}
	b, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "No semantically similar candidates found in the knowledge graph."
	}
	return string(b)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

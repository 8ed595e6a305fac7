package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

// Relationship is a single fact linking two entities already extracted
// from the same chunk, a Go port of ExtractedRelationship.
type Relationship struct {
	SourceEntityName string `json:"source_entity_name"`
	RelationLabel    string `json:"relation_label"`
	TargetEntityName string `json:"target_entity_name"`
	FactSentence     string `json:"fact_sentence"`
}

type extractedRelationships struct {
	Relationships []Relationship `json:"relationships"`
}

const relationshipSystemPrompt = `You are an expert AI assistant tasked with identifying factual relationships between a given set of entities, based strictly on the provided text.

Guidelines:
- Only relate entities that appear in the provided entity list; use their names exactly as given.
- relation_label should be a short, general verb phrase (e.g. WORKS_FOR, LOCATED_IN, PART_OF).
- fact_sentence must be a sentence or clause from the text that supports the relationship, not a paraphrase invented from nothing.
- If no relationship between any two listed entities is supported by the text, return an empty list.`

const relationshipUserPromptTemplate = `Identify relationships between the entities below, using only what the TEXT CONTENT supports.

ENTITIES (name, label):
%s

TEXT CONTENT:
%s`

// RelationshipExtractor wraps a typed Agent producing
// ExtractedRelationshipsList, a Go port of RelationshipExtractor.
type RelationshipExtractor struct {
	agent *llmfacade.Agent[extractedRelationships]
}

// NewRelationshipExtractor builds a RelationshipExtractor over a shared
// fallback model.
func NewRelationshipExtractor(model *llmfacade.FallbackModel, log *slog.Logger) *RelationshipExtractor {
	return &RelationshipExtractor{
		agent: llmfacade.NewAgent[extractedRelationships](model, relationshipSystemPrompt, log),
	}
}

// Extract returns the relationships the LLM can ground in textContent
// between the given entities. Empty text or an empty entity list returns an
// empty result without calling the model, matching the original's early
// return.
func (r *RelationshipExtractor) Extract(ctx context.Context, textContent string, entities []Entity) ([]Relationship, llmfacade.Usage, error) {
	if strings.TrimSpace(textContent) == "" || len(entities) == 0 {
		return nil, llmfacade.Usage{}, nil
	}

	type nameLabel struct {
		Name  string `json:"name"`
		Label string `json:"label"`
	}
	pairs := make([]nameLabel, 0, len(entities))
	for _, e := range entities {
		pairs = append(pairs, nameLabel{Name: e.Name, Label: e.Label})
	}
	entitiesJSON, err := json.Marshal(pairs)
	if err != nil {
		return nil, llmfacade.Usage{}, fmt.Errorf("encode entity list for relationship prompt: %w", err)
	}

	prompt := fmt.Sprintf(relationshipUserPromptTemplate, string(entitiesJSON), textContent)

	result, usage, err := r.agent.Run(ctx, prompt)
	if err != nil {
		return nil, usage, nil
	}
	return result.Relationships, usage, nil
}

// Package extraction turns chunk text into candidate entities and
// relationships via an LLM agent, a Go port of entity_extractor.py and
// relationship_extractor.py.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

// Entity is a single entity surfaced from a chunk of text. ContextualFact
// holds the sentence or phrase the LLM grounded the entity in, used as the
// MENTIONS relationship's fact_sentence; it is never persisted on the
// Entity node itself.
type Entity struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	ContextualFact string `json:"contextual_statement"`
}

type extractedEntities struct {
	Entities []Entity `json:"entities"`
}

const entitySystemPrompt = `You are an expert AI assistant tasked with identifying and extracting named entities from the provided text.
Your goal is to identify distinct real-world objects, concepts, persons, organizations, locations, products, etc., and represent them consistently.

Guidelines:
- Focus on extracting nouns or noun phrases that represent distinct entities.
- For each entity, provide the most complete and canonical name possible based on the CURRENT TEXT. If "Mr. John Smith" and "Smith" refer to the same person, use "John Smith".
- If an entity is mentioned multiple times in the CURRENT TEXT, extract it only once using its most representative name.
- For the label, assign a general category (Person, Organization, Location, Product, Concept, Event, Artwork, Miscellaneous).
- Provide a brief contextual_statement for the entity grounded only in the provided text.
- Do not extract attributes of entities as separate entities, and do not extract actions or verbs as entities.
- If the text is short and contains no clear entities, return an empty list.`

const entityUserPromptTemplate = `Please extract all distinct entities from the following text content.
If contextual information from previous chunks is provided, use it only to disambiguate; extract from the CURRENT TEXT.

CONTEXT (optional):
%s

CURRENT TEXT to extract entities from:
%s`

// EntityExtractor wraps a typed Agent producing ExtractedEntitiesList.
type EntityExtractor struct {
	agent *llmfacade.Agent[extractedEntities]
}

// NewEntityExtractor builds an EntityExtractor over an already-assembled
// fallback model, mirroring EntityExtractor.__init__'s "llm_client or
// setup_fallback_model()" pattern, with the fallback construction left to
// the caller (internal/ingest wires it once and shares it across
// extractors).
func NewEntityExtractor(model *llmfacade.FallbackModel, log *slog.Logger) *EntityExtractor {
	return &EntityExtractor{
		agent: llmfacade.NewAgent[extractedEntities](model, entitySystemPrompt, log),
	}
}

// Extract returns the entities found in textContent, optionally informed by
// contextText from a preceding chunk. An empty textContent returns an empty
// list without calling the model, matching the original's early return.
func (e *EntityExtractor) Extract(ctx context.Context, textContent, contextText string) ([]Entity, llmfacade.Usage, error) {
	if strings.TrimSpace(textContent) == "" {
		return nil, llmfacade.Usage{}, nil
	}
	if contextText == "" {
		contextText = "No additional context provided."
	}
	prompt := fmt.Sprintf(entityUserPromptTemplate, contextText, textContent)

	result, usage, err := e.agent.Run(ctx, prompt)
	if err != nil {
		return nil, usage, nil
	}
	return result.Entities, usage, nil
}

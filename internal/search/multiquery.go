package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

const multiQuerySystemPrompt = `You are an expert at reformulating search questions for a hybrid keyword and vector search engine over a knowledge graph.
Given a user's question, produce a small number of alternative phrasings that preserve its meaning but vary the wording, synonyms, and level of detail, so that keyword and semantic search both have a better chance of matching relevant content.
Do not answer the question. Do not invent new questions about unrelated topics. Keep each alternative a single, self-contained question.`

const multiQueryUserPromptTemplate = `Today's date is %s (a %s).

Generate up to %d alternative phrasings of the following user question, suitable for searching a knowledge graph. Return only the alternative questions, not the original.

Original user question:
%s`

type alternativeQuery struct {
	Query string `json:"query"`
}

type alternativeQueriesList struct {
	AlternativeQueries []alternativeQuery `json:"alternative_queries"`
}

// MultiQueryGenerator expands a user query into alternative phrasings
// before fan-out search, a Go port of
// graphforrag_core/multi_query_generator.py::MultiQueryGenerator.
type MultiQueryGenerator struct {
	agent *llmfacade.Agent[alternativeQueriesList]
}

// NewMultiQueryGenerator builds a MultiQueryGenerator over an
// already-assembled fallback model.
func NewMultiQueryGenerator(model *llmfacade.FallbackModel, log *slog.Logger) *MultiQueryGenerator {
	return &MultiQueryGenerator{
		agent: llmfacade.NewAgent[alternativeQueriesList](model, multiQuerySystemPrompt, log),
	}
}

// GenerateAlternativeQueries returns up to maxAlternativeQuestions
// reformulations of originalQuery, deduplicated and excluding anything
// that case-insensitively matches the original, a Go port of
// generate_alternative_queries. An empty (after trimming) originalQuery
// returns (nil, zero usage, nil) without calling the model.
func (g *MultiQueryGenerator) GenerateAlternativeQueries(ctx context.Context, originalQuery string, maxAlternativeQuestions int) ([]string, llmfacade.Usage, error) {
	if strings.TrimSpace(originalQuery) == "" {
		return nil, llmfacade.Usage{}, nil
	}
	now := time.Now().UTC()
	prompt := fmt.Sprintf(multiQueryUserPromptTemplate, now.Format("2006-01-02"), now.Weekday().String(), maxAlternativeQuestions, originalQuery)

	result, usage, err := g.agent.Run(ctx, prompt)
	if err != nil {
		return nil, usage, nil
	}

	seen := map[string]bool{}
	normalizedOriginal := strings.ToLower(strings.TrimSpace(originalQuery))
	var alternatives []string
	for _, alt := range result.AlternativeQueries {
		if len(alternatives) >= maxAlternativeQuestions {
			break
		}
		trimmed := strings.TrimSpace(alt.Query)
		if trimmed == "" {
			continue
		}
		if strings.ToLower(trimmed) == normalizedOriginal {
			continue
		}
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		alternatives = append(alternatives, trimmed)
	}
	return alternatives, usage, nil
}

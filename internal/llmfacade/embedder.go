package llmfacade

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// EmbedderClient is the abstract embedding backend, a Go port of
// graphforrag_core/embedder_client.py's EmbedderClient base class.
type EmbedderClient interface {
	// Embed returns one vector per input text, in order. On a partial
	// failure it returns as many vectors as it could produce alongside
	// ErrEmbedding-wrapped error; callers keep the item full-text
	// indexable and skip it for vector search (spec.md §7).
	Embed(ctx context.Context, texts []string) ([][]float32, Usage, error)
	// Dimensions reports the vector width this embedder produces.
	Dimensions() int
}

// EmbedderConfig configures an EmbedderClient, matching the field names of
// internal/retrievers/retrievers.go's EmbedderConfig and
// graphforrag_core/embedder_client.py's EmbedderConfig.
type EmbedderConfig struct {
	Provider   string
	Model      string
	Dimensions int
	APIKey     string
}

// OpenAIEmbedder is the default embedder, grounded on
// graphforrag_core/openai_embedder.py.
type OpenAIEmbedder struct {
	client openai.Client
	model  string
	dims   int
}

// NewOpenAIEmbedder constructs the default embedder. model defaults to
// "text-embedding-3-small" (1536 dimensions) when cfg.Model is empty.
func NewOpenAIEmbedder(cfg EmbedderConfig) *OpenAIEmbedder {
	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}
	dims := cfg.Dimensions
	if dims == 0 {
		dims = 1536
	}
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(opts...),
		model:  model,
		dims:   dims,
	}
}

func (e *OpenAIEmbedder) Dimensions() int { return e.dims }

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, Usage, error) {
	if len(texts) == 0 {
		return nil, Usage{}, nil
	}
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, Usage{}, fmt.Errorf("embed %d texts: %w: %w", len(texts), ErrEmbedding, err)
	}

	out := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, f := range d.Embedding {
			vec[i] = float32(f)
		}
		out[d.Index] = vec
	}
	usage := Usage{
		Requests:      1,
		RequestTokens: int(resp.Usage.PromptTokens),
		TotalTokens:   int(resp.Usage.TotalTokens),
	}
	return out, usage, nil
}

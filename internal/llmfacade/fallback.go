package llmfacade

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"google.golang.org/genai"
)

// Model is one rung of a fallback chain: a chat-completion backend capable
// of producing text for a system+user prompt pair. Concrete
// implementations wrap one provider SDK each.
type Model interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, userPrompt string) (text string, usage Usage, err error)
}

// FallbackModel tries each Model in order, returning the first success.
// A Go port of files/llm_models.py's FallbackModel composition: every
// rung is attempted before giving up, and a failure on one rung is logged,
// not propagated.
type FallbackModel struct {
	models []Model
	log    *slog.Logger
}

func (f *FallbackModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, Usage, error) {
	var lastErr error
	for _, m := range f.models {
		text, usage, err := m.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, usage, nil
		}
		lastErr = err
		if f.log != nil {
			f.log.Warn("llm model failed, trying next in fallback chain", "model", m.Name(), "error", err)
		}
	}
	if lastErr == nil {
		lastErr = ErrNoModelsAvailable
	}
	return "", Usage{}, fmt.Errorf("all fallback models failed: %w: %w", ErrLLM, lastErr)
}

// BuildFallbackModel constructs a FallbackModel from a list of requested
// model names, a direct architectural port of
// files/llm_models.py::setup_fallback_model: a provider client is only
// constructed if at least one requested model needs it and its API key or
// endpoint is configured via environment variables. Unlike the Python
// original, failure returns a proper error (ErrNoModelsAvailable) instead
// of a sentinel string. The hardcoded RunPod proxy URL the original uses
// for its Ollama rung is specific to that author's infrastructure and has
// no place in a portable Go library; the Ollama-style rung here reads its
// base URL from GRAPHFORRAG_OLLAMA_BASE_URL instead.
func BuildFallbackModel(modelNames []string, log *slog.Logger) (*FallbackModel, error) {
	if log == nil {
		log = slog.Default()
	}
	var models []Model

	for _, name := range modelNames {
		switch {
		case isAnthropicModel(name):
			key := os.Getenv("ANTHROPIC_API_KEY")
			if key == "" {
				log.Warn("ANTHROPIC_API_KEY not set, skipping model", "model", name)
				continue
			}
			models = append(models, &anthropicModel{
				name:   name,
				client: anthropic.NewClient(anthropicoption.WithAPIKey(key)),
			})
		case isOpenAIModel(name):
			key := os.Getenv("OPENAI_API_KEY")
			if key == "" {
				log.Warn("OPENAI_API_KEY not set, skipping model", "model", name)
				continue
			}
			models = append(models, &openAIModel{
				name:   name,
				client: openai.NewClient(openaioption.WithAPIKey(key)),
			})
		case isGeminiModel(name):
			key := os.Getenv("GEMINI_API_KEY")
			if key == "" {
				log.Warn("GEMINI_API_KEY not set, skipping model", "model", name)
				continue
			}
			client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: key, Backend: genai.BackendGeminiAPI})
			if err != nil {
				log.Warn("failed to initialize gemini client, skipping model", "model", name, "error", err)
				continue
			}
			models = append(models, &geminiModel{name: name, client: client})
		case isOllamaModel(name):
			base := os.Getenv("GRAPHFORRAG_OLLAMA_BASE_URL")
			if base == "" {
				log.Warn("GRAPHFORRAG_OLLAMA_BASE_URL not set, skipping model", "model", name)
				continue
			}
			models = append(models, &openAIModel{
				name:   name,
				client: openai.NewClient(openaioption.WithBaseURL(base)),
			})
		default:
			log.Warn("model not recognized, skipping", "model", name)
		}
	}

	if len(models) == 0 {
		return nil, ErrNoModelsAvailable
	}
	return &FallbackModel{models: models, log: log}, nil
}

func isAnthropicModel(name string) bool {
	switch name {
	case "claude-opus-4", "claude-sonnet-4", "claude-3-5-haiku":
		return true
	}
	return false
}

func isOpenAIModel(name string) bool {
	switch name {
	case "gpt-4o-mini", "gpt-4.1-mini", "gpt-4.1", "gpt-4o", "o3-mini":
		return true
	}
	return false
}

func isGeminiModel(name string) bool {
	switch name {
	case "gemini-2.0-flash", "gemini-2.5-flash", "gemini-2.5-pro":
		return true
	}
	return false
}

func isOllamaModel(name string) bool {
	return len(name) > 7 && name[:7] == "ollama/"
}

package llmfacade

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Agent binds a FallbackModel to one system prompt and a JSON output
// shape, the Go equivalent of pydantic_ai's
// Agent(output_type=SomeSchema, model=llm_client, system_prompt=...). Every
// call site in extraction/resolver/search constructs one Agent per typed
// output it needs.
type Agent[T any] struct {
	Model        *FallbackModel
	SystemPrompt string
	Log          *slog.Logger
}

// NewAgent constructs a typed-output agent.
func NewAgent[T any](model *FallbackModel, systemPrompt string, log *slog.Logger) *Agent[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Agent[T]{Model: model, SystemPrompt: systemPrompt, Log: log}
}

// Run sends userPrompt, asks the model to answer with a single JSON object
// matching T (the system prompt is expected to already instruct the model
// to respond with JSON only), and decodes the result. On any failure —
// model failure or malformed JSON — it logs and returns the zero value of
// T with a non-nil error wrapping ErrLLM, never panicking; callers treat
// this the same way the Python original treats any exception from
// agent.run(): fall back to an empty/conservative result (spec.md §7).
func (a *Agent[T]) Run(ctx context.Context, userPrompt string) (T, Usage, error) {
	var zero T
	if a.Model == nil {
		return zero, Usage{}, fmt.Errorf("agent has no model configured: %w", ErrLLM)
	}

	text, usage, err := a.Model.Complete(ctx, a.SystemPrompt, userPrompt)
	if err != nil {
		a.Log.Error("agent run failed", "error", err)
		return zero, usage, err
	}

	var out T
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil {
		a.Log.Error("agent output failed to parse as JSON", "error", err, "text", text)
		return zero, usage, fmt.Errorf("parse agent output: %w: %w", ErrLLM, err)
	}
	return out, usage, nil
}

// extractJSON trims common wrapping noise (markdown code fences) that chat
// models add around a JSON payload even when instructed not to.
func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

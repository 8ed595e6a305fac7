package llmfacade

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v2"
	"google.golang.org/genai"
)

type anthropicModel struct {
	name   string
	client anthropic.Client
}

func (m *anthropicModel) Name() string { return m.name }

func (m *anthropicModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, Usage, error) {
	resp, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.name),
		MaxTokens: 4096,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", Usage{}, fmt.Errorf("anthropic completion (%s): %w: %w", m.name, ErrLLM, err)
	}
	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	usage := Usage{
		Requests:       1,
		RequestTokens:  int(resp.Usage.InputTokens),
		ResponseTokens: int(resp.Usage.OutputTokens),
		TotalTokens:    int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}
	return text, usage, nil
}

type openAIModel struct {
	name   string
	client openai.Client
}

func (m *openAIModel) Name() string { return m.name }

func (m *openAIModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, Usage, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: m.name,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", Usage{}, fmt.Errorf("openai completion (%s): %w: %w", m.name, ErrLLM, err)
	}
	if len(resp.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("openai completion (%s) returned no choices: %w", m.name, ErrLLM)
	}
	usage := Usage{
		Requests:       1,
		RequestTokens:  int(resp.Usage.PromptTokens),
		ResponseTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:    int(resp.Usage.TotalTokens),
	}
	return resp.Choices[0].Message.Content, usage, nil
}

type geminiModel struct {
	name   string
	client *genai.Client
}

func (m *geminiModel) Name() string { return m.name }

func (m *geminiModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, Usage, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.name,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser)},
	)
	if err != nil {
		return "", Usage{}, fmt.Errorf("gemini completion (%s): %w: %w", m.name, ErrLLM, err)
	}
	usage := Usage{Requests: 1}
	if resp.UsageMetadata != nil {
		usage.RequestTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.ResponseTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return resp.Text(), usage, nil
}

package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic generates text with the Anthropic Messages API.
type Anthropic struct {
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
}

// NewAnthropic creates a client from cfg. The SDK's built-in retries are
// turned off.
func NewAnthropic(cfg Config, extra ...option.RequestOption) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &Anthropic{
		client:      anthropic.NewClient(opts...),
		model:       anthropic.Model(model),
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.temperature(),
	}
}

// Generate sends prompt as a single user message and returns the first text block.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		Temperature: anthropic.Float(a.temperature),
		System:      []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: anthropic: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("llm: anthropic: no content blocks")
	}
	content := message.Content[0]
	if content.Type != "text" {
		return "", fmt.Errorf("llm: anthropic: unexpected block type %s", content.Type)
	}
	return content.Text, nil
}

package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 2048

// AnthropicGenerator calls the Anthropic Messages API.
type AnthropicGenerator struct {
	client    anthropic.Client
	modelName string
}

func NewAnthropicGenerator(apiKey, modelName string) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		modelName: modelName,
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.modelName),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemInstruction}}
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	usage := TokenUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
		TotalTokens:  message.Usage.InputTokens + message.Usage.OutputTokens,
	}
	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			return &Response{
				Text:         block.Text,
				Usage:        usage,
				ModelName:    g.modelName,
				ModelVersion: string(message.Model),
				Latency:      time.Since(startTime),
				GeneratedAt:  time.Now(),
			}, nil
		}
	}
	return nil, ErrEmptyResponse
}

// Package llm wraps the external text-generation services used for review
// classification and manager briefings behind a single TextGenerator interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"savoriq/config"
)

// Request is one prompt sent to a text-generation model.
type Request struct {
	// Purpose labels the call for logs and metrics ("sentiment", "briefing").
	Purpose           string
	SystemInstruction string
	Prompt            string
	// JSON asks the provider for a raw JSON response when it supports it.
	JSON bool
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// Response is the raw text returned by a model plus call metadata.
type Response struct {
	Text         string        `json:"text"`
	Usage        TokenUsage    `json:"token_usage"`
	ModelName    string        `json:"model_name"`
	ModelVersion string        `json:"model_version"`
	Latency      time.Duration `json:"latency"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

// TextGenerator sends a prompt to an external model and returns its text.
type TextGenerator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

var (
	ErrMissingAPIKey       = errors.New("llm api key is not set")
	ErrUnsupportedProvider = errors.New("unsupported llm provider")
	ErrEmptyResponse       = errors.New("llm returned an empty response")
)

// NewFromConfig 는 설정된 provider 에 맞는 TextGenerator 를 만든다.
// 키가 없으면 ErrMissingAPIKey 를 반환하며, 호출자는 휴리스틱 경로로 동작해야 한다.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (TextGenerator, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch cfg.ProviderName() {
	case config.ProviderGoogle:
		return NewGeminiGenerator(ctx, apiKey, cfg.Model())
	case config.ProviderAnthropic:
		return NewAnthropicGenerator(apiKey, cfg.Model()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

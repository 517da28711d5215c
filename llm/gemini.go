package llm

import (
	"context"
	"time"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini API through google.golang.org/genai.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client, modelName: modelName}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	genCfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
	}
	if req.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}

	result, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrEmptyResponse
	}

	text := result.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	resp := &Response{
		Text:         text,
		ModelName:    g.modelName,
		ModelVersion: result.ModelVersion,
		Latency:      time.Since(startTime),
		GeneratedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		resp.Usage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"savoriq/config"
	"savoriq/sentiment"
	"savoriq/services"
)

func TestNewGeneratorWithoutCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	gen := NewGenerator(context.Background(), config.LLMConfig{}, nil)
	assert.Nil(t, gen)
}

func TestNewGeneratorUnsupportedProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	gen := NewGenerator(context.Background(), config.LLMConfig{Provider: "openai"}, nil)
	assert.Nil(t, gen)
}

func TestNewGeneratorAnthropic(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "key")
	gen := NewGenerator(context.Background(), config.LLMConfig{Provider: config.ProviderAnthropic}, nil)
	assert.NotNil(t, gen)
}

func TestDispatcherWithoutBrokerIsInline(t *testing.T) {
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")
	a := &App{Sentiment: services.NewSentimentService(sentiment.Heuristic{}, nil, nil)}
	d, err := a.Dispatcher("api")
	assert.NoError(t, err)
	assert.Equal(t, a.Sentiment, d)
}

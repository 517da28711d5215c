package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
logging:
  level: debug
llm:
  provider: Anthropic
  timeout_seconds: 5
api:
  cors_origins: ["http://localhost:3000"]
briefing:
  utc_offset_hours: -5
`)
	c, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, ProviderAnthropic, c.LLM.ProviderName())
	assert.Equal(t, defaultAnthropicModel, c.LLM.Model())
	assert.Equal(t, 5*time.Second, c.LLM.Timeout())
	assert.Equal(t, ":8080", c.API.ListenAddr())
	assert.Equal(t, []string{"http://localhost:3000"}, c.API.CORSOrigins)
	assert.Equal(t, 10, c.Briefing.Snippets())

	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, c.Briefing.Location()).Zone()
	assert.Equal(t, -5*60*60, offset)
}

func TestLLMDefaults(t *testing.T) {
	var c LLMConfig
	assert.Equal(t, ProviderGoogle, c.ProviderName())
	assert.Equal(t, defaultGeminiModel, c.Model())
	assert.Equal(t, defaultLLMTimeout, c.Timeout())
}

func TestCredentialPresentFollowsProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	assert.False(t, LLMConfig{Provider: "google"}.CredentialPresent())
	assert.True(t, LLMConfig{Provider: "anthropic"}.CredentialPresent())

	t.Setenv("GEMINI_API_KEY", "   ")
	assert.False(t, LLMConfig{}.CredentialPresent())
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("logging: [unclosed"))
	assert.Error(t, err)
}

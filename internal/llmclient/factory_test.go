package llmclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// -- Test Cases: Factory Initialization (NewClient) --

func TestNewClient_Providers(t *testing.T) {
	logger, _ := setupTestLogger(t)
	ctx := context.Background()

	ollamaCfg := getValidLLMConfig(config.DefaultOllamaURL)
	client, err := NewClient(ctx, ollamaCfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	assert.IsType(t, &OllamaClient{}, client)

	// An unset provider means Ollama.
	ollamaCfg.Provider = ""
	client, err = NewClient(ctx, ollamaCfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &OllamaClient{}, client)

	openaiCfg := getValidLLMConfig("http://localhost:11434/v1")
	openaiCfg.Provider = config.ProviderOpenAI
	client, err = NewClient(ctx, openaiCfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)

	geminiCfg := getValidLLMConfig("")
	geminiCfg.Provider = config.ProviderGemini
	geminiCfg.APIKey = "test-api-key"
	client, err = NewClient(ctx, geminiCfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, client)
}

func TestNewClient_WrapsWithRateLimiter(t *testing.T) {
	logger, _ := setupTestLogger(t)
	cfg := getValidLLMConfig(config.DefaultOllamaURL)
	cfg.RequestsPerSecond = 2

	client, err := NewClient(context.Background(), cfg, logger)
	require.NoError(t, err)
	limited, ok := client.(*RateLimitedClient)
	require.True(t, ok, "expected a *RateLimitedClient, got %T", client)
	assert.IsType(t, &OllamaClient{}, limited.inner)
}

func TestNewClient_Errors(t *testing.T) {
	logger, _ := setupTestLogger(t)

	cfg := getValidLLMConfig(config.DefaultOllamaURL)
	cfg.Provider = "anthropic-local"
	_, err := NewClient(context.Background(), cfg, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown or unsupported LLM provider")

	_, err = NewClient(context.Background(), getValidLLMConfig(""), logger)
	assert.Error(t, err, "missing endpoint should surface from the constructor")
}

func TestNewClient_TranslatesDefaultEndpoint(t *testing.T) {
	logger, _ := setupTestLogger(t)

	cfg := getValidLLMConfig(config.DefaultOllamaURL)
	cfg.Provider = config.ProviderOpenAI
	client, err := NewClient(context.Background(), cfg, logger)
	require.NoError(t, err)

	openaiClient, ok := client.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, defaultOpenAICompatURL, openaiClient.endpoint)
}

// -- internal/llmclient/factory.go --
package llmclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// defaultOpenAICompatURL is Ollama's OpenAI-compatible API base.
const defaultOpenAICompatURL = "http://localhost:11434/v1"

// NewClient is a factory function that creates an LLMClient based on the configuration.
// A positive RequestsPerSecond wraps the client in a RateLimitedClient.
func NewClient(ctx context.Context, cfg config.LLMModelConfig, logger *zap.Logger) (schemas.LLMClient, error) {
	var (
		client schemas.LLMClient
		err    error
	)

	// The endpoint default targets Ollama's native API; other providers
	// translate it to their own defaults.
	switch cfg.Provider {
	case config.ProviderOllama, "":
		client, err = NewOllamaClient(cfg, logger)
	case config.ProviderOpenAI:
		if cfg.Endpoint == config.DefaultOllamaURL {
			cfg.Endpoint = defaultOpenAICompatURL
		}
		client, err = NewOpenAIClient(cfg, logger)
	case config.ProviderGemini:
		if cfg.Endpoint == config.DefaultOllamaURL {
			cfg.Endpoint = ""
		}
		client, err = NewGeminiClient(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown or unsupported LLM provider configured: '%s'. Supported: [%s, %s, %s]",
			cfg.Provider, config.ProviderOllama, config.ProviderOpenAI, config.ProviderGemini)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerSecond > 0 {
		client = NewRateLimitedClient(client, cfg.RequestsPerSecond, logger)
	}
	return client, nil
}

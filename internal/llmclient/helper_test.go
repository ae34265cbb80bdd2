package llmclient

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// setupTestLogger is a helper to create a zap logger for testing with an observer.
func setupTestLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// getValidLLMConfig returns a valid LLMModelConfig pointed at endpoint.
func getValidLLMConfig(endpoint string) config.LLMModelConfig {
	return config.LLMModelConfig{
		Provider:   config.ProviderOllama,
		Model:      "gemma3:4b",
		Endpoint:   endpoint,
		APITimeout: 5 * time.Second,
	}
}

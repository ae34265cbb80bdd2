// internal/llmclient/openai_client.go
package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// OpenAIClient implements schemas.LLMClient for OpenAI-compatible chat
// completion servers: Ollama's /v1 endpoint, llama.cpp server, vLLM, or
// the hosted API.
type OpenAIClient struct {
	client     *openai.Client
	httpClient *http.Client
	endpoint   string
	model      string
	logger     *zap.Logger
	config     config.LLMModelConfig
}

// NewOpenAIClient initializes the client. The endpoint is the API base URL,
// e.g. "http://localhost:11434/v1".
func NewOpenAIClient(cfg config.LLMModelConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("openai-compatible endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai-compatible model is required")
	}

	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	// Local servers ignore the key, but the header must still be well formed.
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "ollama"
	}
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	clientCfg.HTTPClient = httpClient

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(clientCfg),
		httpClient: httpClient,
		endpoint:   clientCfg.BaseURL,
		model:      cfg.Model,
		config:     cfg,
		logger:     logger.Named("llm_client.openai"),
	}, nil
}

// Generate sends a single non-streaming chat completion and returns the
// trimmed content of the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})

	temperature := req.Options.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}
	maxTokens := req.Options.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}

	c.logger.Debug("Querying inference service", zap.String("endpoint", c.endpoint), zap.String("model", c.model))
	startTime := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", c.classify(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", malformed("response has no choices", nil)
	}

	c.logger.Debug("LLM generation complete (OpenAI-compatible)",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) classify(ctx context.Context, err error) *schemas.InferenceError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		ie := schemas.NewInferenceError(schemas.FailureServiceError,
			fmt.Sprintf("service returned status %d", apiErr.HTTPStatusCode), err)
		ie.StatusCode = apiErr.HTTPStatusCode
		return ie
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		ie := schemas.NewInferenceError(schemas.FailureServiceError,
			fmt.Sprintf("service returned status %d", reqErr.HTTPStatusCode), err)
		ie.StatusCode = reqErr.HTTPStatusCode
		return ie
	}

	// Transport failures surface as *url.Error; anything else came from
	// decoding the body.
	var urlErr *url.Error
	if errors.As(err, &urlErr) || ctx.Err() != nil {
		return classifyTransportError(ctx, c.endpoint, err)
	}
	return malformed("failed to decode chat completion", err)
}

// Close releases idle connections.
func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

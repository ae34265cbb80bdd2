// internal/llmclient/gemini_client.go
package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// GeminiClient implements schemas.LLMClient for the Google Gemini API.
type GeminiClient struct {
	client     *genai.Client
	httpClient *http.Client
	model      string
	logger     *zap.Logger
	config     config.LLMModelConfig
}

// NewGeminiClient initializes the client. An empty endpoint uses the SDK's
// default base URL.
func NewGeminiClient(ctx context.Context, cfg config.LLMModelConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API Key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		httpClient: httpClient,
		model:      cfg.Model,
		config:     cfg,
		logger:     logger.Named("llm_client.gemini"),
	}, nil
}

// Generate sends the prompt as a single-turn request.
func (c *GeminiClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	genCfg := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	temperature := req.Options.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}
	if temperature != 0 {
		genCfg.Temperature = genai.Ptr(float32(temperature))
	}
	maxTokens := req.Options.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	if maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(maxTokens)
	}

	c.logger.Debug("Querying inference service", zap.String("model", c.model))
	startTime := time.Now()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserPrompt), genCfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			ie := schemas.NewInferenceError(schemas.FailureServiceError,
				fmt.Sprintf("service returned status %d: %s", apiErr.Code, apiErr.Message), err)
			ie.StatusCode = apiErr.Code
			return "", ie
		}
		return "", classifyTransportError(ctx, "gemini", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", malformed("response has no candidates", nil)
	}

	if resp.UsageMetadata != nil {
		c.logger.Debug("LLM generation complete (Gemini)",
			zap.Duration("duration", time.Since(startTime)),
			zap.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount),
		)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Close releases idle connections.
func (c *GeminiClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

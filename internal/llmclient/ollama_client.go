// internal/llmclient/ollama_client.go
package llmclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
	"github.com/xkilldash9x/guided-explorer/internal/llmutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxResponseBytes bounds how much of a reply body is read.
const maxResponseBytes = 1 << 20

// OllamaClient implements schemas.LLMClient against Ollama's native chat API.
// Each call is an independent, non-streaming request; the client holds no
// per-conversation state and is safe for concurrent use.
type OllamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
	config     config.LLMModelConfig
}

// -- Ollama API Request/Response Structures --

type ollamaMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type ollamaOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model           string         `json:"model"`
	Message         *ollamaMessage `json:"message"`
	Done            bool           `json:"done"`
	Error           string         `json:"error"`
	PromptEvalCount int            `json:"prompt_eval_count"`
	EvalCount       int            `json:"eval_count"`
}

// NewOllamaClient initializes the client. A bare host endpoint such as
// "http://localhost:11434" is completed with the /api/chat path.
func NewOllamaClient(cfg config.LLMModelConfig, logger *zap.Logger) (*OllamaClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ollama endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	endpoint, err := chatEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}

	return &OllamaClient{
		endpoint: endpoint,
		model:    cfg.Model,
		config:   cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("llm_client.ollama"),
	}, nil
}

func chatEndpoint(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid ollama endpoint %q", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/api/chat"
	}
	return u.String(), nil
}

// Generate sends the prompt as the single user message and returns the
// trimmed reply. Every failure is returned as a *schemas.InferenceError.
func (c *OllamaClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	body, err := json.Marshal(c.buildRequestPayload(req))
	if err != nil {
		return "", malformed("failed to marshal request payload", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", classifyTransportError(ctx, c.endpoint, fmt.Errorf("failed to create HTTP request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	c.logger.Debug("Querying inference service", zap.String("endpoint", c.endpoint), zap.String("model", c.model))

	startTime := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(ctx, c.endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		// A body cut short by the deadline is a timeout, not a partial success.
		return "", classifyTransportError(ctx, c.endpoint, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Inference service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("response", llmutil.Truncate(string(respBody), 256)))
		return "", statusError(resp.StatusCode, respBody)
	}

	var payload ollamaChatResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", malformed("failed to decode response payload", err)
	}
	if payload.Error != "" {
		return "", malformed("response carried an error: "+payload.Error, nil)
	}
	if payload.Message == nil || payload.Message.Content == nil {
		return "", malformed("response is missing message.content", nil)
	}

	c.logger.Debug("LLM generation complete (Ollama)",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("prompt_tokens", payload.PromptEvalCount),
		zap.Int("completion_tokens", payload.EvalCount),
	)

	return strings.TrimSpace(*payload.Message.Content), nil
}

func (c *OllamaClient) buildRequestPayload(req schemas.GenerationRequest) ollamaChatRequest {
	var messages []ollamaMessage
	if req.SystemPrompt != "" {
		system := req.SystemPrompt
		messages = append(messages, ollamaMessage{Role: "system", Content: &system})
	}
	user := req.UserPrompt
	messages = append(messages, ollamaMessage{Role: "user", Content: &user})

	payload := ollamaChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	}

	temperature := req.Options.Temperature
	if temperature == 0 {
		temperature = c.config.Temperature
	}
	maxTokens := req.Options.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	if temperature != 0 || maxTokens != 0 {
		payload.Options = &ollamaOptions{NumPredict: maxTokens}
		if temperature != 0 {
			payload.Options.Temperature = &temperature
		}
	}
	return payload
}

// Close releases idle connections.
func (c *OllamaClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

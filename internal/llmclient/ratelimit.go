package llmclient

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
)

// RateLimitedClient spaces out requests to an inner client. Waiting for a
// token honours the caller's context; if the context ends first the query
// fails with FailureTimeout.
type RateLimitedClient struct {
	inner   schemas.LLMClient
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRateLimitedClient wraps inner with a limiter allowing rps requests per
// second and a burst of one.
func NewRateLimitedClient(inner schemas.LLMClient, rps float64, logger *zap.Logger) *RateLimitedClient {
	return &RateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.Named("llm_client.ratelimit"),
	}
}

func (c *RateLimitedClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Debug("Rate limiter wait aborted", zap.Error(err))
		return "", schemas.NewInferenceError(schemas.FailureTimeout, "rate limiter wait aborted", err)
	}
	return c.inner.Generate(ctx, req)
}

func (c *RateLimitedClient) Close() error {
	return c.inner.Close()
}

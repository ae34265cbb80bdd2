package llmclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/mocks"
)

func TestRateLimitedClient_DelegatesAndCloses(t *testing.T) {
	logger, _ := setupTestLogger(t)
	inner := new(mocks.MockLLMClient)
	inner.On("Generate", mock.Anything, mock.Anything).Return("4", nil).Once()
	inner.On("Close").Return(nil).Once()

	client := NewRateLimitedClient(inner, 100, logger)
	got, err := client.Generate(context.Background(), schemas.GenerationRequest{UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "4", got)
	require.NoError(t, client.Close())

	inner.AssertExpectations(t)
}

func TestRateLimitedClient_WaitAbortedIsTimeout(t *testing.T) {
	logger, _ := setupTestLogger(t)
	inner := new(mocks.MockLLMClient)
	inner.On("Generate", mock.Anything, mock.Anything).Return("0", nil).Once()

	// One request every ten seconds: the second call cannot get a token
	// before its deadline.
	client := NewRateLimitedClient(inner, 0.1, logger)
	_, err := client.Generate(context.Background(), schemas.GenerationRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Generate(ctx, schemas.GenerationRequest{})
	requireFailureKind(t, err, schemas.FailureTimeout)

	inner.AssertNumberOfCalls(t, "Generate", 1)
}

package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/llmutil"
)

// classifyTransportError maps an error from the HTTP round trip onto the
// inference failure taxonomy. ctx is the query context; its state decides
// between a timeout and a plain connectivity failure when the transport
// error itself is ambiguous.
func classifyTransportError(ctx context.Context, endpoint string, err error) *schemas.InferenceError {
	var ie *schemas.InferenceError
	if errors.As(err, &ie) {
		return ie
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return schemas.NewInferenceError(schemas.FailureTimeout, "request to "+endpoint+" timed out", err)
	}
	// Cancellation is handled like expiry: the query produced nothing usable.
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return schemas.NewInferenceError(schemas.FailureTimeout, "request to "+endpoint+" was cancelled", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return schemas.NewInferenceError(schemas.FailureTimeout, "request to "+endpoint+" timed out", err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return schemas.NewInferenceError(schemas.FailureServiceUnavailable,
			fmt.Sprintf("could not connect to %s; make sure the inference service is running (ollama serve)", endpoint), err)
	}

	return schemas.NewInferenceError(schemas.FailureServiceUnavailable, "request to "+endpoint+" failed", err)
}

// statusError builds a FailureServiceError for a non-success HTTP status.
func statusError(status int, body []byte) *schemas.InferenceError {
	ie := schemas.NewInferenceError(schemas.FailureServiceError,
		fmt.Sprintf("service returned status %d: %s", status, llmutil.Truncate(string(body), 256)), nil)
	ie.StatusCode = status
	return ie
}

func malformed(msg string, cause error) *schemas.InferenceError {
	return schemas.NewInferenceError(schemas.FailureMalformedResponse, msg, cause)
}

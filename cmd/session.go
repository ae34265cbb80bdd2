package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/agent"
	"github.com/xkilldash9x/guided-explorer/internal/config"
	"github.com/xkilldash9x/guided-explorer/internal/llmclient"
	"github.com/xkilldash9x/guided-explorer/internal/trace"
)

// newSession wires an inference client and a decision engine for one
// exploration session. The engine owns the client; Stop closes it.
func newSession(ctx context.Context, cfg config.Interface, logger *zap.Logger) (*agent.Engine, error) {
	client, err := llmclient.NewClient(ctx, cfg.LLM(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}
	return agent.NewEngine(client, cfg.LLM(), cfg.Explorer(), logger), nil
}

// readSnapshot decodes a single snapshot document from path, or from stdin
// when path is "-".
func readSnapshot(stdin io.Reader, path string) (*schemas.Snapshot, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return trace.DecodeSnapshot(data)
}

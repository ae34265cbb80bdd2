// File: internal/agent/main_test.go
package agent_test

import (
	"os"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/guided-explorer/internal/config"
	"github.com/xkilldash9x/guided-explorer/internal/observability"
)

// TestMain initializes the global logger, runs the tests, and fails the
// package if any goroutine outlives them.
func TestMain(m *testing.M) {
	logConfig := config.NewDefaultConfig().Logger()
	logConfig.Level = "debug"
	logConfig.ServiceName = "test-suite"
	logConfig.Format = "console"

	observability.Initialize(logConfig, zapcore.Lock(os.Stdout))

	goleak.VerifyTestMain(m, goleak.Cleanup(func(exitCode int) {
		observability.Sync()
		observability.ResetForTest()
		os.Exit(exitCode)
	}))
}

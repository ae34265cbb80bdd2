// File: cmd/main_test.go
package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/guided-explorer/internal/config"
	"github.com/xkilldash9x/guided-explorer/internal/observability"
)

// TestMain initializes a quiet global logger before the commands try to.
func TestMain(m *testing.M) {
	logConfig := config.NewDefaultConfig().Logger()
	logConfig.Level = "error"
	logConfig.ServiceName = "test-suite"
	observability.Initialize(logConfig, zapcore.Lock(os.Stderr))

	exitCode := m.Run()

	observability.Sync()
	observability.ResetForTest()
	os.Exit(exitCode)
}

const loginSnapshot = `{"step":1,"screen":{"activity":"com.example.app/.auth.LoginActivity","depth":0,"package":"com.example.app"},"actions":[{"kind":"tap","text":"Login"},{"kind":"scroll","direction":"down"}]}`

// syncBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newOllamaStub serves Ollama chat replies with the given content.
func newOllamaStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"message":{"role":"assistant","content":"`+content+`"},"done":true}`)
	}))
	t.Cleanup(server.Close)
	return server
}

// writeFile writes content into a file in a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	// An explicit, empty config file keeps the developer's own config out of
	// the tests.
	root.SetArgs(append([]string{"--config", writeFile(t, "config.yaml", "logger:\n  level: error\n")}, args...))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

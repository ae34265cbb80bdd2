// File: internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/guided-explorer/api/schemas"
	"github.com/xkilldash9x/guided-explorer/internal/config"
)

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) LLM() config.LLMModelConfig {
	args := m.Called()
	return args.Get(0).(config.LLMModelConfig)
}

func (m *MockConfig) Explorer() config.ExplorerConfig {
	args := m.Called()
	return args.Get(0).(config.ExplorerConfig)
}

func (m *MockConfig) Replay() config.ReplayConfig {
	args := m.Called()
	return args.Get(0).(config.ReplayConfig)
}

// --- Setters ---

func (m *MockConfig) SetLLMEndpoint(s string) {
	m.Called(s)
}

func (m *MockConfig) SetLLMModel(s string) {
	m.Called(s)
}

func (m *MockConfig) SetExplorerAppPackage(s string) {
	m.Called(s)
}

func (m *MockConfig) SetReplayConcurrency(n int) {
	m.Called(n)
}

// -- LLM Client Mock --

// MockLLMClient mocks the schemas.LLMClient interface.
type MockLLMClient struct {
	mock.Mock
}

// Generate provides a mock function for LLM calls.
func (m *MockLLMClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

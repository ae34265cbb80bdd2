// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	LLM() LLMModelConfig
	Explorer() ExplorerConfig
	Replay() ReplayConfig

	SetLLMEndpoint(string)
	SetLLMModel(string)
	SetExplorerAppPackage(string)
	SetReplayConcurrency(int)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	LLMCfg      LLMModelConfig `mapstructure:"llm" yaml:"llm"`
	ExplorerCfg ExplorerConfig `mapstructure:"explorer" yaml:"explorer"`
	ReplayCfg   ReplayConfig   `mapstructure:"replay" yaml:"replay"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) LLM() LLMModelConfig      { return c.LLMCfg }
func (c *Config) Explorer() ExplorerConfig { return c.ExplorerCfg }
func (c *Config) Replay() ReplayConfig     { return c.ReplayCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetLLMEndpoint(s string)        { c.LLMCfg.Endpoint = s }
func (c *Config) SetLLMModel(s string)           { c.LLMCfg.Model = s }
func (c *Config) SetExplorerAppPackage(s string) { c.ExplorerCfg.AppPackage = s }
func (c *Config) SetReplayConcurrency(n int)     { c.ReplayCfg.Concurrency = n }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// LLMProvider defines the supported inference providers.
type LLMProvider string

const (
	ProviderOllama LLMProvider = "ollama"
	ProviderOpenAI LLMProvider = "openai"
	ProviderGemini LLMProvider = "gemini"
)

// LLMModelConfig defines the inference service used for decisions.
type LLMModelConfig struct {
	Provider    LLMProvider   `mapstructure:"provider" yaml:"provider"`
	Model       string        `mapstructure:"model" yaml:"model"`
	APIKey      string        `mapstructure:"api_key" yaml:"-"`
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	APITimeout  time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	// RequestsPerSecond throttles queries; 0 disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// ExplorerConfig tunes the exploration state machine and prompt rendering.
type ExplorerConfig struct {
	// MaxRestarts is the restart count above which each further restart logs a warning.
	MaxRestarts int `mapstructure:"max_restarts" yaml:"max_restarts"`
	// MaxStepsOutside is the number of background steps tolerated before navigating back.
	MaxStepsOutside int `mapstructure:"max_steps_outside" yaml:"max_steps_outside"`
	// MaxStepsOutsideKill is the number of background steps after which the app is force-stopped.
	MaxStepsOutsideKill int `mapstructure:"max_steps_outside_kill" yaml:"max_steps_outside_kill"`
	// LabelMaxLength is the rune limit for labels and descriptions in prompts.
	LabelMaxLength int `mapstructure:"label_max_length" yaml:"label_max_length"`
	// AppPackage is used for lifecycle intents when a snapshot carries no package.
	AppPackage string `mapstructure:"app_package" yaml:"app_package"`
}

// ReplayConfig configures the trace replay command.
type ReplayConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// Default values shared by SetDefaults and tests.
const (
	DefaultOllamaURL           = "http://localhost:11434/api/chat"
	DefaultOllamaModel         = "gemma3:4b"
	DefaultAPITimeout          = 30 * time.Second
	DefaultMaxRestarts         = 5
	DefaultMaxStepsOutside     = 5
	DefaultMaxStepsOutsideKill = 10
	DefaultLabelMaxLength      = 30
)

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "guided-explorer")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- LLM --
	v.SetDefault("llm.provider", string(ProviderOllama))
	v.SetDefault("llm.model", DefaultOllamaModel)
	v.SetDefault("llm.endpoint", DefaultOllamaURL)
	v.SetDefault("llm.api_timeout", DefaultAPITimeout.String())
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.requests_per_second", 0.0)

	// -- Explorer --
	v.SetDefault("explorer.max_restarts", DefaultMaxRestarts)
	v.SetDefault("explorer.max_steps_outside", DefaultMaxStepsOutside)
	v.SetDefault("explorer.max_steps_outside_kill", DefaultMaxStepsOutsideKill)
	v.SetDefault("explorer.label_max_length", DefaultLabelMaxLength)

	// -- Replay --
	v.SetDefault("replay.concurrency", 4)
}

// BindEnvironment binds the well-known environment variables to their keys.
// OLLAMA_URL and OLLAMA_MODEL are honoured for compatibility with existing
// Ollama setups; the GUIDED_ prefixed names take precedence.
func BindEnvironment(v *viper.Viper) {
	_ = v.BindEnv("llm.endpoint", "GUIDED_LLM_ENDPOINT", "OLLAMA_URL")
	_ = v.BindEnv("llm.model", "GUIDED_LLM_MODEL", "OLLAMA_MODEL")
	_ = v.BindEnv("llm.api_key", "GUIDED_LLM_API_KEY")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	BindEnvironment(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Hosted providers commonly export their own key variable.
	if cfg.LLMCfg.APIKey == "" {
		switch cfg.LLMCfg.Provider {
		case ProviderGemini:
			cfg.LLMCfg.APIKey = os.Getenv("GEMINI_API_KEY")
		case ProviderOpenAI:
			cfg.LLMCfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.LLMCfg.Validate(); err != nil {
		return fmt.Errorf("llm configuration invalid: %w", err)
	}
	if err := c.ExplorerCfg.Validate(); err != nil {
		return fmt.Errorf("explorer configuration invalid: %w", err)
	}
	if c.ReplayCfg.Concurrency <= 0 {
		return fmt.Errorf("replay.concurrency must be a positive integer")
	}
	return nil
}

// Validate checks the LLM configuration.
func (l *LLMModelConfig) Validate() error {
	switch l.Provider {
	case ProviderOllama, ProviderOpenAI:
		if l.Endpoint == "" {
			return fmt.Errorf("endpoint is required for provider '%s'", l.Provider)
		}
	case ProviderGemini:
		if l.APIKey == "" {
			return fmt.Errorf("api_key is required for provider 'gemini'")
		}
	default:
		return fmt.Errorf("unknown provider '%s'. Supported: [%s, %s, %s]", l.Provider, ProviderOllama, ProviderOpenAI, ProviderGemini)
	}
	if l.Model == "" {
		return fmt.Errorf("model is required")
	}
	if l.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be a positive duration")
	}
	if l.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	return nil
}

// Validate checks the explorer thresholds.
func (e *ExplorerConfig) Validate() error {
	if e.MaxRestarts < 0 {
		return fmt.Errorf("max_restarts must not be negative")
	}
	if e.MaxStepsOutside < 0 {
		return fmt.Errorf("max_steps_outside must not be negative")
	}
	if e.MaxStepsOutsideKill < e.MaxStepsOutside {
		return fmt.Errorf("max_steps_outside_kill must be >= max_steps_outside")
	}
	if e.LabelMaxLength <= 0 {
		return fmt.Errorf("label_max_length must be a positive integer")
	}
	return nil
}

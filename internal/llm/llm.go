// Package llm provides single-shot text generation backends.
package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("llm: no provider configured")

// SystemPrompt frames every request as coming from a professional chef.
const SystemPrompt = "你是一位专业厨师，擅长根据现有食材创造美味的食谱。"

// Provider names accepted by New.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderDeepSeek  = "deepseek"
	ProviderNone      = "none"
)

// Defaults per provider.
const (
	DefaultAnthropicModel  = "claude-3-5-haiku-latest"
	DefaultOpenAIModel     = "gpt-3.5-turbo"
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultDeepSeekModel   = "deepseek-chat"
	DefaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	DefaultMaxTokens       = 1500
	DefaultTemperature     = 0.7
)

// TextGenerator turns a prompt into generated text. Implementations make a
// single attempt and never retry.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config selects and configures a backend.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	// Temperature is DefaultTemperature when nil; zero is a valid setting.
	Temperature *float64
}

// Float returns a pointer to v, for Config.Temperature.
func Float(v float64) *float64 { return &v }

func (c Config) temperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// New builds the generator named by cfg.Provider. A missing API key yields
// Disabled so callers fall back to canned output.
func New(cfg Config) TextGenerator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.APIKey == "" {
		return Disabled{}
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderAnthropic:
		return NewAnthropic(cfg)
	case ProviderOpenAI:
		return NewOpenAICompatible(withDefaults(cfg, DefaultOpenAIModel, DefaultOpenAIBaseURL))
	case ProviderDeepSeek:
		return NewOpenAICompatible(withDefaults(cfg, DefaultDeepSeekModel, DefaultDeepSeekBaseURL))
	default:
		return Disabled{}
	}
}

func withDefaults(cfg Config, model, baseURL string) Config {
	if cfg.Model == "" {
		cfg.Model = model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	return cfg
}

// Disabled always fails with ErrNotConfigured.
type Disabled struct{}

// Generate implements TextGenerator.
func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

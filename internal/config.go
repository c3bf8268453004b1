package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/smartchef/internal/agent"
	"github.com/starford/smartchef/internal/imagegen"
	"github.com/starford/smartchef/internal/llm"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Search rankers.
const (
	RankerIndex = "index"
	RankerLLM   = "llm"
	RankerFuzzy = "fuzzy"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Recipes RecipesConfig     `yaml:"recipes"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	LLM     LLMConfig         `yaml:"llm"`
	Image   ImageConfig       `yaml:"image"`
	Search  SearchConfig      `yaml:"search"`
	Agent   AgentConfig       `yaml:"agent"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for _, v := range []validation.Validatable{
		&c.App, &c.Recipes, &c.SQLite, &c.Auth, &c.LLM, &c.Image, &c.Search, &c.Agent,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// RecipesConfig holds the directory recipe files are stored in.
type RecipesConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the recipes configuration.
func (c *RecipesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// LLMConfig selects the text generation backend. An empty APIKey disables
// generation and every request falls back to canned recipes.
type LLMConfig struct {
	Provider    string   `yaml:"provider"`
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// Validate validates the LLM configuration.
func (c *LLMConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.In(
			llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderDeepSeek, llm.ProviderNone)),
		validation.Field(&c.MaxTokens, validation.Min(0)),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
	)
}

// Generator builds the configured text generator.
func (c *LLMConfig) Generator() llm.TextGenerator {
	return llm.New(llm.Config{
		Provider:    c.Provider,
		APIKey:      c.APIKey,
		Model:       c.Model,
		BaseURL:     c.BaseURL,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
}

// ImageConfig selects the image backend.
type ImageConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Size     string `yaml:"size"`
}

// Validate validates the image configuration.
func (c *ImageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.In(imagegen.ProviderUnsplash, imagegen.ProviderDALLE)),
	)
}

// Generator builds the configured image generator.
func (c *ImageConfig) Generator(logger *slog.Logger) imagegen.ImageGenerator {
	return imagegen.New(imagegen.Config{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		Size:     c.Size,
	}, logger)
}

// SearchConfig selects how saved recipes are ranked.
type SearchConfig struct {
	Ranker string `yaml:"ranker"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	if c.Ranker == "" {
		c.Ranker = RankerIndex
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Ranker, validation.In(RankerIndex, RankerLLM, RankerFuzzy)),
	)
}

// AgentConfig bounds the multi-step agent.
type AgentConfig struct {
	MaxRounds int `yaml:"max_rounds"`
}

// Validate validates the agent configuration.
func (c *AgentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxRounds, validation.Min(0), validation.Max(20)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Recipes: RecipesConfig{
			Dir: "./recipes",
		},
		SQLite: SQLiteConfig{
			Path: "./smartchef.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		LLM: LLMConfig{
			Provider:    llm.ProviderAnthropic,
			MaxTokens:   llm.DefaultMaxTokens,
			Temperature: llm.Float(llm.DefaultTemperature),
		},
		Image: ImageConfig{
			Provider: imagegen.ProviderUnsplash,
			Size:     imagegen.DefaultSize,
		},
		Search: SearchConfig{
			Ranker: RankerIndex,
		},
		Agent: AgentConfig{
			MaxRounds: agent.DefaultMaxRounds,
		},
	}
}

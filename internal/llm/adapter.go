package llm

import (
	"context"
	"os"
)

// Completer is the interface every chat-completion provider implements.
type Completer interface {
	// Name returns the provider identifier for logging.
	Name() string

	// Complete sends one system+user exchange and returns the reply text.
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Request is a single chat-completion call.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Completion is the provider's reply. Token counts are zero when the
// provider does not report usage.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Sampling parameters shared by every plan request.
const (
	Temperature      = 0.7
	WorkoutMaxTokens = 2000
	MealMaxTokens    = 3000
)

// Provider identifiers accepted in Config.Provider.
const (
	ProviderAuto      = "auto"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.0-flash"
)

// DefaultOpenAIBaseURL is used when no base URL is configured.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// Config holds configuration for the completers.
type Config struct {
	// Provider is one of auto, openai, anthropic, gemini.
	Provider string `yaml:"provider"`

	// Model overrides the provider's default model.
	Model string `yaml:"model"`

	// BaseURL points the OpenAI provider at any compatible endpoint.
	BaseURL string `yaml:"base_url"`

	// API keys; fall back to the provider's environment variable.
	OpenAIKey    string `yaml:"-"`
	AnthropicKey string `yaml:"-"`
	GeminiKey    string `yaml:"-"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAuto,
		BaseURL:  DefaultOpenAIBaseURL,
	}
}

func (c Config) openAIKey() string {
	if c.OpenAIKey != "" {
		return c.OpenAIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

func (c Config) anthropicKey() string {
	if c.AnthropicKey != "" {
		return c.AnthropicKey
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

func (c Config) geminiKey() string {
	if c.GeminiKey != "" {
		return c.GeminiKey
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("GOOGLE_API_KEY")
}

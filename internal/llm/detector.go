package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewCompleter builds the completer named by config.Provider.
// "auto" (or empty) picks the first provider with a key set:
// OpenAI > Anthropic > Gemini, then an installed claude or codex CLI.
func NewCompleter(ctx context.Context, config Config) (Completer, error) {
	switch strings.ToLower(config.Provider) {
	case "", ProviderAuto:
		return DetectBestCompleter(ctx, config)
	case ProviderOpenAI:
		return NewOpenAICompleter(config)
	case ProviderAnthropic:
		return NewAnthropicCompleter(config)
	case ProviderGemini:
		return NewGeminiCompleter(ctx, config)
	case ProviderClaudeCLI:
		return NewClaudeCLICompleter(config), nil
	case ProviderCodexCLI:
		return NewCodexCLICompleter(config), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q (want auto, openai, anthropic, gemini, claude-cli or codex-cli)", config.Provider)
}

// DetectBestCompleter finds the first provider with credentials.
func DetectBestCompleter(ctx context.Context, config Config) (Completer, error) {
	if config.openAIKey() != "" {
		return NewOpenAICompleter(config)
	}
	if config.anthropicKey() != "" {
		return NewAnthropicCompleter(config)
	}
	if config.geminiKey() != "" {
		return NewGeminiCompleter(ctx, config)
	}
	if c := NewClaudeCLICompleter(config); c.Available() {
		return c, nil
	}
	if c := NewCodexCLICompleter(config); c.Available() {
		return c, nil
	}
	return nil, fmt.Errorf("no LLM provider available - set OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY, or install the claude or codex CLI")
}

// ListAvailableProviders returns the providers that have credentials.
func ListAvailableProviders(config Config) []string {
	available := []string{}
	if config.openAIKey() != "" {
		available = append(available, ProviderOpenAI)
	}
	if config.anthropicKey() != "" {
		available = append(available, ProviderAnthropic)
	}
	if config.geminiKey() != "" {
		available = append(available, ProviderGemini)
	}
	if NewClaudeCLICompleter(config).Available() {
		available = append(available, ProviderClaudeCLI)
	}
	if NewCodexCLICompleter(config).Available() {
		available = append(available, ProviderCodexCLI)
	}
	return available
}

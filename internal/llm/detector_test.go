package llm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("PATH", t.TempDir())
}

func TestNewCompleterAutoPrefersOpenAI(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ant-test")

	c, err := NewCompleter(context.Background(), Config{Provider: ProviderAuto})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Name())
}

func TestNewCompleterAutoFallsBackToAnthropic(t *testing.T) {
	clearKeys(t)
	t.Setenv("ANTHROPIC_API_KEY", "ant-test")

	c, err := NewCompleter(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, c.Name())
}

func TestNewCompleterNoKeys(t *testing.T) {
	clearKeys(t)

	_, err := NewCompleter(context.Background(), Config{Provider: ProviderAuto})
	assert.Error(t, err)
}

func TestNewCompleterUnknownProvider(t *testing.T) {
	_, err := NewCompleter(context.Background(), Config{Provider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}

func TestNewCompleterExplicitModel(t *testing.T) {
	clearKeys(t)

	c, err := NewCompleter(context.Background(), Config{Provider: "OpenAI", OpenAIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", c.(*OpenAICompleter).Model())
}

func TestListAvailableProviders(t *testing.T) {
	clearKeys(t)
	t.Setenv("GOOGLE_API_KEY", "g")

	assert.Equal(t, []string{ProviderGemini}, ListAvailableProviders(Config{}))
	assert.Equal(t, []string{ProviderAnthropic, ProviderGemini}, ListAvailableProviders(Config{AnthropicKey: "a"}))
}

func TestNewCompleterCLIProviders(t *testing.T) {
	clearKeys(t)

	c, err := NewCompleter(context.Background(), Config{Provider: ProviderClaudeCLI})
	require.NoError(t, err)
	assert.Equal(t, ProviderClaudeCLI, c.Name())

	c, err = NewCompleter(context.Background(), Config{Provider: ProviderCodexCLI, Model: "o4-mini"})
	require.NoError(t, err)
	assert.Equal(t, ProviderCodexCLI, c.Name())
}

func TestDetectFallsBackToInstalledCLI(t *testing.T) {
	clearKeys(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codex"), []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", dir)

	c, err := NewCompleter(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, ProviderCodexCLI, c.Name())
	assert.Equal(t, []string{ProviderCodexCLI}, ListAvailableProviders(Config{}))
}

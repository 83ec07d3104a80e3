package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Providers backed by a locally installed, already authenticated CLI.
const (
	ProviderClaudeCLI = "claude-cli"
	ProviderCodexCLI  = "codex-cli"
)

// DefaultCodexModel is used by the codex CLI when no model is configured.
const DefaultCodexModel = "o3"

// CLICompleter shells out to the claude or codex CLI. Temperature and
// MaxTokens are not passed; the CLIs use their own settings.
type CLICompleter struct {
	name  string
	model string

	// Binary is the executable to run; defaults to "claude" or "codex".
	Binary string
}

// NewClaudeCLICompleter creates a completer for the Claude Code CLI.
func NewClaudeCLICompleter(config Config) *CLICompleter {
	model := config.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &CLICompleter{name: ProviderClaudeCLI, model: model, Binary: "claude"}
}

// NewCodexCLICompleter creates a completer for the Codex CLI.
func NewCodexCLICompleter(config Config) *CLICompleter {
	model := config.Model
	if model == "" {
		model = DefaultCodexModel
	}
	return &CLICompleter{name: ProviderCodexCLI, model: model, Binary: "codex"}
}

func (c *CLICompleter) Name() string {
	return c.name
}

// Model returns the model passed to the CLI.
func (c *CLICompleter) Model() string {
	return c.model
}

// Available checks if the CLI is installed.
func (c *CLICompleter) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

func (c *CLICompleter) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	var (
		args  []string
		stdin string
	)
	switch c.name {
	case ProviderClaudeCLI:
		// The system prompt goes through a file; stdin carries the user prompt.
		systemFile, err := os.CreateTemp("", "fitplan-system-*.txt")
		if err != nil {
			return nil, fmt.Errorf("failed to create system prompt file: %w", err)
		}
		defer os.Remove(systemFile.Name())
		if _, err := systemFile.WriteString(req.SystemPrompt); err != nil {
			systemFile.Close()
			return nil, fmt.Errorf("failed to write system prompt: %w", err)
		}
		systemFile.Close()

		args = []string{"--model", model, "--system-prompt-file", systemFile.Name(), "--print", "--output-format", "text"}
		stdin = req.UserPrompt

	default:
		args = []string{"--model", model, "--quiet"}
		stdin = fmt.Sprintf("SYSTEM INSTRUCTIONS:\n%s\n\nUSER REQUEST:\n%s", req.SystemPrompt, req.UserPrompt)
	}

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Stdin = strings.NewReader(stdin)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s failed: %s", c.name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s failed: %w", c.name, err)
	}
	return &Completion{Text: string(out)}, nil
}

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter uses the Google GenAI SDK.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a Gemini completer.
func NewGeminiCompleter(ctx context.Context, config Config) (*GeminiCompleter, error) {
	apiKey := config.geminiKey()
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiCompleter{client: client, model: model}, nil
}

func (g *GeminiCompleter) Name() string {
	return ProviderGemini
}

// Model returns the model requests default to.
func (g *GeminiCompleter) Model() string {
	return g.model
}

func (g *GeminiCompleter) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	resp, err := g.client.Models.GenerateContent(ctx, model,
		genai.Text(req.UserPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(float32(req.Temperature)),
			MaxOutputTokens:   int32(req.MaxTokens),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	c := &Completion{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		c.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		c.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return c, nil
}

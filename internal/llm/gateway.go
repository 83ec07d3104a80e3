package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/dhabedank/fitplan/internal/core"
)

// GenerationError is returned for any failure while producing a plan:
// provider errors, network errors, empty replies and unparseable JSON all
// look the same to callers. Unwrap exposes the cause for logging.
type GenerationError struct {
	Kind core.PlanKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Failed to generate %s plan", e.Kind)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrEmptyReply is the cause when the provider returns no text.
var ErrEmptyReply = errors.New("empty reply from model")

// Gateway turns a profile into a plan object via a Completer.
type Gateway struct {
	completer Completer
	model     string
	logger    *zap.Logger
}

// NewGateway creates a gateway. model may be empty to use the completer's
// default.
func NewGateway(completer Completer, model string, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{completer: completer, model: model, logger: logger}
}

// GenerateWorkoutPlan asks the model for a 5-day workout plan and returns
// the JSON object it replied with.
func (g *Gateway) GenerateWorkoutPlan(ctx context.Context, profile core.UserProfile) (json.RawMessage, error) {
	return g.generate(ctx, core.KindWorkout, Request{
		Model:        g.model,
		SystemPrompt: core.WorkoutSystemPrompt,
		UserPrompt:   core.BuildWorkoutPrompt(profile),
		Temperature:  Temperature,
		MaxTokens:    WorkoutMaxTokens,
	})
}

// GenerateMealPlan asks the model for a 7-day meal plan and returns the
// JSON object it replied with.
func (g *Gateway) GenerateMealPlan(ctx context.Context, profile core.UserProfile) (json.RawMessage, error) {
	return g.generate(ctx, core.KindMeal, Request{
		Model:        g.model,
		SystemPrompt: core.MealSystemPrompt,
		UserPrompt:   core.BuildMealPrompt(profile),
		Temperature:  Temperature,
		MaxTokens:    MealMaxTokens,
	})
}

func (g *Gateway) generate(ctx context.Context, kind core.PlanKind, req Request) (json.RawMessage, error) {
	start := time.Now()

	completion, err := g.completer.Complete(ctx, req)
	if err != nil {
		g.logger.Error("completion failed",
			zap.String("provider", g.completer.Name()),
			zap.String("plan", string(kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, &GenerationError{Kind: kind, Err: err}
	}

	g.logCompletion(kind, req, completion, time.Since(start))

	if strings.TrimSpace(completion.Text) == "" {
		return nil, &GenerationError{Kind: kind, Err: ErrEmptyReply}
	}

	plan, err := parsePlanObject(completion.Text)
	if err != nil {
		g.logger.Warn("unparseable model reply",
			zap.String("plan", string(kind)),
			zap.Int("reply_chars", len(completion.Text)),
			zap.Error(err),
		)
		return nil, &GenerationError{Kind: kind, Err: err}
	}
	return plan, nil
}

func (g *Gateway) logCompletion(kind core.PlanKind, req Request, c *Completion, elapsed time.Duration) {
	model := g.modelName(req)

	in, out := c.InputTokens, c.OutputTokens
	if in == 0 {
		in = EstimateTokens(len(req.SystemPrompt) + len(req.UserPrompt))
	}
	if out == 0 {
		out = EstimateTokens(len(c.Text))
	}

	g.logger.Info("completion",
		zap.String("provider", g.completer.Name()),
		zap.String("model", model),
		zap.String("plan", string(kind)),
		zap.Duration("elapsed", elapsed),
		zap.Int("input_tokens", in),
		zap.Int("output_tokens", out),
		zap.String("est_cost", FormatCost(EstimateCost(model, in, out))),
	)
}

func (g *Gateway) modelName(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	if m, ok := g.completer.(interface{ Model() string }); ok {
		return m.Model()
	}
	return "default"
}

// parsePlanObject extracts the reply's JSON object and checks that it is one.
func parsePlanObject(output string) (json.RawMessage, error) {
	jsonStr := extractJSON(output)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in reply")
	}
	if !gjson.Valid(jsonStr) {
		return nil, fmt.Errorf("reply is not valid JSON")
	}
	if !gjson.Parse(jsonStr).IsObject() {
		return nil, fmt.Errorf("reply is not a JSON object")
	}
	return json.RawMessage(jsonStr), nil
}

// extractJSON pulls the JSON object out of a model reply, tolerating
// markdown fences and surrounding prose.
func extractJSON(output string) string {
	output = strings.TrimSpace(output)

	// Remove markdown fences
	if strings.HasPrefix(output, "```json") {
		output = strings.TrimPrefix(output, "```json")
		if idx := strings.LastIndex(output, "```"); idx != -1 {
			output = output[:idx]
		}
		output = strings.TrimSpace(output)
	} else if strings.HasPrefix(output, "```") {
		output = strings.TrimPrefix(output, "```")
		if idx := strings.LastIndex(output, "```"); idx != -1 {
			output = output[:idx]
		}
		output = strings.TrimSpace(output)
	}

	// A reply that is already valid JSON is kept whole so that arrays and
	// scalars are rejected rather than mined for an inner object.
	if gjson.Valid(output) {
		return output
	}

	// Find JSON object
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return output[start : end+1]
}

// Package client talks to the FitPlan HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/dhabedank/fitplan/internal/core"
)

// DefaultBaseURL is where `fitplan serve` listens by default.
const DefaultBaseURL = "http://localhost:3001/api"

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a thin JSON client for the plan endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL (including /api).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type planBody struct {
	Profile        core.UserProfile `json:"profile"`
	Customizations any              `json:"customizations,omitempty"`
}

// GenerateWorkoutPlan requests a new workout plan.
func (c *Client) GenerateWorkoutPlan(ctx context.Context, profile core.UserProfile) (*core.WorkoutPlan, error) {
	var plan core.WorkoutPlan
	if err := c.post(ctx, "/plans/workout", planBody{Profile: profile}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GenerateMealPlan requests a new meal plan.
func (c *Client) GenerateMealPlan(ctx context.Context, profile core.UserProfile) (*core.MealPlan, error) {
	var plan core.MealPlan
	if err := c.post(ctx, "/plans/meal", planBody{Profile: profile}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// RegenerateWorkoutPlan asks for a fresh workout plan. customizations, if
// non-nil, is a partial profile overlaid on profile by the server.
func (c *Client) RegenerateWorkoutPlan(ctx context.Context, profile core.UserProfile, customizations any) (*core.WorkoutPlan, error) {
	var plan core.WorkoutPlan
	if err := c.post(ctx, "/plans/workout/regenerate", planBody{Profile: profile, Customizations: customizations}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// RegenerateMealPlan asks for a fresh meal plan.
func (c *Client) RegenerateMealPlan(ctx context.Context, profile core.UserProfile, customizations any) (*core.MealPlan, error) {
	var plan core.MealPlan
	if err := c.post(ctx, "/plans/meal/regenerate", planBody{Profile: profile, Customizations: customizations}, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CustomizeWorkoutPlan regenerates a workout plan while keeping planID.
func (c *Client) CustomizeWorkoutPlan(ctx context.Context, planID string, profile core.UserProfile) (*core.WorkoutPlan, error) {
	var plan core.WorkoutPlan
	if err := c.post(ctx, "/customize-workout/"+url.PathEscape(planID), profile, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CustomizeMealPlan regenerates a meal plan while keeping planID.
func (c *Client) CustomizeMealPlan(ctx context.Context, planID string, profile core.UserProfile) (*core.MealPlan, error) {
	var plan core.MealPlan
	if err := c.post(ctx, "/customize-meal-plan/"+url.PathEscape(planID), profile, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Plans is a workout and meal plan generated together.
type Plans struct {
	Workout *core.WorkoutPlan
	Meal    *core.MealPlan
}

// GeneratePlans requests both plans concurrently and waits for both. The
// first failure cancels the other request.
func (c *Client) GeneratePlans(ctx context.Context, profile core.UserProfile) (*Plans, error) {
	var plans Plans
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.GenerateWorkoutPlan(ctx, profile)
		if err != nil {
			return err
		}
		plans.Workout = p
		return nil
	})
	g.Go(func() error {
		p, err := c.GenerateMealPlan(ctx, profile)
		if err != nil {
			return err
		}
		plans.Meal = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &plans, nil
}

// RegeneratePlans regenerates both plans concurrently.
func (c *Client) RegeneratePlans(ctx context.Context, profile core.UserProfile) (*Plans, error) {
	var plans Plans
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.RegenerateWorkoutPlan(ctx, profile, nil)
		if err != nil {
			return err
		}
		plans.Workout = p
		return nil
	})
	g.Go(func() error {
		p, err := c.RegenerateMealPlan(ctx, profile, nil)
		if err != nil {
			return err
		}
		plans.Meal = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &plans, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(raw, "error").String()
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode plan: %w", err)
	}
	return nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dhabedank/fitplan/internal/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

const workoutJSON = `{"id":"w1","name":"Strong Week","difficulty":"beginner","createdAt":"2025-03-14T14:26:53.589Z",
	"days":[{"day":"Day 1","focus":"Legs","exercises":[{"name":"Squat","sets":3,"reps":"10","restTime":"60s","description":"Down and up"}]}]}`

const mealJSON = `{"id":"m1","title":"Vegan Week","createdAt":"2025-03-14T14:26:53.589Z",
	"days":[{"day":"Day 1","breakfast":{"name":"Oats","calories":400,"protein":15,"carbs":60,"fat":8}}],
	"shoppingList":["oats"]}`

func TestGenerateWorkoutPlan(t *testing.T) {
	var gotPath string
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, workoutJSON)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	plan, err := c.GenerateWorkoutPlan(context.Background(), core.DefaultProfile())
	require.NoError(t, err)

	assert.Equal(t, "/api/plans/workout", gotPath)
	assert.Contains(t, gotBody, "profile")
	assert.NotContains(t, gotBody, "customizations")

	assert.Equal(t, "w1", plan.ID)
	assert.Equal(t, "Strong Week", plan.DisplayName())
	assert.Equal(t, time.Date(2025, 3, 14, 14, 26, 53, 589_000_000, time.UTC), plan.CreatedAt)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, core.FlexString("3"), plan.Days[0].Exercises[0].Sets)
}

func TestRegenerateSendsCustomizations(t *testing.T) {
	var got struct {
		Profile        core.UserProfile `json:"profile"`
		Customizations map[string]any   `json:"customizations"`
	}
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, mealJSON)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	plan, err := c.RegenerateMealPlan(context.Background(), core.DefaultProfile(), map[string]any{"dietPreference": "vegan"})
	require.NoError(t, err)

	assert.Equal(t, "/api/plans/meal/regenerate", gotPath)
	assert.Equal(t, "vegan", got.Customizations["dietPreference"])
	assert.Equal(t, core.GoalWeightLoss, got.Profile.FitnessGoal)
	assert.Equal(t, "Vegan Week", plan.DisplayName())
}

func TestCustomizeRoutes(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/api/customize-workout/w1" {
			_, _ = io.WriteString(w, workoutJSON)
			return
		}
		_, _ = io.WriteString(w, mealJSON)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	w, err := c.CustomizeWorkoutPlan(context.Background(), "w1", core.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)

	_, err = c.CustomizeMealPlan(context.Background(), "m1", core.DefaultProfile())
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/customize-workout/w1", "/api/customize-meal-plan/m1"}, paths)
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"envelope error", http.StatusBadRequest, `{"error":"Missing required fields: fitnessGoal, dietPreference"}`, "Missing required fields: fitnessGoal, dietPreference"},
		{"server failure", http.StatusInternalServerError, `{"error":"Failed to generate meal plan","message":"Failed to generate meal plan"}`, "Failed to generate meal plan"},
		{"no envelope", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502: Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).GenerateMealPlan(context.Background(), core.DefaultProfile())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
		})
	}
}

// Both handlers block until the other has arrived, so GeneratePlans only
// succeeds if the two requests are in flight at the same time.
func TestGeneratePlansConcurrent(t *testing.T) {
	var arrived sync.WaitGroup
	arrived.Add(2)
	bothIn := make(chan struct{})
	go func() {
		arrived.Wait()
		close(bothIn)
	}()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		select {
		case <-bothIn:
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		if r.URL.Path == "/plans/workout" {
			_, _ = io.WriteString(w, workoutJSON)
			return
		}
		_, _ = io.WriteString(w, mealJSON)
	}))
	defer srv.Close()

	plans, err := New(srv.URL).GeneratePlans(context.Background(), core.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "w1", plans.Workout.ID)
	assert.Equal(t, "m1", plans.Meal.ID)
}

func TestGeneratePlansFailsIfEitherFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/plans/meal" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"Failed to generate meal plan"}`)
			return
		}
		_, _ = io.WriteString(w, workoutJSON)
	}))
	defer srv.Close()

	plans, err := New(srv.URL).GeneratePlans(context.Background(), core.DefaultProfile())
	assert.Nil(t, plans)
	require.Error(t, err)
	assert.Equal(t, "Failed to generate meal plan", err.Error())
}

func TestRegeneratePlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plans/workout/regenerate":
			_, _ = io.WriteString(w, workoutJSON)
		case "/plans/meal/regenerate":
			_, _ = io.WriteString(w, mealJSON)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	plans, err := New(srv.URL).RegeneratePlans(context.Background(), core.DefaultProfile())
	require.NoError(t, err)
	assert.NotNil(t, plans.Workout)
	assert.NotNil(t, plans.Meal)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithHTTPClient(t *testing.T) {
	var gotURL string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": {"application/json"}},
			Body:       io.NopCloser(bytes.NewBufferString(mealJSON)),
			Request:    r,
		}, nil
	})}

	c := New("http://fitplan.test/api", WithHTTPClient(hc))
	plan, err := c.GenerateMealPlan(context.Background(), core.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "http://fitplan.test/api/plans/meal", gotURL)
	assert.Equal(t, "m1", plan.ID)
}

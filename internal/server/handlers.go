package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/dhabedank/fitplan/internal/core"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PlanRequest is the body of the /plans routes.
type PlanRequest struct {
	Profile        core.UserProfile `json:"profile"`
	Customizations json.RawMessage  `json:"customizations,omitempty"`
}

// createdAtLayout is ISO-8601 in UTC with milliseconds.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

const msgInvalidBody = "Invalid request body"

// POST /api/generate-workout, /api/generate-meal-plan
func (s *Server) handleGenerate(kind core.PlanKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile core.UserProfile
		if !s.decode(w, r, &profile) {
			return
		}
		profile.Normalize()

		if err := profile.ValidateFor(kind); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		s.respondWithPlan(w, r, kind, profile, s.newID(), "generate")
	}
}

// POST /api/customize-workout/{planId}, /api/customize-meal-plan/{planId}
// The body is used as-is without required-field checks.
func (s *Server) handleCustomize(kind core.PlanKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planID := mux.Vars(r)["planId"]

		var profile core.UserProfile
		if !s.decode(w, r, &profile) {
			return
		}
		profile.Normalize()

		s.respondWithPlan(w, r, kind, profile, planID, "customize")
	}
}

// POST /api/plans/workout, /api/plans/meal
func (s *Server) handlePlans(kind core.PlanKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlanRequest
		if !s.decode(w, r, &req) {
			return
		}
		profile := req.Profile
		profile.Normalize()

		if err := profile.ValidateFor(kind); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		s.respondWithPlan(w, r, kind, profile, s.newID(), "generate")
	}
}

// POST /api/plans/{type}/regenerate
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	kind, err := core.ParsePlanKind(mux.Vars(r)["type"])
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	var req PlanRequest
	if !s.decode(w, r, &req) {
		return
	}

	profile, err := applyCustomizations(req.Profile, req.Customizations)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}
	profile.Normalize()

	if err := profile.ValidateFor(kind); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	s.respondWithPlan(w, r, kind, profile, s.newID(), "regenerate")
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "OK",
		Message: "FitPlan AI Backend is running",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Route not found"})
}

// applyCustomizations overlays a partial profile onto base. Fields absent
// from the overlay keep their base values.
func applyCustomizations(base core.UserProfile, overlay json.RawMessage) (core.UserProfile, error) {
	if len(overlay) == 0 || string(overlay) == "null" {
		return base, nil
	}
	profile := base
	if err := json.Unmarshal(overlay, &profile); err != nil {
		return base, fmt.Errorf("customizations: %w", err)
	}
	return profile, nil
}

func (s *Server) respondWithPlan(w http.ResponseWriter, r *http.Request, kind core.PlanKind, profile core.UserProfile, id, verb string) {
	plan, err := s.generate(r.Context(), kind, profile)
	if err != nil {
		s.log.Error("plan request failed",
			zap.String("action", verb),
			zap.String("plan", string(kind)),
			zap.Error(err),
			zap.NamedError("cause", errors.Unwrap(err)),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   fmt.Sprintf("Failed to %s %s plan", verb, kind),
			Message: err.Error(),
		})
		return
	}

	enriched, err := s.enrich(plan, id)
	if err != nil {
		s.log.Error("plan enrichment failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   fmt.Sprintf("Failed to %s %s plan", verb, kind),
			Message: err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(enriched)
}

func (s *Server) generate(ctx context.Context, kind core.PlanKind, profile core.UserProfile) (json.RawMessage, error) {
	if kind == core.KindMeal {
		return s.gen.GenerateMealPlan(ctx, profile)
	}
	return s.gen.GenerateWorkoutPlan(ctx, profile)
}

// enrich stamps the plan with its id and creation time, leaving every other
// field the model produced untouched.
func (s *Server) enrich(plan json.RawMessage, id string) ([]byte, error) {
	out, err := sjson.SetBytes(plan, "id", id)
	if err != nil {
		return nil, fmt.Errorf("set id: %w", err)
	}
	out, err = sjson.SetBytes(out, "createdAt", s.now().UTC().Format(createdAtLayout))
	if err != nil {
		return nil, fmt.Errorf("set createdAt: %w", err)
	}
	return out, nil
}

// decode reads a JSON body into v, writing the error response itself when
// it fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
		return false
	}

	s.log.Debug("invalid request body", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Package server exposes plan generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/dhabedank/fitplan/internal/core"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 100 << 10

// Generator produces plan objects from a profile. *llm.Gateway satisfies it.
type Generator interface {
	GenerateWorkoutPlan(ctx context.Context, profile core.UserProfile) (json.RawMessage, error)
	GenerateMealPlan(ctx context.Context, profile core.UserProfile) (json.RawMessage, error)
}

// Options configures a Server.
type Options struct {
	// Development exposes panic text in error responses.
	Development    bool
	AllowedOrigins []string
	Logger         *zap.Logger
}

// Server is the FitPlan HTTP API.
type Server struct {
	gen     Generator
	log     *zap.Logger
	dev     bool
	origins []string

	now   func() time.Time
	newID func() string
}

// New creates a server backed by gen.
func New(gen Generator, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		gen:     gen,
		log:     logger,
		dev:     opts.Development,
		origins: origins,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate-workout", s.handleGenerate(core.KindWorkout)).Methods(http.MethodPost)
	api.HandleFunc("/customize-workout/{planId}", s.handleCustomize(core.KindWorkout)).Methods(http.MethodPost)
	api.HandleFunc("/generate-meal-plan", s.handleGenerate(core.KindMeal)).Methods(http.MethodPost)
	api.HandleFunc("/customize-meal-plan/{planId}", s.handleCustomize(core.KindMeal)).Methods(http.MethodPost)

	api.HandleFunc("/plans/workout", s.handlePlans(core.KindWorkout)).Methods(http.MethodPost)
	api.HandleFunc("/plans/meal", s.handlePlans(core.KindMeal)).Methods(http.MethodPost)
	api.HandleFunc("/plans/{type}/regenerate", s.handleRegenerate).Methods(http.MethodPost)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleNotFound)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(s.loggingMiddleware(s.recoverMiddleware(limitBody(r))))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dhabedank/fitplan/internal/llm"
	"github.com/dhabedank/fitplan/internal/server"
	"github.com/dhabedank/fitplan/internal/tui"
)

var (
	servePort     int
	serveEnv      string
	serveProvider string
	serveModel    string
)

// ServeCmd runs the HTTP API.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the FitPlan API server",
	Long: `Run the HTTP API that turns fitness profiles into workout and meal plans.

The server picks an LLM provider from the config file or the environment
(OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY) and listens on port 3001
unless PORT or --port says otherwise.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: 3001)")
	ServeCmd.Flags().StringVar(&serveEnv, "env", "", "Environment (development/production)")
	ServeCmd.Flags().StringVarP(&serveProvider, "llm", "l", "", "LLM provider (auto/openai/anthropic/gemini)")
	ServeCmd.Flags().StringVarP(&serveModel, "model", "m", "", "Model to use (provider-specific)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("env") {
		cfg.Server.Env = strings.ToLower(serveEnv)
	}
	if cmd.Flags().Changed("llm") {
		cfg.LLM.Provider = serveProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model = serveModel
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := llm.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	gateway := llm.NewGateway(completer, cfg.LLM.Model, logger)

	srv := server.New(gateway, server.Options{
		Development:    cfg.Server.Development(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	fmt.Printf("%s FitPlan API listening on %s\n",
		tui.SuccessStyle.Render("✓"),
		tui.ExerciseStyle.Render(fmt.Sprintf("http://localhost:%d/api", cfg.Server.Port)))
	fmt.Printf("  Provider: %s  Env: %s\n", completer.Name(), cfg.Server.Env)
	logger.Debug("llm configured",
		zap.String("provider", completer.Name()),
		zap.String("model", cfg.LLM.Model),
		zap.String("env", cfg.Server.Env))

	if err := srv.Run(ctx, cfg.Server.Addr()); err != nil {
		return err
	}
	fmt.Println("Server stopped")
	return nil
}

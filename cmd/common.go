package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dhabedank/fitplan/internal/config"
	"github.com/dhabedank/fitplan/internal/store"
)

// Set by the root command's persistent flags.
var (
	ConfigFile string
	Verbose    bool
)

var logger = zap.NewNop()

// InitLogger builds the process logger: production config, debug level
// with --verbose.
func InitLogger() error {
	cfg := zap.NewProductionConfig()
	if Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = logger.Sync()
}

// loadConfig reads the config file, .env and environment, then lets flags
// the user actually set override them.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, path, err := config.Load(ConfigFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if path != "" {
		logger.Debug("loaded config", zap.String("path", path))
	}

	flags := cmd.Flags()
	if flags.Lookup("api-url") != nil && flags.Changed("api-url") {
		cfg.Client.APIURL = apiURL
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Client.Format = outputFormat
	}
	if flags.Lookup("out") != nil && flags.Changed("out") {
		cfg.Client.OutputDir = outputDir
	}
	return cfg, nil
}

func profileStore(cfg config.Config) (*store.ProfileStore, error) {
	path := cfg.Client.ProfilePath
	if path == "" {
		var err error
		if path, err = store.DefaultProfilePath(); err != nil {
			return nil, err
		}
	}
	return store.NewProfileStore(path), nil
}

// Client flags shared by start, generate and regenerate.
var (
	apiURL       string
	outputFormat string
	outputDir    string
)

func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiURL, "api-url", "", "FitPlan API base URL (default: http://localhost:3001/api)")
	cmd.Flags().StringVar(&outputDir, "out", "", "Directory for exported plans (default: .)")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Export format (text/json/markdown)")
}

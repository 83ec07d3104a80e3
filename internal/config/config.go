// Package config loads .fitplan.yaml, .env and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/fitplan/internal/client"
	"github.com/dhabedank/fitplan/internal/llm"
)

// FileName is the config file looked up in the working directory and home.
const FileName = ".fitplan.yaml"

// DefaultPort matches the API URL the client uses by default.
const DefaultPort = 3001

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    llm.Config   `yaml:"llm"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig configures `fitplan serve`.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL      string `yaml:"api_url"`
	ProfilePath string `yaml:"profile_path"`
	OutputDir   string `yaml:"output_dir"`
	Format      string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			Env:            "production",
			AllowedOrigins: []string{"*"},
		},
		LLM: llm.DefaultConfig(),
		Client: ClientConfig{
			APIURL:    client.DefaultBaseURL,
			OutputDir: ".",
			Format:    "text",
		},
	}
}

// Find returns the config file to use: explicit if given, otherwise
// ./.fitplan.yaml, then ~/.fitplan.yaml. Empty means none was found.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, FileName)
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}
	return ""
}

// Load builds the configuration from defaults, the config file at path (or
// the one Find locates), .env, and the environment, in that order. It
// returns the config file actually read, if any.
func Load(path string) (Config, string, error) {
	cfg := Default()

	path = Find(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, "", fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, "", fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, path, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("FITPLAN_ENV"); v != "" {
		c.Server.Env = strings.ToLower(v)
	}
	if v := os.Getenv("FITPLAN_API_URL"); v != "" {
		c.Client.APIURL = v
	}
	if v := os.Getenv("FITPLAN_LLM"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("FITPLAN_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	// API keys are read by the completers themselves.
	return nil
}

// Addr is the listen address for the server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Development reports whether error details may be exposed.
func (s ServerConfig) Development() bool {
	return s.Env == "development"
}

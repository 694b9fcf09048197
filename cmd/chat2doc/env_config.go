package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-chat2doc/internal/config"
	"github.com/alnah/go-chat2doc/internal/fileutil"
	"github.com/alnah/go-chat2doc/internal/hints"
)

const envPrefix = "CHAT2DOC_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // CHAT2DOC_CONFIG: config file name or path
	Format     string        // CHAT2DOC_FORMAT: pdf, html, markdown, text
	Language   string        // CHAT2DOC_LANGUAGE: label language
	Timeout    time.Duration // CHAT2DOC_TIMEOUT: PDF generation timeout

	// Tier 2 - I/O and styling
	InputDir  string // CHAT2DOC_INPUT_DIR: default input directory
	OutputDir string // CHAT2DOC_OUTPUT_DIR: default output directory
	Style     string // CHAT2DOC_STYLE: CSS style name or path
	AssetPath string // CHAT2DOC_ASSET_PATH: custom styles/ and locales/
	Timezone  string // CHAT2DOC_TIMEZONE: IANA zone for timestamps
	Workers   int    // CHAT2DOC_WORKERS: parallel workers

	// Tier 3 - Server
	Addr      string // CHAT2DOC_ADDR: listen address
	LogLevel  string // CHAT2DOC_LOG_LEVEL: debug, info, warn, error
	LogFormat string // CHAT2DOC_LOG_FORMAT: console, json
}

// knownEnvVars lists valid CHAT2DOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHAT2DOC_CONFIG":     true,
	"CHAT2DOC_FORMAT":     true,
	"CHAT2DOC_LANGUAGE":   true,
	"CHAT2DOC_TIMEOUT":    true,
	"CHAT2DOC_INPUT_DIR":  true,
	"CHAT2DOC_OUTPUT_DIR": true,
	"CHAT2DOC_STYLE":      true,
	"CHAT2DOC_ASSET_PATH": true,
	"CHAT2DOC_TIMEZONE":   true,
	"CHAT2DOC_WORKERS":    true,
	"CHAT2DOC_ADDR":       true,
	"CHAT2DOC_LOG_LEVEL":  true,
	"CHAT2DOC_LOG_FORMAT": true,
	"CHAT2DOC_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CHAT2DOC_CONFIG"),
		Format:     os.Getenv("CHAT2DOC_FORMAT"),
		Language:   os.Getenv("CHAT2DOC_LANGUAGE"),
		InputDir:   os.Getenv("CHAT2DOC_INPUT_DIR"),
		OutputDir:  os.Getenv("CHAT2DOC_OUTPUT_DIR"),
		Style:      os.Getenv("CHAT2DOC_STYLE"),
		AssetPath:  os.Getenv("CHAT2DOC_ASSET_PATH"),
		Timezone:   os.Getenv("CHAT2DOC_TIMEZONE"),
		Addr:       os.Getenv("CHAT2DOC_ADDR"),
		LogLevel:   os.Getenv("CHAT2DOC_LOG_LEVEL"),
		LogFormat:  os.Getenv("CHAT2DOC_LOG_FORMAT"),
	}

	if timeout := os.Getenv("CHAT2DOC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CHAT2DOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CHAT2DOC_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment variables on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Language != "" {
		cfg.Document.Language = env.Language
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timezone != "" {
		cfg.Document.Timezone = env.Timezone
	}
	if env.Workers > 0 {
		cfg.Server.Workers = env.Workers
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Logging.Format = env.LogFormat
	}
}

// loadConfig resolves the configuration shared by convert and serve:
// defaults, then the config file (flag value, else CHAT2DOC_CONFIG), then
// environment variables. The result is validated.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

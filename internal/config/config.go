// Package config loads the YAML configuration shared by the CLI and the
// HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-chat2doc/internal/dateutil"
	"github.com/alnah/go-chat2doc/internal/fileutil"
	"github.com/alnah/go-chat2doc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched by LoadConfig.
const AppDirName = "go-chat2doc"

// Field length limits.
const (
	MaxLabelLength    = 100  // role labels
	MaxLanguageLength = 10   // "it", "pt-BR"
	MaxStyleLength    = 256  // style name or path
	MaxPathLength     = 4096 // directories
	MaxAddrLength     = 256  // "host:port"
	MaxTimezoneLength = 64   // IANA zone name
)

// Limits on numeric fields.
const (
	MaxTextWidth      = 1000
	MaxUploadBytesCap = 100 << 20
)

// Config holds all configuration for document generation and serving.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Style    string         `yaml:"style"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
	Text     TextConfig     `yaml:"text"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = same as source
	Format     string `yaml:"format"`     // pdf, html, markdown, text
}

// DocumentConfig mirrors the rendering options of a conversion.
type DocumentConfig struct {
	ShowDate        bool   `yaml:"showDate"`
	ShowDivider     bool   `yaml:"showDivider"`
	ShowModel       bool   `yaml:"showModel"`
	ShowTimings     bool   `yaml:"showTimings"`
	ShowNumbers     bool   `yaml:"showNumbers"`
	UserLabel       string `yaml:"userLabel"`
	AssistantLabel  string `yaml:"assistantLabel"`
	Language        string `yaml:"language"`
	TimestampFormat string `yaml:"timestampFormat"` // token format or preset name
	Timezone        string `yaml:"timezone"`        // IANA name; empty = local
}

// AssetsConfig defines the custom asset directory.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // contains styles/ and locales/
}

// PDFConfig defines PDF generation options.
type PDFConfig struct {
	PageNumbers bool   `yaml:"pageNumbers"`
	Timeout     string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// TextConfig defines plain text output options.
type TextConfig struct {
	Width int `yaml:"width"` // 0 disables wrapping
}

// ServerConfig defines the HTTP front end.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	Workers        int    `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// LoggingConfig defines server log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Accepted values for enumerated fields.
var (
	validFormats   = []string{"pdf", "html", "htm", "markdown", "md", "text", "txt"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validLogFormat = []string{"console", "json"}
)

// DefaultConfig returns the configuration used when no file is given.
// Loaded files are decoded on top of it, so omitted fields keep these values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "pdf"},
		Document: DocumentConfig{
			ShowDate:        true,
			ShowDivider:     true,
			ShowModel:       true,
			ShowTimings:     true,
			ShowNumbers:     true,
			Language:        "it",
			TimestampFormat: dateutil.DefaultTimestampFormat,
		},
		Style: "default",
		PDF:   PDFConfig{PageNumbers: true, Timeout: "30s"},
		Text:  TextConfig{Width: 80},
		Server: ServerConfig{
			Addr:           ":5000",
			MaxUploadBytes: 10 << 20,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.userLabel", c.Document.UserLabel, MaxLabelLength},
		{"document.assistantLabel", c.Document.AssistantLabel, MaxLabelLength},
		{"document.language", c.Document.Language, MaxLanguageLength},
		{"document.timestampFormat", c.Document.TimestampFormat, dateutil.MaxDateFormatLength},
		{"document.timezone", c.Document.Timezone, MaxTimezoneLength},
		{"style", c.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Output.Format != "" && !slices.Contains(validFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: output.format %q (want one of %s)",
			ErrInvalidValue, c.Output.Format, strings.Join(validFormats, ", "))
	}
	if c.Document.TimestampFormat != "" {
		if _, err := dateutil.ResolveLayout(c.Document.TimestampFormat); err != nil {
			return fmt.Errorf("%w: document.timestampFormat: %v", ErrInvalidValue, err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.PDFTimeout(); err != nil {
		return err
	}
	if c.Text.Width < 0 || c.Text.Width > MaxTextWidth {
		return fmt.Errorf("%w: text.width must be between 0 and %d, got %d",
			ErrInvalidValue, MaxTextWidth, c.Text.Width)
	}
	if c.Server.MaxUploadBytes < 0 || c.Server.MaxUploadBytes > MaxUploadBytesCap {
		return fmt.Errorf("%w: server.maxUploadBytes must be between 0 and %d, got %d",
			ErrInvalidValue, MaxUploadBytesCap, c.Server.MaxUploadBytes)
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("%w: server.workers must not be negative, got %d", ErrInvalidValue, c.Server.Workers)
	}
	if c.Logging.Level != "" && !slices.Contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	if c.Logging.Format != "" && !slices.Contains(validLogFormat, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("%w: logging.format %q", ErrInvalidValue, c.Logging.Format)
	}
	return nil
}

// Location resolves document.timezone. An empty zone is nil, meaning local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Document.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Document.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: document.timezone: %v", ErrInvalidValue, err)
	}
	return loc, nil
}

// PDFTimeout parses pdf.timeout. An empty value returns zero.
func (c *Config) PDFTimeout() (time.Duration, error) {
	if c.PDF.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// validateFieldLength returns an error if value exceeds maxLen characters.
func validateFieldLength(field, value string, maxLen int) error {
	if len(value) > maxLen {
		return fmt.Errorf("%w: %s is %d characters (max %d)", ErrFieldTooLong, field, len(value), maxLen)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is
// looked up as name.yaml or name.yml in the current directory, then in the
// user config directory under AppDirName.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/config"
)

// Sentinel errors for flag validation.
var (
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUsage              = errors.New("invalid usage")
)

// mergeDocumentFlags merges document flags into cfg. CLI values win.
func mergeDocumentFlags(f documentFlags, cfg *config.Config) {
	doc := &cfg.Document
	if f.language != "" {
		doc.Language = f.language
	}
	if f.userLabel != "" {
		doc.UserLabel = f.userLabel
	}
	if f.assistantLabel != "" {
		doc.AssistantLabel = f.assistantLabel
	}
	if f.timestampFormat != "" {
		doc.TimestampFormat = f.timestampFormat
	}
	if f.timezone != "" {
		doc.Timezone = f.timezone
	}

	// Disable flags
	if f.noDate {
		doc.ShowDate = false
	}
	if f.noDivider {
		doc.ShowDivider = false
	}
	if f.noModel {
		doc.ShowModel = false
	}
	if f.noTimings {
		doc.ShowTimings = false
	}
	if f.noNumbers {
		doc.ShowNumbers = false
	}
}

// mergeRenderFlags merges format and styling flags into cfg. CLI values win.
func mergeRenderFlags(f renderFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.width != widthUnset {
		cfg.Text.Width = f.width
	}
	if f.noPageNumbers {
		cfg.PDF.PageNumbers = false
	}
}

// documentOptions converts the document section of cfg.
func documentOptions(cfg *config.Config) chat2doc.Options {
	d := cfg.Document
	return chat2doc.Options{
		ShowDate:       d.ShowDate,
		ShowDivider:    d.ShowDivider,
		ShowModel:      d.ShowModel,
		ShowTimings:    d.ShowTimings,
		ShowNumbers:    d.ShowNumbers,
		UserLabel:      d.UserLabel,
		AssistantLabel: d.AssistantLabel,
		Language:       d.Language,
	}
}

// converterOptions builds the Converter options described by cfg.
func converterOptions(cfg *config.Config, timeout time.Duration) ([]chat2doc.Option, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []chat2doc.Option{
		chat2doc.WithStyle(cfg.Style),
		chat2doc.WithAssetPath(cfg.Assets.BasePath),
		chat2doc.WithTimestampFormat(cfg.Document.TimestampFormat),
		chat2doc.WithLocation(loc),
		chat2doc.WithTextWidth(cfg.Text.Width),
		chat2doc.WithPageNumbers(cfg.PDF.PageNumbers),
	}
	if timeout > 0 {
		opts = append(opts, chat2doc.WithTimeout(timeout))
	}
	return opts, nil
}

// resolveTimeout returns the flag duration when given, else the configured one.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.PDFTimeout()
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use format like 30s, 2m, 1m30s)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > chat2doc.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, chat2doc.MaxPoolSize)
	}
	return nil
}

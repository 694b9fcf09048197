package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/config"
	"github.com/alnah/go-chat2doc/internal/logging"
	"github.com/alnah/go-chat2doc/internal/server"
)

// serveFunc runs a configured server until ctx is canceled.
type serveFunc func(ctx context.Context, srv *server.Server, addr string) error

// serveHTTP is the production serveFunc.
func serveHTTP(ctx context.Context, srv *server.Server, addr string) error {
	return srv.Run(ctx, addr)
}

// runServe starts the HTTP front end.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	if err := loadDotEnv(flags.envFile); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	format, err := chat2doc.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}
	convOpts, err := converterOptions(cfg, timeout)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Format,
		Service:  "chat2doc",
	}, env.Stderr)
	defer func() { _ = logger.Sync() }()

	pool := chat2doc.NewConverterPool(resolvePoolSize(flags.workers, cfg.Server.Workers), convOpts...)
	defer func() { _ = pool.Close() }()

	// Building the first converter up front surfaces style, asset and
	// locale errors before the port is opened.
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	languages := conv.Languages()
	pool.Release(conv)

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(server.NewPoolService(pool), logger, server.Config{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		ConvertTimeout: max(server.DefaultConvertTimeout, timeout+30*time.Second),
		DefaultFormat:  format,
		Languages:      languages,
		Version:        Version,
	})

	logger.Info("starting",
		zap.String("version", Version),
		zap.Int("workers", pool.Size()),
		zap.Strings("languages", languages),
		zap.String("format", string(format)),
	)
	return env.Serve(ctx, srv, cfg.Server.Addr)
}

// loadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// mergeServeFlags merges serve flags into cfg. CLI values win.
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxUpload > 0 {
		cfg.Server.MaxUploadBytes = flags.maxUpload
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	mergeDocumentFlags(flags.document, cfg)
	mergeRenderFlags(flags.render, cfg)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/config"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeDocumentFlags(flags.document, cfg)
	mergeRenderFlags(flags.render, cfg)
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

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{format: format, options: documentOptions(cfg)}

	if flags.stdout {
		return convertToStdout(ctx, inputPath, params, convOpts, env)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), format.Extension())
	if err != nil {
		return err
	}

	poolSize := min(resolvePoolSize(flags.workers, cfg.Server.Workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, convOpts...)
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, pool, files, params)

	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// convertToStdout converts a single file and writes the document to stdout.
func convertToStdout(ctx context.Context, inputPath string, params *conversionParams, opts []chat2doc.Option, env *Environment) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: --stdout needs a single file, %s is a directory", ErrUsage, inputPath)
	}
	if err := validateConversationExtension(inputPath); err != nil {
		return err
	}

	pool := env.NewPool(1, opts...)
	defer func() { _ = pool.Close() }()

	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	payload, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadConversation, err)
	}

	result, err := conv.Convert(ctx, chat2doc.Input{
		Payload: payload,
		Format:  params.format,
		Options: params.options,
	})
	if err != nil {
		return err
	}

	if _, err := env.Stdout.Write(result.Data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

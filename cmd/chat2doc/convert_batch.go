package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-chat2doc"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Sentinel errors for batch operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadConversation = errors.New("failed to read conversation file")
	ErrWriteOutput      = errors.New("failed to write output file")
)

// ConversionResult is the outcome of converting one file.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Bytes      int // size of the written document
	Err        error
	Duration   time.Duration
}

// conversionParams are shared by every file of a batch.
type conversionParams struct {
	format  chat2doc.Format
	options chat2doc.Options
}

// convertBatch converts files on up to pool.Size() workers. Results keep the
// order of files. Once ctx is done, remaining files fail with ctx.Err().
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range min(pool.Size(), len(files)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(ctx, pool, jobs, files, params, results)
		}()
	}
	wg.Wait()
	return results
}

// runWorker drains jobs with one converter. If no converter can be acquired
// the worker still drains its share, failing each file with the acquire error.
func runWorker(ctx context.Context, pool Pool, jobs <-chan int, files []FileToConvert, params *conversionParams, results []ConversionResult) {
	conv, acquireErr := pool.Acquire()
	if acquireErr == nil {
		defer pool.Release(conv)
	}

	for idx := range jobs {
		f := files[idx]
		switch {
		case acquireErr != nil:
			results[idx] = ConversionResult{InputPath: f.InputPath, Err: acquireErr}
		case ctx.Err() != nil:
			results[idx] = ConversionResult{InputPath: f.InputPath, Err: ctx.Err()}
		default:
			results[idx] = convertFile(ctx, conv, f, params)
		}
	}
}

// convertFile reads, converts and writes one conversation.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	payload, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadConversation, err)
		return result
	}

	converted, err := conv.Convert(ctx, chat2doc.Input{
		Payload: payload,
		Format:  params.format,
		Options: params.options,
	})
	if err != nil {
		result.Err = err
		return result
	}

	if err := writeOutput(f.OutputPath, converted.Data); err != nil {
		result.Err = err
		return result
	}
	result.Bytes = len(converted.Data)
	return result
}

// writeOutput writes data next to path and renames it into place, so an
// interrupted run never leaves a truncated document behind.
func writeOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }() // no-op after a successful rename

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, filePermissions) // #nosec G302 -- documents are meant to be readable
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// printResults reports each result and returns the number of failures.
// Failures always go to stderr; quiet suppresses everything else.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s)\n", r.InputPath, r.OutputPath, resultDetail(r))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}

// resultDetail is the verbose suffix: elapsed time, plus size when known.
func resultDetail(r ConversionResult) string {
	d := r.Duration.Round(time.Millisecond).String()
	if r.Bytes > 0 {
		d += ", " + formatBytes(r.Bytes)
	}
	return d
}

// formatBytes renders n with a binary unit: "512 B", "1.5 KiB", "2.0 MiB".
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}

// firstError returns the first failure, used to choose the exit code.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

package main

// Notes:
// - Test helpers shared by the command tests. Conversions run against real
//   converter pools with browserless formats (text, markdown, html), so no
//   Chrome is needed.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/server"
)

// testEnv returns an Environment writing to buffers with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     func() time.Time { return time.Date(2026, 2, 21, 20, 29, 16, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		NewPool: newPool,
		Serve: func(context.Context, *server.Server, string) error {
			return nil
		},
	}
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// writeSample writes the bundled sample export to dir/name.
func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	return writeFile(t, dir, name, string(chat2doc.SamplePayload()))
}

// recordingConverter records inputs and returns a fixed result.
type recordingConverter struct {
	mu     sync.Mutex
	inputs []chat2doc.Input
	data   []byte
	err    error
}

func (r *recordingConverter) Convert(_ context.Context, input chat2doc.Input) (*chat2doc.ConvertResult, error) {
	r.mu.Lock()
	r.inputs = append(r.inputs, input)
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return &chat2doc.ConvertResult{Data: r.data, Format: input.Format}, nil
}

func (r *recordingConverter) calls() []chat2doc.Input {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]chat2doc.Input(nil), r.inputs...)
}

// fakePool hands out a single shared converter.
type fakePool struct {
	conv       Converter
	size       int
	acquireErr error
	closed     bool
	opts       []chat2doc.Option
}

func (p *fakePool) Acquire() (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *fakePool) Release(Converter) {}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.closed = true
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-chat2doc"
)

// Converter is the conversion surface the CLI needs.
type Converter interface {
	Convert(ctx context.Context, input chat2doc.Input) (*chat2doc.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*chat2doc.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// poolAdapter exposes *chat2doc.ConverterPool as a Pool.
type poolAdapter struct {
	pool *chat2doc.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

// newPool creates a pool of size converters built with opts.
func newPool(size int, opts ...chat2doc.Option) Pool {
	return &poolAdapter{pool: chat2doc.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (Converter, error) {
	return a.pool.Acquire()
}

// Release panics on converters the pool did not hand out.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*chat2doc.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// resolvePoolSize determines the pool size.
// Priority: explicit flag > config > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, configWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return chat2doc.ResolvePoolSize(configWorkers)
}

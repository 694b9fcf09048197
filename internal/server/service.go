package server

import (
	"context"

	"github.com/alnah/go-chat2doc"
)

// PoolService runs each conversion on a converter borrowed from a pool.
type PoolService struct {
	pool *chat2doc.ConverterPool
}

var _ Service = (*PoolService)(nil)

// NewPoolService wraps pool. The caller keeps ownership and closes it.
func NewPoolService(pool *chat2doc.ConverterPool) *PoolService {
	return &PoolService{pool: pool}
}

// Convert acquires a converter, converts input and returns the converter.
func (p *PoolService) Convert(ctx context.Context, input chat2doc.Input) (*chat2doc.ConvertResult, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(conv)
	return conv.Convert(ctx, input)
}

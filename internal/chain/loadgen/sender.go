package loadgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/chain/codec"
	"github.com/goodnatureofminers/chainexec/pkg/batcher"
)

// Submitter delivers encoded transactions to a mempool.
type Submitter interface {
	Submit(ctx context.Context, raw [][]byte) error
}

// precision is the number of bursts per second; the per-second rate is
// split evenly across them.
const precision = 20

// Sender feeds generated transactions to a submitter at a fixed rate.
type Sender struct {
	logger    *zap.Logger
	gen       *Generator
	submitter Submitter
	rate      int
}

// NewSender builds a sender pushing roughly rate transactions per second.
func NewSender(logger *zap.Logger, gen *Generator, submitter Submitter, rate int) (*Sender, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}
	if rate < precision {
		return nil, fmt.Errorf("rate must be at least %d tx/s", precision)
	}
	return &Sender{
		logger:    logger,
		gen:       gen,
		submitter: submitter,
		rate:      rate,
	}, nil
}

// Run generates and submits transactions until the context is canceled.
func (s *Sender) Run(ctx context.Context) error {
	burst := s.rate / precision
	b := batcher.New(s.logger, func(ctx context.Context, raw [][]byte) error {
		return s.submitter.Submit(ctx, raw)
	}, burst, time.Second/precision, precision)
	b.Start(ctx)
	defer b.Stop()

	s.logger.Info("start sending transactions",
		zap.Int("rate", s.rate),
		zap.Int("burst", burst),
	)
	for {
		if err := b.Add(ctx, codec.Encode(s.gen.Next())); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

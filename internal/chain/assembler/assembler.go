// Package assembler sequences mempool collections into gas-bounded blocks.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/chainexec/internal/chain/codec"
	"github.com/goodnatureofminers/chainexec/internal/chain/model"
	"github.com/goodnatureofminers/chainexec/internal/clock"
)

const defaultPollInterval = 100 * time.Millisecond

// Config carries the assembler's collaborators and policy knobs.
type Config struct {
	Source         CollectionSource
	Submitter      TransactionSubmitter // required only when Resubmit is set
	Metrics        Metrics
	Validators     []string
	RoundsPerBlock uint64
	GasLimit       model.Gas
	// Resubmit pushes invalid and overflowed transactions back to the
	// mempool after each block. Off by default.
	Resubmit bool
	// OnBlock, when set, receives the report of every finalized block.
	OnBlock func(Report)
}

// Service assembles one block per RoundsPerBlock consensus rounds. It is
// driven by a single goroutine; blocks are built strictly in arrival
// order with no reordering.
type Service struct {
	logger         *zap.Logger
	source         CollectionSource
	submitter      TransactionSubmitter
	metrics        Metrics
	validators     []string
	roundsPerBlock uint64
	resubmit       bool
	onBlock        func(Report)
	sleep          func(context.Context, time.Duration) error
	pollInterval   time.Duration

	block     *model.Block
	round     uint64 // round whose causal history seeds the current block
	used      map[string]struct{}
	assembled uint64

	// In-flight assembly state. Kept on the Service so a retried
	// iteration resumes the same block instead of forgetting that it
	// already overflowed or which transactions it rejected.
	full      bool
	report    Report
	failed    [][]byte
	spill     [][]byte
	committed []string // consumed into the block, not yet removed upstream
}

// NewService builds a Service from cfg.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if cfg.Source == nil {
		return nil, errors.New("collection source is required")
	}
	if cfg.Metrics == nil {
		return nil, errors.New("assembler metrics is required")
	}
	if len(cfg.Validators) == 0 {
		return nil, errors.New("validator set is required")
	}
	if cfg.Resubmit && cfg.Submitter == nil {
		return nil, errors.New("resubmission requires a transaction submitter")
	}
	if cfg.RoundsPerBlock == 0 {
		cfg.RoundsPerBlock = 1
	}

	return &Service{
		logger:         logger,
		source:         cfg.Source,
		submitter:      cfg.Submitter,
		metrics:        cfg.Metrics,
		validators:     cfg.Validators,
		roundsPerBlock: cfg.RoundsPerBlock,
		resubmit:       cfg.Resubmit,
		onBlock:        cfg.OnBlock,
		sleep:          clock.SleepWithContext,
		pollInterval:   defaultPollInterval,
		block:          model.Genesis(cfg.GasLimit).Next(),
		round:          cfg.RoundsPerBlock - 1,
		used:           make(map[string]struct{}),
	}, nil
}

// Run assembles blocks until the given count is reached, or indefinitely
// when blocks is zero. Source failures are logged and retried after a
// backoff, matching the upstream consensus layer's eventual availability.
func (s *Service) Run(ctx context.Context, blocks uint64) error {
	for blocks == 0 || s.assembled < blocks {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.assembleBlock(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			s.logger.Warn("assembly iteration failed, backing off",
				zap.Error(err), zap.Duration("sleep", s.pollInterval))
			if sleepErr := s.sleep(ctx, s.pollInterval); sleepErr != nil {
				return sleepErr
			}
		}
	}
	return nil
}

func (s *Service) assembleBlock(ctx context.Context) error {
	started := time.Now()
	proposer := s.proposer()

	if err := s.waitForRound(ctx, proposer); err != nil {
		return err
	}

	fetchStart := time.Now()
	ids, err := s.source.ReadCausal(ctx, proposer, s.round)
	s.metrics.ObserveFetchCollections(err, fetchStart)
	if err != nil {
		return fmt.Errorf("read causal at round %d: %w", s.round, err)
	}

	fresh := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.used[id]; ok {
			continue
		}
		fresh = append(fresh, id)
	}
	s.logger.Debug("collections for block",
		zap.Uint64("round", s.round),
		zap.Int("fresh", len(fresh)),
		zap.Int("deduped", len(ids)-len(fresh)),
	)

	for _, id := range fresh {
		fetchStart = time.Now()
		payloads, err := s.source.GetCollection(ctx, id)
		s.metrics.ObserveFetchCollections(err, fetchStart)
		if err != nil {
			return fmt.Errorf("get collection %s: %w", id, err)
		}
		for _, raw := range payloads {
			tx, _, err := codec.Decode(raw)
			if err != nil {
				s.report.Malformed++
				s.logger.Warn("skipping malformed transaction", zap.Error(err))
				continue
			}
			if s.full {
				s.report.Overflow++
				s.spill = append(s.spill, raw)
				continue
			}
			switch applyErr := s.block.TryApply(tx); {
			case applyErr == nil:
			case errors.Is(applyErr, model.ErrGasLimitReached):
				// The block is full from here on. Remaining
				// transactions are skipped untried, even if a
				// smaller one would fit.
				s.full = true
				s.report.Overflow++
				s.spill = append(s.spill, raw)
			case errors.Is(applyErr, model.ErrInvalidTransaction):
				s.report.Invalid++
				s.failed = append(s.failed, raw)
			}
		}
		s.used[id] = struct{}{}
		s.committed = append(s.committed, id)
	}

	if err := s.source.RemoveCollections(ctx, s.committed); err != nil {
		s.logger.Warn("was not able to remove committed collections", zap.Error(err))
	}

	if s.resubmit && len(s.failed)+len(s.spill) > 0 {
		raw := append(s.failed, s.spill...)
		err := s.submitter.Submit(ctx, raw)
		s.metrics.ObserveResubmit(err, len(raw))
		if err != nil {
			s.logger.Warn("resubmission failed", zap.Int("transactions", len(raw)), zap.Error(err))
		}
	}

	report := s.report
	report.Block = s.block
	report.Root = s.block.Root()
	s.metrics.ObserveBlock(report, started)
	s.logger.Info("finalized block",
		zap.Uint64("number", s.block.Number),
		zap.String("root", fmt.Sprintf("%016x", report.Root)),
		zap.Uint32("gas_used", uint32(s.block.GasUsed)),
		zap.Uint32("gas_limit", uint32(s.block.GasLimit)),
		zap.Int("transactions", len(s.block.Transactions)),
		zap.Int("invalid", report.Invalid),
		zap.Int("overflow", report.Overflow),
		zap.Int("malformed", report.Malformed),
	)
	if s.onBlock != nil {
		s.onBlock(report)
	}

	s.block = s.block.Next()
	s.round += s.roundsPerBlock
	s.assembled++
	s.full = false
	s.report = Report{}
	s.failed, s.spill = nil, nil
	s.committed = nil
	return nil
}

// waitForRound polls the source until the round feeding the current block
// has been sealed.
func (s *Service) waitForRound(ctx context.Context, proposer string) error {
	for {
		newest, err := s.source.NewestRound(ctx, proposer)
		if err != nil {
			return fmt.Errorf("newest round: %w", err)
		}
		if newest >= s.round {
			return nil
		}
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return err
		}
	}
}

// proposer picks the validator whose causal history seeds the current
// block, rotating round-robin per block.
func (s *Service) proposer() string {
	return s.validators[s.block.Number%uint64(len(s.validators))]
}

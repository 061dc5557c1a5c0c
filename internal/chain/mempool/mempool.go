// Package mempool provides an in-memory stand-in for the consensus layer:
// it groups submitted transactions into collections and seals them into
// causally ordered rounds.
package mempool

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Collection is a sealed batch of raw transaction payloads attributed to
// one proposer in one round.
type Collection struct {
	ID           string
	Proposer     string
	Round        uint64
	Transactions [][]byte
}

// RoundNotReadyError is returned when a causal read asks for a round the
// pool has not sealed yet.
type RoundNotReadyError struct {
	Requested uint64
	Newest    uint64
}

func (e *RoundNotReadyError) Error() string {
	return fmt.Sprintf("round %d not sealed yet, newest is %d", e.Requested, e.Newest)
}

// Pool collects raw transaction payloads. Submissions accumulate in a
// pending buffer; sealing cuts the buffer into collections and assigns
// them round-robin to the validator set. Rounds advance on demand (the
// serving layer typically drives them on a timer).
type Pool struct {
	logger     *zap.Logger
	validators []string
	batchSize  int

	mu      sync.Mutex
	round   uint64 // newest sealed round
	seq     uint64
	pending [][]byte
	sealed  map[string]*Collection
	byRound [][]string
}

// New builds a pool sealing collections of up to batchSize transactions.
func New(validators []string, batchSize int, logger *zap.Logger) *Pool {
	if batchSize < 1 {
		batchSize = 1
	}
	if len(validators) == 0 {
		validators = ValidatorSet(1)
	}
	return &Pool{
		logger:     logger,
		validators: validators,
		batchSize:  batchSize,
		sealed:     make(map[string]*Collection),
		byRound:    make([][]string, 1),
	}
}

// ValidatorSet returns deterministic validator names for an n-node setup.
func ValidatorSet(n int) []string {
	if n < 1 {
		n = 1
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("validator-%d", i)
	}
	return out
}

// Submit queues raw transaction payloads. Full batches are sealed into
// collections of the current round immediately.
func (p *Pool) Submit(raw [][]byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = append(p.pending, raw...)
	for len(p.pending) >= p.batchSize {
		p.sealLocked(p.batchSize)
	}
	return len(raw)
}

// AdvanceRound seals whatever is pending into the current round and opens
// the next one.
func (p *Pool) AdvanceRound() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pending) > 0 {
		n := p.batchSize
		if len(p.pending) < n {
			n = len(p.pending)
		}
		p.sealLocked(n)
	}
	p.round++
	p.byRound = append(p.byRound, nil)
	return p.round
}

// NewestRound reports the newest sealed round.
func (p *Pool) NewestRound() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.round
}

// ReadCausal returns the IDs of every collection sealed at or before the
// given round, oldest first.
func (p *Pool) ReadCausal(round uint64) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if round > p.round {
		return nil, &RoundNotReadyError{Requested: round, Newest: p.round}
	}
	var ids []string
	for r := uint64(0); r <= round; r++ {
		ids = append(ids, p.byRound[r]...)
	}
	return ids, nil
}

// Collection returns the sealed collection with the given ID.
func (p *Pool) Collection(id string) (*Collection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.sealed[id]
	return c, ok
}

// Remove drops committed collections and reports how many were present.
func (p *Pool) Remove(ids []string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if _, ok := p.sealed[id]; ok {
			delete(p.sealed, id)
			removed++
		}
	}
	return removed
}

// Stats reports pending payloads and sealed collections, for gauges.
func (p *Pool) Stats() (pending, collections int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending), len(p.sealed)
}

func (p *Pool) sealLocked(n int) {
	batch := make([][]byte, n)
	copy(batch, p.pending[:n])
	p.pending = p.pending[n:]

	proposer := p.validators[p.seq%uint64(len(p.validators))]
	c := &Collection{
		ID:           p.digestLocked(batch),
		Proposer:     proposer,
		Round:        p.round,
		Transactions: batch,
	}
	p.seq++
	p.sealed[c.ID] = c
	p.byRound[p.round] = append(p.byRound[p.round], c.ID)
	p.logger.Debug("sealed collection",
		zap.String("id", c.ID),
		zap.String("proposer", proposer),
		zap.Uint64("round", p.round),
		zap.Int("transactions", n),
	)
}

// digestLocked derives a collection ID from its payloads and a sequence
// number, mimicking a certificate digest.
func (p *Pool) digestLocked(batch [][]byte) string {
	d := xxhash.New()
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], p.seq)
	_, _ = d.Write(seq[:])
	for _, raw := range batch {
		_, _ = d.Write(raw)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

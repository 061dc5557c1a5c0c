package assembler

import (
	"context"
	"time"

	"github.com/goodnatureofminers/chainexec/internal/chain/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// CollectionSource exposes the consensus layer's collection
	// retrieval API. Collection IDs are opaque digests.
	CollectionSource interface {
		NewestRound(ctx context.Context, proposer string) (uint64, error)
		ReadCausal(ctx context.Context, proposer string, round uint64) ([]string, error)
		GetCollection(ctx context.Context, id string) ([][]byte, error)
		RemoveCollections(ctx context.Context, ids []string) error
	}

	// TransactionSubmitter pushes raw transaction payloads back to the
	// mempool, used when resubmission of rejected transactions is on.
	TransactionSubmitter interface {
		Submit(ctx context.Context, raw [][]byte) error
	}

	// Metrics records assembly outcomes.
	Metrics interface {
		ObserveFetchCollections(err error, started time.Time)
		ObserveBlock(report Report, started time.Time)
		ObserveResubmit(err error, count int)
	}
)

// Report summarizes one finalized block: the block itself, its root
// digest and the fate of every transaction that was offered.
type Report struct {
	Block     *model.Block
	Root      uint64
	Invalid   int // rejected by the ledger, no gas consumed
	Overflow  int // skipped after the block filled up
	Malformed int // undecodable payloads
}

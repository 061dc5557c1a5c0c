// Package loadgen produces synthetic transaction traffic for benchmarking
// the mempool and assembler.
package loadgen

import (
	"math/rand"

	"github.com/goodnatureofminers/chainexec/internal/chain/model"
)

const (
	addressCount = 100
	maxAmount    = 100_000
)

// Generator produces a random stream of mint and transfer transactions
// over a fixed address set. Mints keep the ledger funded so that roughly
// half of the transfers apply cleanly.
type Generator struct {
	rng       *rand.Rand
	addresses []model.Address
	a, b      model.Address
}

// NewGenerator seeds a generator. The same seed yields the same stream.
func NewGenerator(seed int64) *Generator {
	rng := rand.New(rand.NewSource(seed))
	addresses := make([]model.Address, addressCount)
	for i := range addresses {
		addresses[i] = model.Address(rng.Uint32())
	}
	return &Generator{
		rng:       rng,
		addresses: addresses,
		a:         addresses[rng.Intn(addressCount)],
		b:         addresses[rng.Intn(addressCount)],
	}
}

// Next returns one random transaction.
func (g *Generator) Next() model.Transaction {
	if g.rng.Intn(2) == 0 {
		g.a, g.b = g.b, g.a
	}
	if g.rng.Intn(2) == 0 {
		return model.Mint{
			To:     g.a,
			Amount: model.Balance(g.rng.Int63n(maxAmount)),
			Gas:    model.MintGas + model.Gas(g.rng.Intn(4)),
		}
	}
	return model.Transfer{
		From:   g.b,
		To:     g.a,
		Amount: model.Balance(g.rng.Int63n(maxAmount)),
		Gas:    model.TransferGas + model.Gas(g.rng.Intn(2)),
	}
}

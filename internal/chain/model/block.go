package model

import "errors"

// Execution outcomes for a candidate transaction. Both are ordinary
// control flow, not faults: a rejected transaction is simply not part of
// the block.
var (
	// ErrGasLimitReached means the transaction does not fit in the
	// block's remaining gas budget.
	ErrGasLimitReached = errors.New("block gas limit reached")
	// ErrInvalidTransaction means the ledger rejected the transaction.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// Block is an ordered batch of accepted transactions together with the
// ledger state after applying them and the gas accounting for the batch.
// GasUsed always equals the sum of gas of the included transactions and
// never exceeds GasLimit.
type Block struct {
	Number       uint64
	Transactions []Transaction
	Ledger       Ledger
	GasUsed      Gas
	GasLimit     Gas
}

// Genesis returns block zero with an empty ledger and the given gas limit.
func Genesis(gasLimit Gas) *Block {
	return &Block{
		Number:   0,
		Ledger:   NewLedger(),
		GasUsed:  0,
		GasLimit: gasLimit,
	}
}

// Next returns the successor block: the ledger is carried over by value,
// the number is incremented, gas used and transactions are reset. The
// receiver is treated as immutable from here on.
func (b *Block) Next() *Block {
	return &Block{
		Number:   b.Number + 1,
		Ledger:   b.Ledger.Clone(),
		GasUsed:  0,
		GasLimit: b.GasLimit,
	}
}

// TryApply validates tx against the remaining gas budget and the ledger
// and records it only when both checks pass. On any error the block and
// its ledger are left exactly as they were.
//
// Transactions are evaluated strictly in arrival order; there is no
// reordering or bin-packing. The caller decides when assembly stops and
// must stop offering transactions once it saw ErrGasLimitReached.
func (b *Block) TryApply(tx Transaction) error {
	if tx.GasCost() > b.GasLimit-b.GasUsed {
		return ErrGasLimitReached
	}
	if !b.Ledger.Apply(tx) {
		return ErrInvalidTransaction
	}
	b.GasUsed += tx.GasCost()
	b.Transactions = append(b.Transactions, tx)
	return nil
}

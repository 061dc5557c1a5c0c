// Package model defines the core chain types: transactions, the ledger and blocks.
package model

// Address identifies an account. It carries no structure beyond equality
// and ordering.
type Address uint32

// Balance is an account balance. Balances are never negative; every debit
// is guarded by a balance check before it happens.
type Balance uint64

// Gas is the resource unit bounding how much work a block may contain.
type Gas uint32

// Default gas cost attached to generated transactions.
const (
	MintGas     Gas = 2
	TransferGas Gas = 2
)

// Transaction is the closed set of operations a block can contain.
type Transaction interface {
	// GasCost returns the gas the transaction consumes when included.
	GasCost() Gas

	isTransaction()
}

// Mint creates Amount out of nothing and credits it to To.
type Mint struct {
	To     Address
	Amount Balance
	Gas    Gas
}

// Transfer moves Amount from one account to another.
type Transfer struct {
	From   Address
	To     Address
	Amount Balance
	Gas    Gas
}

// GasCost returns the gas the mint consumes.
func (m Mint) GasCost() Gas { return m.Gas }

// GasCost returns the gas the transfer consumes.
func (t Transfer) GasCost() Gas { return t.Gas }

func (Mint) isTransaction()     {}
func (Transfer) isTransaction() {}

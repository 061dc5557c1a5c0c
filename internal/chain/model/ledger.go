package model

// Ledger maps account addresses to balances. A missing key means balance
// zero. A ledger is mutably owned by exactly one block during assembly.
type Ledger map[Address]Balance

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// BalanceOf returns the balance recorded for addr, zero if absent.
func (l Ledger) BalanceOf(addr Address) Balance {
	return l[addr]
}

// Supply returns the sum of all balances.
func (l Ledger) Supply() Balance {
	var total Balance
	for _, b := range l {
		total += b
	}
	return total
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for addr, b := range l {
		out[addr] = b
	}
	return out
}

// Apply executes tx against the ledger and reports whether it was valid.
// The ledger is mutated only when Apply returns true; a failed transfer
// leaves every balance untouched.
//
// A mint always succeeds and credits the recipient, creating the account
// if needed. A transfer fails when the sender has no recorded balance at
// all (even for amount zero) or holds less than the amount.
//
// Balances are never negative; debits are pre-checked. Credits are not
// overflow-checked: a balance pushed past the Balance range wraps modulo
// 2^64.
func (l Ledger) Apply(tx Transaction) bool {
	switch t := tx.(type) {
	case Mint:
		l[t.To] += t.Amount
		return true
	case Transfer:
		held, ok := l[t.From]
		if !ok || held < t.Amount {
			return false
		}
		l[t.From] = held - t.Amount
		l[t.To] += t.Amount
		return true
	default:
		return false
	}
}

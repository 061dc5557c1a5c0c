package model

import "testing"

func TestRootDeterminism(t *testing.T) {
	genesis := Genesis(20)
	block := genesis.Next()
	for _, tx := range []Transaction{
		Mint{To: alice, Amount: 100, Gas: MintGas},
		Transfer{From: alice, To: bob, Amount: 99, Gas: TransferGas},
	} {
		if err := block.TryApply(tx); err != nil {
			t.Fatalf("TryApply() returned %v", err)
		}
	}

	if block.Root() != block.Root() {
		t.Error("Root() is not stable across evaluations")
	}
	if genesis.Root() == block.Root() {
		t.Error("genesis and successor produced the same root")
	}

	// An independently assembled block with identical contents agrees.
	other := Genesis(20).Next()
	other.TryApply(Mint{To: alice, Amount: 100, Gas: MintGas})
	other.TryApply(Transfer{From: alice, To: bob, Amount: 99, Gas: TransferGas})
	if block.Root() != other.Root() {
		t.Error("identical blocks produced different roots")
	}
}

func TestRootSensitivity(t *testing.T) {
	base := func() *Block {
		b := Genesis(20).Next()
		b.TryApply(Mint{To: alice, Amount: 100, Gas: MintGas})
		return b
	}

	b := base()
	want := b.Root()

	numbered := base()
	numbered.Number = 7
	if numbered.Root() == want {
		t.Error("root ignores block number")
	}

	credited := base()
	credited.Ledger[bob] = 1
	if credited.Root() == want {
		t.Error("root ignores ledger contents")
	}

	burned := base()
	burned.GasUsed++
	if burned.Root() == want {
		t.Error("root ignores gas used")
	}
}

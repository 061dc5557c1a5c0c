package loadgen

import (
	"testing"

	"github.com/goodnatureofminers/chainexec/internal/chain/codec"
	"github.com/goodnatureofminers/chainexec/internal/chain/model"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for i := 0; i < 100; i++ {
		got, want := a.Next(), b.Next()
		if got != want {
			t.Fatalf("streams diverged at %d: %v vs %v", i, got, want)
		}
	}
}

func TestGeneratorProducesBothVariants(t *testing.T) {
	g := NewGenerator(1)

	var mints, transfers int
	for i := 0; i < 1000; i++ {
		switch tx := g.Next().(type) {
		case model.Mint:
			mints++
			if tx.Gas < model.MintGas || tx.Gas >= model.MintGas+4 {
				t.Fatalf("mint gas out of range: %d", tx.Gas)
			}
			if tx.Amount >= maxAmount {
				t.Fatalf("mint amount out of range: %d", tx.Amount)
			}
		case model.Transfer:
			transfers++
			if tx.Gas < model.TransferGas || tx.Gas >= model.TransferGas+2 {
				t.Fatalf("transfer gas out of range: %d", tx.Gas)
			}
		default:
			t.Fatalf("unexpected transaction type %T", tx)
		}
	}
	if mints == 0 || transfers == 0 {
		t.Fatalf("expected a mix of variants, got %d mints and %d transfers", mints, transfers)
	}
}

func TestGeneratorOutputDecodes(t *testing.T) {
	g := NewGenerator(7)

	for i := 0; i < 100; i++ {
		tx := g.Next()
		raw := codec.Encode(tx)
		decoded, n, err := codec.Decode(raw)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if n != len(raw) {
			t.Fatalf("Decode() consumed %d of %d bytes", n, len(raw))
		}
		if decoded != tx {
			t.Fatalf("round trip mismatch: %v vs %v", decoded, tx)
		}
	}
}

package model

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Root derives the block's identity digest from its number, transactions,
// ledger and gas used. Two blocks with identical contents produce the same
// root; the digest is for equality and display only, not a cryptographic
// commitment.
func (b *Block) Root() uint64 {
	d := xxhash.New()
	writeUint64(d, b.Number)
	for _, tx := range b.Transactions {
		writeTransaction(d, tx)
	}
	// Ledger entries are folded in ascending address order so the digest
	// does not depend on map iteration order.
	addrs := make([]Address, 0, len(b.Ledger))
	for addr := range b.Ledger {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, addr := range addrs {
		writeUint32(d, uint32(addr))
		writeUint64(d, uint64(b.Ledger[addr]))
	}
	writeUint32(d, uint32(b.GasUsed))
	return d.Sum64()
}

func writeTransaction(d *xxhash.Digest, tx Transaction) {
	switch t := tx.(type) {
	case Mint:
		_, _ = d.Write([]byte{0x00})
		writeUint32(d, uint32(t.To))
		writeUint64(d, uint64(t.Amount))
		writeUint32(d, uint32(t.Gas))
	case Transfer:
		_, _ = d.Write([]byte{0x01})
		writeUint32(d, uint32(t.From))
		writeUint32(d, uint32(t.To))
		writeUint64(d, uint64(t.Amount))
		writeUint32(d, uint32(t.Gas))
	}
}

func writeUint32(d *xxhash.Digest, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, _ = d.Write(buf[:])
}

func writeUint64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

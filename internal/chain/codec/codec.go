// Package codec implements the fixed-width binary wire format for
// transactions. All fields are big-endian; there is no variable-length
// encoding.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/chainexec/internal/chain/model"
)

const (
	tagMint     = 0x00
	tagTransfer = 0x01

	// MintSize and TransferSize are the exact encoded lengths of the two
	// transaction variants, tag byte included.
	MintSize     = 17
	TransferSize = 21
)

var (
	// ErrUnknownTag marks a payload whose leading byte is not a known
	// transaction variant.
	ErrUnknownTag = errors.New("unknown transaction tag")
	// ErrShortBuffer marks a payload with fewer bytes than its variant
	// requires.
	ErrShortBuffer = errors.New("transaction buffer too short")
)

// Encode serializes tx into its fixed-width wire form.
func Encode(tx model.Transaction) []byte {
	switch t := tx.(type) {
	case model.Mint:
		buf := make([]byte, MintSize)
		buf[0] = tagMint
		binary.BigEndian.PutUint32(buf[1:5], uint32(t.To))
		binary.BigEndian.PutUint64(buf[5:13], uint64(t.Amount))
		binary.BigEndian.PutUint32(buf[13:17], uint32(t.Gas))
		return buf
	case model.Transfer:
		buf := make([]byte, TransferSize)
		buf[0] = tagTransfer
		binary.BigEndian.PutUint32(buf[1:5], uint32(t.From))
		binary.BigEndian.PutUint32(buf[5:9], uint32(t.To))
		binary.BigEndian.PutUint64(buf[9:17], uint64(t.Amount))
		binary.BigEndian.PutUint32(buf[17:21], uint32(t.Gas))
		return buf
	default:
		return nil
	}
}

// Decode reads exactly one transaction from the front of buf and returns
// it together with the number of bytes consumed. Any remainder is left to
// the caller. A malformed payload is a recoverable error, never a panic.
func Decode(buf []byte) (model.Transaction, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrShortBuffer
	}
	switch buf[0] {
	case tagMint:
		if len(buf) < MintSize {
			return nil, 0, fmt.Errorf("mint needs %d bytes, have %d: %w", MintSize, len(buf), ErrShortBuffer)
		}
		return model.Mint{
			To:     model.Address(binary.BigEndian.Uint32(buf[1:5])),
			Amount: model.Balance(binary.BigEndian.Uint64(buf[5:13])),
			Gas:    model.Gas(binary.BigEndian.Uint32(buf[13:17])),
		}, MintSize, nil
	case tagTransfer:
		if len(buf) < TransferSize {
			return nil, 0, fmt.Errorf("transfer needs %d bytes, have %d: %w", TransferSize, len(buf), ErrShortBuffer)
		}
		return model.Transfer{
			From:   model.Address(binary.BigEndian.Uint32(buf[1:5])),
			To:     model.Address(binary.BigEndian.Uint32(buf[5:9])),
			Amount: model.Balance(binary.BigEndian.Uint64(buf[9:17])),
			Gas:    model.Gas(binary.BigEndian.Uint32(buf[17:21])),
		}, TransferSize, nil
	default:
		return nil, 0, fmt.Errorf("tag 0x%02x: %w", buf[0], ErrUnknownTag)
	}
}

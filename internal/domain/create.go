package domain

import (
	"encoding/binary"
	"math"
	"math/bits"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ComputeCreateAddress returns the address of a contract created with CREATE
// by origin at the given nonce: the last 20 bytes of keccak256(rlp([origin, nonce])).
//
// The RLP list is assembled by hand. Its payload is 0x94 ∥ origin (21 bytes)
// followed by the nonce item, so the whole list always stays under 56 bytes.
func ComputeCreateAddress(origin common.Address, nonce uint64) (common.Address, error) {
	if nonce == math.MaxUint64 {
		return common.Address{}, &ValidationError{
			Field: "nonce",
			Value: strconv.FormatUint(nonce, 10),
			Err:   ErrMaxNonceExceeded,
		}
	}

	buf := make([]byte, 0, 32)
	switch {
	case nonce == 0:
		buf = append(buf, 0xd6, 0x94)
		buf = append(buf, origin.Bytes()...)
		buf = append(buf, 0x80)
	case nonce <= 0x7f:
		buf = append(buf, 0xd6, 0x94)
		buf = append(buf, origin.Bytes()...)
		buf = append(buf, byte(nonce))
	default:
		width := (bits.Len64(nonce) + 7) / 8
		var be [8]byte
		binary.BigEndian.PutUint64(be[:], nonce)

		buf = append(buf, byte(0xd6+width), 0x94)
		buf = append(buf, origin.Bytes()...)
		buf = append(buf, byte(0x80+width))
		buf = append(buf, be[8-width:]...)
	}

	return common.BytesToAddress(crypto.Keccak256(buf)[12:]), nil
}

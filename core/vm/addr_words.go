package vm

import (
	"github.com/evmcore/evmcore/core/types"
	"github.com/holiman/uint256"
)

// addressToWord left-zero-pads a 20-byte address into a 256-bit word, the
// layout every ADDRESS/ORIGIN/CALLER-family opcode pushes.
func addressToWord(a types.Address) *Word {
	var b [32]byte
	copy(b[12:], a[:])
	return new(uint256.Int).SetBytes(b[:])
}

// wordToAddress truncates a word to its low 20 bytes.
func wordToAddress(w *Word) types.Address {
	full := w.Bytes32()
	var addr types.Address
	copy(addr[:], full[12:])
	return addr
}

func hashToWord(h types.Hash) *Word { return new(uint256.Int).SetBytes(h[:]) }

func wordToHash(w *Word) types.Hash { return types.Hash(w.Bytes32()) }

package vm

import (
	"github.com/holiman/uint256"
)

// Word is the EVM's 256-bit machine word. It is a thin alias over
// uint256.Int: all arithmetic is modulo 2^256 unless a function name says
// "signed" or "mod". holiman/uint256 gives us overflowing fixed-width
// arithmetic without math/big's allocator traffic; the opcode handlers in
// instructions_*.go call its
// methods (Add, SDiv, ExtendSign, SRsh, Byte, ...) directly rather than
// re-deriving 256-bit arithmetic by hand.
type Word = uint256.Int

// NewWord returns the zero word.
func NewWord() *Word { return new(uint256.Int) }

// WordFromUint64 returns a word holding v.
func WordFromUint64(v uint64) *Word { return new(uint256.Int).SetUint64(v) }

// WordFromBytes converts a big-endian byte slice into a word, truncating to
// the low 32 bytes if longer (uint256.SetBytes semantics).
func WordFromBytes(b []byte) *Word { return new(uint256.Int).SetBytes(b) }

// boolWord returns 1 if cond else 0, as the EVM boolean opcodes require.
func boolWord(cond bool) *Word {
	if cond {
		return new(uint256.Int).SetOne()
	}
	return new(uint256.Int)
}

package vm

// maxPushPad is the number of trailing STOP bytes appended after the real
// code so that an unchecked PC advance across the widest push (PUSH32, 33
// bytes including the opcode) always lands on a terminating opcode
// (spec.md §3/§9).
const maxPushPad = 33

// Bytecode is validated, analyzed code: the padded byte stream plus the
// jump-destination bitmap and the per-basic-block gas totals the analyzer
// (out of scope per spec.md §1) is assumed to have produced. Analyze below
// is the minimal in-scope constructor needed to exercise the interpreter
// end to end; a production analyzer may compute the same bitmap/gas-block
// map by a faster algorithm as long as the result is identical.
type Bytecode struct {
	code       []byte // original code, unpadded, for Len()/reporting
	padded     []byte // code + trailing STOP padding
	jumpdests  []bool // one entry per byte of `code`; true iff valid JUMPDEST
	blockGas   map[uint64]uint64
}

// Analyze builds a Bytecode from raw contract code.
func Analyze(code []byte) *Bytecode {
	padded := make([]byte, len(code)+maxPushPad)
	copy(padded, code)
	// Tail is already zero-valued, i.e. STOP (0x00).

	bc := &Bytecode{
		code:      code,
		padded:    padded,
		jumpdests: make([]bool, len(code)),
		blockGas:  make(map[uint64]uint64),
	}
	bc.markJumpdests()
	bc.computeGasBlocks()
	return bc
}

// markJumpdests scans the code once, skipping PUSH immediate data, and
// records every byte offset holding a true JUMPDEST opcode.
func (bc *Bytecode) markJumpdests() {
	code := bc.code
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		if op == JUMPDEST {
			bc.jumpdests[i] = true
			i++
			continue
		}
		if op.IsPush() {
			i += 1 + op.PushBytes()
			continue
		}
		i++
	}
}

// blockEnders is the set of opcodes that terminate a basic block per
// spec.md §4.3: control flow, halting opcodes, and opcodes whose dynamic
// gas or host interaction make block-level batching unsafe. JUMPDEST is
// handled separately by computeGasBlocks: it starts a block rather than
// ending one (spec.md §4.5: "JUMPDEST charges the block starting at PC−1,
// the JUMPDEST byte itself"), since it is the landing point every JUMP/
// JUMPI targets and must always be a recorded block head.
func isBlockEnder(op OpCode) bool {
	switch op {
	case JUMP, JUMPI, STOP, RETURN, REVERT, SELFDESTRUCT,
		CALL, CALLCODE, DELEGATECALL, STATICCALL, CREATE, CREATE2,
		INVALID, SSTORE, GAS, SLOAD:
		return true
	default:
		return false
	}
}

// computeGasBlocks partitions the code into basic blocks and sums each
// block's constant per-opcode cost using baseConstantGas, a single
// fork-invariant table; fork-dependent pricing is applied only by the
// handlers' dynamicGas closures, which read in.Fork.
func (bc *Bytecode) computeGasBlocks() {
	code := bc.code
	table := baseConstantGas()

	blockStart := uint64(0)
	var blockTotal uint64
	flush := func(end uint64) {
		bc.blockGas[blockStart] = blockTotal
		blockStart = end
		blockTotal = 0
	}

	i := 0
	for i < len(code) {
		op := OpCode(code[i])

		// A JUMPDEST reachable mid-block starts a fresh block at its own
		// offset: the preceding block's total excludes the JUMPDEST's gas,
		// which is charged as the first opcode of the new block instead.
		if op == JUMPDEST && uint64(i) != blockStart {
			flush(uint64(i))
		}

		blockTotal += table[op]

		if op.IsPush() {
			i += 1 + op.PushBytes()
			continue
		}

		i++
		if isBlockEnder(op) {
			flush(uint64(i))
		}
	}
	if blockTotal != 0 || len(bc.blockGas) == 0 {
		bc.blockGas[blockStart] = blockTotal
	}
}

// IsJumpdest reports whether pc addresses a valid JUMPDEST in the original
// (unpadded) code.
func (bc *Bytecode) IsJumpdest(pc uint64) bool {
	if pc >= uint64(len(bc.jumpdests)) {
		return false
	}
	return bc.jumpdests[pc]
}

// Len returns the length of the original, unpadded code.
func (bc *Bytecode) Len() int { return len(bc.code) }

// Raw returns the original, unpadded code (for CODECOPY/EXTCODECOPY/CODESIZE).
func (bc *Bytecode) Raw() []byte { return bc.code }

// At returns the byte at pc, including the trailing STOP padding; pc beyond
// the padded buffer also reads as STOP (spec.md: "PC is always either a
// valid offset ... or points at an implicit trailing STOP").
func (bc *Bytecode) At(pc uint64) byte {
	if pc < uint64(len(bc.padded)) {
		return bc.padded[pc]
	}
	return byte(STOP)
}

// GasBlock returns the static gas total of the basic block whose head is at
// pc, and whether pc is in fact a recorded block head.
func (bc *Bytecode) GasBlock(pc uint64) (uint64, bool) {
	g, ok := bc.blockGas[pc]
	return g, ok
}

package vm

import "math"

// Gas cost constants, grounded on the teacher's core/vm/gas.go and
// core/vm/gas_table.go (Cancun/Berlin/London baseline, EIP-2929/3529).
const (
	GasQuickStep   uint64 = 2  // Gbase
	GasFastestStep uint64 = 3  // Gverylow
	GasFastStep    uint64 = 5  // Glow
	GasMidStep     uint64 = 8  // Gmid
	GasSlowStep    uint64 = 10 // Ghigh
	GasExtStep     uint64 = 20 // Gext

	GasJumpdest uint64 = 1

	// EIP-2929 cold/warm access (Berlin+).
	ColdAccountAccessCost uint64 = 2600
	ColdSloadCost         uint64 = 2100
	WarmStorageReadCost   uint64 = 100

	// CALL-with-value stipend passed to the callee, and surcharges.
	CallStipend          uint64 = 2300
	CallValueTransferGas uint64 = 9000
	CallNewAccountGas    uint64 = 25000
	CallGasFraction      uint64 = 64 // EIP-150 1/64 rule

	GasCreate        uint64 = 32000
	Keccak256WordGas uint64 = 6
	Keccak256Gas     uint64 = 30
	InitCodeWordGas  uint64 = 2 // EIP-3860
	MaxCodeSize      int    = 24576
	MaxInitCodeSize  int    = 2 * MaxCodeSize // EIP-3860

	// EIP-2200/3529 SSTORE schedule.
	SstoreSetGas               uint64 = 20000
	SstoreResetGas             uint64 = 2900
	SstoreClearsScheduleRefund uint64 = 4800

	SelfdestructRefundGas        uint64 = 24000 // pre-London
	SelfdestructNewAccountGas    uint64 = 25000

	LogGas      uint64 = 375
	LogTopicGas uint64 = 375
	LogDataGas  uint64 = 8

	ExtcodecopyWordGas uint64 = 3
	MemoryGas          uint64 = 3 // linear term per word of memory expansion

	MaxRefundQuotientLondon uint64 = 5 // EIP-3529: refund capped at gasUsed/5
	MaxRefundQuotientLegacy uint64 = 2 // pre-London: gasUsed/2
)

// Gas tracks remaining gas, the refund counter, and the original limit for
// one call frame (spec.md §3/§4.3).
type Gas struct {
	limit     uint64
	remaining uint64
	refund    uint64
}

// NewGas returns a Gas meter initialized with limit gas available.
func NewGas(limit uint64) *Gas {
	return &Gas{limit: limit, remaining: limit}
}

// Limit returns the original gas limit of the frame.
func (g *Gas) Limit() uint64 { return g.limit }

// Remaining returns the gas left to spend.
func (g *Gas) Remaining() uint64 { return g.remaining }

// Refund returns the accumulated refund counter.
func (g *Gas) Refund() uint64 { return g.refund }

// RecordCost deducts n gas. It reports false when remaining < n (the
// interpreter loop turns this into an OutOfGas Return); the meter is left
// unmodified in that case.
func (g *Gas) RecordCost(n uint64) bool {
	if g.remaining < n {
		return false
	}
	g.remaining -= n
	return true
}

// EraseCost credits unused sub-call gas back to remaining. Called exactly
// once per returned CALL*/CREATE* (testable property 3 in spec.md §8).
func (g *Gas) EraseCost(n uint64) {
	g.remaining += n
}

// RecordRefund accumulates delta into the refund counter. delta may be negative
// (EIP-3529 can subtract a previously granted refund when a slot's net
// effect is undone within the same transaction).
func (g *Gas) RecordRefund(delta int64) {
	if delta >= 0 {
		g.refund += uint64(delta)
		return
	}
	d := uint64(-delta)
	if d > g.refund {
		g.refund = 0
		return
	}
	g.refund -= d
}

// MemoryGasCost returns the total (not incremental) gas cost of memory of
// the given byte size: 3*words + words^2/512. Returns math.MaxUint64 on
// overflow to signal unconditional out-of-gas.
func MemoryGasCost(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	words := toWordSize(size)
	if words > 0xFFFFFFFF { // ~4.3e9 words; words*words would overflow uint64
		return math.MaxUint64
	}
	linear := words * MemoryGas
	quadratic := words * words / 512
	if math.MaxUint64-linear < quadratic {
		return math.MaxUint64
	}
	return linear + quadratic
}

// MemoryExpansionGas returns the incremental gas cost of growing memory
// from oldSize to newSize bytes (0 if newSize <= oldSize).
func MemoryExpansionGas(oldSize, newSize uint64) uint64 {
	if newSize <= oldSize {
		return 0
	}
	newCost := MemoryGasCost(newSize)
	oldCost := MemoryGasCost(oldSize)
	if newCost == math.MaxUint64 {
		return math.MaxUint64
	}
	return newCost - oldCost
}

// CapRefund applies the fork-gated max-refund-quotient rule to a frame's
// accumulated refund counter, returning the refund actually payable against
// gasUsed (spec.md §4.3). This is a transaction-finalization step, not part
// of the per-opcode loop in interpreter.go, so it lives here as a function
// the surrounding Host/engine calls once after a top-level frame halts,
// rather than inside Gas itself.
func CapRefund(refund, gasUsed uint64, fork Fork) uint64 {
	capped := gasUsed / maxRefundQuotient(fork)
	if refund > capped {
		return capped
	}
	return refund
}

// CallGas computes the 1/64-rule gas forwarded to a child CALL*/CREATE*
// frame (spec.md §4.3/§4.6): min(requested, remaining - remaining/64).
// availableAfterBlock is the parent's remaining gas after the static
// portion of the call has already been charged.
func CallGas(availableAfterBlock, requested uint64, forward1of64 bool) uint64 {
	if !forward1of64 {
		if requested > availableAfterBlock {
			return availableAfterBlock
		}
		return requested
	}
	capped := availableAfterBlock - availableAfterBlock/CallGasFraction
	if requested > capped {
		return capped
	}
	return requested
}

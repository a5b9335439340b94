package vm

import "github.com/ethereum/go-ethereum/log"

// EnableTrace turns on per-step structured tracing of this frame via
// go-ethereum/log, the same logger the teacher's cmd/eth2030-geth wires up
// for node-level logging (SPEC_FULL.md's ambient Logging section). This is
// independent of EnableHooks: hooks are a Host-visible callback boundary,
// trace is purely diagnostic output and never affects control flow.
func (in *Interpreter) EnableTrace() { in.trace = true }

func (in *Interpreter) traceStep(op OpCode) {
	if !in.trace {
		return
	}
	log.Debug("evm step",
		"pc", in.pc,
		"op", op.String(),
		"gas", in.Gas.Remaining(),
		"depth", in.Depth,
		"stack", in.Stack.Len(),
	)
}

// logFatalHostError records an execute() call that returned a non-nil error,
// i.e. a host/internal invariant violation that minStack/maxStack checks
// should have already ruled out (spec.md §4.5's FatalExternalError band).
func logFatalHostError(op OpCode, pc uint64, err error) {
	log.Error("evm fatal host error", "op", op.String(), "pc", pc, "err", err)
}

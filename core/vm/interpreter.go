package vm

import "github.com/evmcore/evmcore/core/types"

// MaxCallDepth is the maximum nested CALL/CREATE depth (spec.md §4.6,
// historically EIP-150's de facto 1024 limit).
const MaxCallDepth = 1024

// Interpreter executes one call frame's bytecode against a Host. It owns
// the frame's Stack, Memory, and Gas meter; the Contract is immutable
// input. Grounded on the teacher's core/vm/interpreter.go EVMInterpreter,
// restructured so CALL/CREATE opcodes only build boundary structs and hand
// off to Host rather than recursing into a sibling interpreter directly.
type Interpreter struct {
	Contract *Contract
	Stack    *Stack
	Memory   *Memory
	Gas      *Gas

	Fork   Fork
	Static bool
	Depth  int

	pc     uint64
	output []byte // pending RETURN/REVERT data, set by opReturn/opRevert
	lastReturnData []byte // RETURNDATASIZE/RETURNDATACOPY source, set after CALL*/CREATE*

	hooks bool // Step/StepEnd invoked when true (spec.md §4.5/§5)
	trace bool // per-step structured logging via go-ethereum/log
}

// NewInterpreter builds a frame ready to Run against contract's code.
func NewInterpreter(contract *Contract, fork Fork, static bool, depth int) *Interpreter {
	return &Interpreter{
		Contract: contract,
		Stack:    NewStack(),
		Memory:   NewMemory(),
		Gas:      NewGas(contract.Gas),
		Fork:     fork,
		Static:   static,
		Depth:    depth,
	}
}

// EnableHooks turns on Step/StepEnd host callbacks for this frame.
func (in *Interpreter) EnableHooks() { in.hooks = true }

// PC returns the current program counter.
func (in *Interpreter) PC() uint64 { return in.pc }

// Output returns the bytes queued by RETURN/REVERT once Run has halted.
func (in *Interpreter) Output() []byte { return in.output }

// LastReturnData returns the data of the most recently completed sub-call,
// the source for RETURNDATASIZE/RETURNDATACOPY.
func (in *Interpreter) LastReturnData() []byte { return in.lastReturnData }

// Run drives the fetch-decode-execute loop until a terminal Return is
// produced (spec.md §4.5). It charges each basic block's static gas in one
// step at the block's head, then per-opcode dynamic gas and memory
// expansion before executing.
func (in *Interpreter) Run(host Host) Return {
	if in.Depth > MaxCallDepth {
		return CallTooDeep
	}

	code := in.Contract.Code

	for {
		if in.hooks {
			if r := host.Step(in); r != Continue {
				return in.halt(host, r)
			}
		}

		op := OpCode(code.At(in.pc))
		in.traceStep(op)
		entry := defaultJumpTable[op]
		if entry == nil {
			return in.halt(host, InvalidOpcode)
		}
		if !IsActivated(op, in.Fork) {
			return in.halt(host, NotActivated)
		}
		if in.Static && entry.writes {
			return in.halt(host, StateChangeDuringStaticCall)
		}

		if blockGas, isHead := code.GasBlock(in.pc); isHead {
			if !in.Gas.RecordCost(blockGas) {
				return in.halt(host, OutOfGas)
			}
		}

		if err := in.Stack.Require(entry.minStack); err != nil {
			return in.halt(host, StackUnderflowErr)
		}
		if in.Stack.Len() > entry.maxStack {
			return in.halt(host, StackOverflowErr)
		}

		var memSize uint64
		if entry.memorySize != nil {
			size, ok := entry.memorySize(in.Stack)
			if ok && size > uint64(in.Memory.Len()) {
				expansionGas := MemoryExpansionGas(uint64(in.Memory.Len()), size)
				if !in.Gas.RecordCost(expansionGas) {
					return in.halt(host, OutOfGas)
				}
				if err := in.Memory.Resize(size); err != nil {
					return in.halt(host, InvalidMemoryRange)
				}
			}
			memSize = size
		}

		if entry.dynamicGas != nil {
			cost, abort := entry.dynamicGas(in, host, memSize)
			if abort != Continue {
				return in.halt(host, abort)
			}
			if !in.Gas.RecordCost(cost) {
				return in.halt(host, OutOfGas)
			}
		}

		in.pc++
		result, err := entry.execute(in, host)
		if err != nil {
			logFatalHostError(op, in.pc, err)
			return in.halt(host, FatalExternalError)
		}
		if result != Continue {
			return in.halt(host, result)
		}

		if in.hooks {
			if r := host.StepEnd(in, Continue); r != Continue {
				return in.halt(host, r)
			}
		}
	}
}

func (in *Interpreter) halt(host Host, result Return) Return {
	if in.hooks {
		if r := host.StepEnd(in, result); r != Continue {
			return r
		}
	}
	return result
}

// advancePC skips n extra bytes past the current pc, used by PUSH handlers
// to step over their immediate data.
func (in *Interpreter) advancePC(n uint64) { in.pc += n }

// jumpTo validates dest as a JUMPDEST in the frame's code and sets pc.
func (in *Interpreter) jumpTo(dest *Word) Return {
	if !dest.IsUint64() {
		return InvalidJump
	}
	d := dest.Uint64()
	if !in.Contract.Code.IsJumpdest(d) {
		return InvalidJump
	}
	in.pc = d
	return Continue
}

// address helpers used by several instruction families.
func (in *Interpreter) addr() types.Address  { return in.Contract.Address }
func (in *Interpreter) caller() types.Address { return in.Contract.Caller }

package vm

import "github.com/evmcore/evmcore/core/types"

// CallScheme identifies which CALL-family opcode produced a CallInputs.
type CallScheme uint8

const (
	Call CallScheme = iota
	CallCode
	DelegateCall
	StaticCall
)

// CreateScheme identifies which CREATE-family opcode produced a CreateInputs.
type CreateScheme uint8

const (
	CreateScheme CreateScheme = iota
	Create2Scheme
)

// BlockContext is the block-level environment (spec.md §6 env()).
type BlockContext struct {
	Coinbase    types.Address
	Number      *Word
	Timestamp   uint64
	Difficulty  *Word // PrevRandao post-Merge, Difficulty pre-Merge
	GasLimit    uint64
	BaseFee     *Word // nil pre-London
}

// TxContext is the transaction-level environment.
type TxContext struct {
	Origin   types.Address
	GasPrice *Word
}

// Env bundles everything ORIGIN/GASPRICE/COINBASE/TIMESTAMP/NUMBER/
// PREVRANDAO/GASLIMIT/CHAINID/BASEFEE read from the host.
type Env struct {
	ChainID uint64
	Block   BlockContext
	Tx      TxContext
}

// TransferInfo describes the balance movement a CALL performs.
type TransferInfo struct {
	Source types.Address
	Target types.Address
	Value  *Word
}

// CallContext is the (address, caller, code_address, apparent_value, scheme)
// tuple the four CALL-family opcodes build differently (spec.md §4.6).
type CallContext struct {
	Address        types.Address // ADDRESS inside the callee
	Caller         types.Address // CALLER inside the callee
	CodeAddress    types.Address // account the code is read from
	ApparentValue  *Word         // CALLVALUE inside the callee
	Scheme         CallScheme
}

// CallInputs is the core-produced boundary type handed to Host.Call.
type CallInputs struct {
	Transfer  TransferInfo
	Input     []byte
	GasLimit  uint64
	Context   CallContext
	IsStatic  bool
}

// CreateInputs is the core-produced boundary type handed to Host.Create.
type CreateInputs struct {
	Caller   types.Address
	Scheme   CreateScheme
	Salt     *Word // only meaningful for Create2Scheme
	Value    *Word
	InitCode []byte
	GasLimit uint64
}

// SstoreResult is what Host.SStore reports: the slot's original
// (transaction-start), pre-write, and post-write values, plus whether the
// slot was cold before this access.
type SstoreResult struct {
	Original, Old, New Word
	IsCold             bool
}

// SelfdestructResult is what Host.SelfDestruct reports.
type SelfdestructResult struct {
	PreviouslyDestroyed bool
	TargetExists        bool
	TargetIsCold        bool
}

// Host is the environment/state oracle the interpreter is run against
// (spec.md §6). Every accessor's second-to-last documented return in
// spec.md ("is_cold") is modeled directly; a bool `ok` return standing in
// for spec.md's "None signals FatalExternalError" convention, since Go
// has no option type at this boundary.
type Host interface {
	Env() (Env, bool)

	Balance(addr types.Address) (value *Word, isCold bool, ok bool)
	Code(addr types.Address) (code []byte, isCold bool, ok bool)
	CodeHash(addr types.Address) (hash types.Hash, isCold bool, ok bool)
	LoadAccount(addr types.Address) (isCold, exists, ok bool)
	BlockHash(number uint64) (hash types.Hash, ok bool)

	SLoad(addr types.Address, key types.Hash) (value *Word, isCold bool, ok bool)
	SStore(addr types.Address, key types.Hash, newValue *Word) (SstoreResult, bool)

	Log(addr types.Address, topics []types.Hash, data []byte) bool

	SelfDestruct(from, to types.Address) (SelfdestructResult, bool)

	Create(inputs *CreateInputs) (Return, *types.Address, uint64, []byte)
	CallHost(inputs *CallInputs) (Return, uint64, []byte)

	// Step/StepEnd are invoked around every opcode only when the
	// interpreter is run with hooks enabled (spec.md §4.5/§5). Returning
	// anything other than Continue from StepEnd (or Continue-equivalent
	// from Step) requests early termination with that Return code.
	Step(in *Interpreter) Return
	StepEnd(in *Interpreter, result Return) Return
}

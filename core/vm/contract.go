package vm

import (
	"github.com/evmcore/evmcore/core/types"
)

// Contract holds the immutable inputs of one call frame: the analyzed code
// being executed, the addresses involved, the apparent value, and the
// calldata. It never changes during a run; only the Interpreter's stack,
// memory, and gas mutate (spec.md §3 "Contract").
type Contract struct {
	Caller     types.Address
	Address    types.Address // the account whose storage this frame affects
	CodeAddr   types.Address // the account the executing code was loaded from (DELEGATECALL/CALLCODE differ from Address)
	Value      *Word
	Input      []byte
	Code       *Bytecode
	Gas        uint64
}

// NewContract builds a Contract for a top-level or CALL-family frame. For
// DELEGATECALL/CALLCODE, set CodeAddr separately from Address after
// construction (see instructions_call.go).
func NewContract(caller, address types.Address, value *Word, gas uint64, code *Bytecode, input []byte) *Contract {
	if value == nil {
		value = NewWord()
	}
	return &Contract{
		Caller:   caller,
		Address:  address,
		CodeAddr: address,
		Value:    value,
		Input:    input,
		Code:     code,
		Gas:      gas,
	}
}

package vm

import "github.com/evmcore/evmcore/core/types"

// CREATE/CREATE2. Both opcodes are unconditionally rejected inside a
// STATICCALL frame by the interpreter loop itself (writes=true in the jump
// table), so neither handler re-checks in.Static.

func initCodeWordGas(length *Word, fork Fork) uint64 {
	if !fork.AtLeast(Shanghai) {
		return 0
	}
	if !length.IsUint64() {
		return ^uint64(0)
	}
	return toWordSize(length.Uint64()) * InitCodeWordGas
}

func dynGasCreate(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	length, err := in.Stack.Back(2)
	if err != nil {
		return 0, Continue
	}
	return initCodeWordGas(length, in.Fork), Continue
}

func dynGasCreate2(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	length, err := in.Stack.Back(2)
	if err != nil {
		return 0, Continue
	}
	if !length.IsUint64() {
		return ^uint64(0), Continue
	}
	words := toWordSize(length.Uint64())
	return words*Keccak256WordGas + initCodeWordGas(length, in.Fork), Continue
}

func createGasLimit(in *Interpreter) (uint64, bool) {
	forwarded := CallGas(in.Gas.Remaining(), in.Gas.Remaining(), gasForwarding1of64(in.Fork))
	if !in.Gas.RecordCost(forwarded) {
		return 0, false
	}
	return forwarded, true
}

func finishCreate(in *Interpreter, forwarded uint64, result Return, newAddr *types.Address, gasUsed uint64, retData []byte) {
	settleCallGas(in, forwarded, gasUsed)
	in.lastReturnData = retData
	if result.IsSuccess() && newAddr != nil {
		in.Stack.Push(addressToWord(*newAddr))
	} else {
		in.Stack.Push(NewWord())
	}
}

func opCreate(in *Interpreter, host Host) (Return, error) {
	valueW, _ := in.Stack.Pop()
	offsetW, _ := in.Stack.Pop()
	lengthW, _ := in.Stack.Pop()

	initCode := in.Memory.Get(offsetW.Uint64(), lengthW.Uint64())
	if len(initCode) > MaxInitCodeSize {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	forwarded, ok := createGasLimit(in)
	if !ok {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	inputs := &CreateInputs{
		Caller: in.addr(), Scheme: CreateScheme, Value: NewWord().Set(valueW),
		InitCode: initCode, GasLimit: forwarded,
	}
	result, newAddr, gasUsed, retData := host.Create(inputs)
	finishCreate(in, forwarded, result, newAddr, gasUsed, retData)
	return Continue, nil
}

func opCreate2(in *Interpreter, host Host) (Return, error) {
	valueW, _ := in.Stack.Pop()
	offsetW, _ := in.Stack.Pop()
	lengthW, _ := in.Stack.Pop()
	saltW, _ := in.Stack.Pop()

	initCode := in.Memory.Get(offsetW.Uint64(), lengthW.Uint64())
	if len(initCode) > MaxInitCodeSize {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	forwarded, ok := createGasLimit(in)
	if !ok {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	inputs := &CreateInputs{
		Caller: in.addr(), Scheme: Create2Scheme, Salt: NewWord().Set(saltW),
		Value: NewWord().Set(valueW), InitCode: initCode, GasLimit: forwarded,
	}
	result, newAddr, gasUsed, retData := host.Create(inputs)
	finishCreate(in, forwarded, result, newAddr, gasUsed, retData)
	return Continue, nil
}

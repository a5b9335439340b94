package vm

// CALL/CALLCODE/DELEGATECALL/STATICCALL. Each handler pops its operands,
// builds a CallInputs describing exactly how the four opcodes differ in
// (address, caller, code_address, apparent_value) per spec.md §4.6, and
// hands off to Host.CallHost — nested-call orchestration itself (snapshot,
// journaling, depth bookkeeping beyond this frame) is the Host's concern,
// out of scope per spec.md §1.

func callRequestedGas(gasW *Word) uint64 {
	if gasW.IsUint64() {
		return gasW.Uint64()
	}
	return ^uint64(0)
}

// writeCallResult copies at most retLength bytes of the sub-call's return
// data into memory at retOffset (already sized by memCallMem/
// memDelegateStaticMem before this runs).
func writeCallResult(in *Interpreter, retOffsetW, retLengthW *Word, data []byte) {
	if retLengthW.IsZero() {
		return
	}
	n := retLengthW.Uint64()
	if uint64(len(data)) < n {
		n = uint64(len(data))
	}
	in.Memory.Set(retOffsetW.Uint64(), data[:n])
}

func settleCallGas(in *Interpreter, forwarded, gasUsed uint64) {
	if gasUsed > forwarded {
		gasUsed = forwarded
	}
	in.Gas.EraseCost(forwarded - gasUsed)
}

func pushCallStatus(in *Interpreter, result Return) {
	in.Stack.Push(boolWord(result.IsSuccess()))
}

func dynGasCall(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	addrW, err := in.Stack.Back(1)
	if err != nil {
		return 0, Continue
	}
	valueW, err := in.Stack.Back(2)
	if err != nil {
		return 0, Continue
	}
	to := wordToAddress(addrW)

	isCold, exists, ok := host.LoadAccount(to)
	if !ok {
		return 0, FatalExternalError
	}
	var cost uint64
	if coldWarmAccounting(in.Fork) && isCold {
		cost += ColdAccountAccessCost - WarmStorageReadCost
	}
	if !valueW.IsZero() {
		cost += CallValueTransferGas
		if !exists {
			cost += CallNewAccountGas
		}
	}
	return cost, Continue
}

// dynGasCallNoValue is DELEGATECALL/STATICCALL's dynamicGas: cold-access
// delta only, since neither opcode can transfer value.
func dynGasCallNoValue(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	addrW, err := in.Stack.Back(1)
	if err != nil {
		return 0, Continue
	}
	to := wordToAddress(addrW)
	if !coldWarmAccounting(in.Fork) {
		return 0, Continue
	}
	isCold, _, ok := host.LoadAccount(to)
	if !ok {
		return 0, FatalExternalError
	}
	if isCold {
		return ColdAccountAccessCost - WarmStorageReadCost, Continue
	}
	return 0, Continue
}

func opCall(in *Interpreter, host Host) (Return, error) {
	gasW, _ := in.Stack.Pop()
	addrW, _ := in.Stack.Pop()
	valueW, _ := in.Stack.Pop()
	argsOffset, _ := in.Stack.Pop()
	argsLength, _ := in.Stack.Pop()
	retOffset, _ := in.Stack.Pop()
	retLength, _ := in.Stack.Pop()

	to := wordToAddress(addrW)

	if in.Static && !valueW.IsZero() {
		return CallNotAllowedInsideStatic, nil
	}

	forwarded := CallGas(in.Gas.Remaining(), callRequestedGas(gasW), gasForwarding1of64(in.Fork))
	if !in.Gas.RecordCost(forwarded) {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	gasLimit := forwarded
	if !valueW.IsZero() {
		gasLimit += CallStipend
	}

	input := in.Memory.Get(argsOffset.Uint64(), argsLength.Uint64())
	inputs := &CallInputs{
		Transfer: TransferInfo{Source: in.addr(), Target: to, Value: NewWord().Set(valueW)},
		Input:    input,
		GasLimit: gasLimit,
		Context: CallContext{
			Address: to, Caller: in.addr(), CodeAddress: to,
			ApparentValue: NewWord().Set(valueW), Scheme: Call,
		},
		IsStatic: in.Static,
	}

	result, gasUsed, retData := host.CallHost(inputs)
	settleCallGas(in, forwarded, gasUsed)
	in.lastReturnData = retData
	writeCallResult(in, retOffset, retLength, retData)
	pushCallStatus(in, result)
	return Continue, nil
}

func opCallCode(in *Interpreter, host Host) (Return, error) {
	gasW, _ := in.Stack.Pop()
	addrW, _ := in.Stack.Pop()
	valueW, _ := in.Stack.Pop()
	argsOffset, _ := in.Stack.Pop()
	argsLength, _ := in.Stack.Pop()
	retOffset, _ := in.Stack.Pop()
	retLength, _ := in.Stack.Pop()

	codeAddr := wordToAddress(addrW)

	forwarded := CallGas(in.Gas.Remaining(), callRequestedGas(gasW), gasForwarding1of64(in.Fork))
	if !in.Gas.RecordCost(forwarded) {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	gasLimit := forwarded
	if !valueW.IsZero() {
		gasLimit += CallStipend
	}

	input := in.Memory.Get(argsOffset.Uint64(), argsLength.Uint64())
	inputs := &CallInputs{
		// CALLCODE executes codeAddr's code in the caller's own storage
		// context: Target/Address stay the caller, only CodeAddress differs.
		Transfer: TransferInfo{Source: in.addr(), Target: in.addr(), Value: NewWord().Set(valueW)},
		Input:    input,
		GasLimit: gasLimit,
		Context: CallContext{
			Address: in.addr(), Caller: in.addr(), CodeAddress: codeAddr,
			ApparentValue: NewWord().Set(valueW), Scheme: CallCode,
		},
		IsStatic: in.Static,
	}

	result, gasUsed, retData := host.CallHost(inputs)
	settleCallGas(in, forwarded, gasUsed)
	in.lastReturnData = retData
	writeCallResult(in, retOffset, retLength, retData)
	pushCallStatus(in, result)
	return Continue, nil
}

func opDelegateCall(in *Interpreter, host Host) (Return, error) {
	gasW, _ := in.Stack.Pop()
	addrW, _ := in.Stack.Pop()
	argsOffset, _ := in.Stack.Pop()
	argsLength, _ := in.Stack.Pop()
	retOffset, _ := in.Stack.Pop()
	retLength, _ := in.Stack.Pop()

	codeAddr := wordToAddress(addrW)

	forwarded := CallGas(in.Gas.Remaining(), callRequestedGas(gasW), gasForwarding1of64(in.Fork))
	if !in.Gas.RecordCost(forwarded) {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	input := in.Memory.Get(argsOffset.Uint64(), argsLength.Uint64())
	inputs := &CallInputs{
		// DELEGATECALL keeps the caller's own address, caller, AND apparent
		// value (the grandparent's CALLVALUE persists); only CodeAddress
		// changes. No value actually moves.
		Transfer: TransferInfo{Source: in.addr(), Target: in.addr(), Value: NewWord()},
		Input:    input,
		GasLimit: forwarded,
		Context: CallContext{
			Address: in.addr(), Caller: in.caller(), CodeAddress: codeAddr,
			ApparentValue: NewWord().Set(in.Contract.Value), Scheme: DelegateCall,
		},
		IsStatic: in.Static,
	}

	result, gasUsed, retData := host.CallHost(inputs)
	settleCallGas(in, forwarded, gasUsed)
	in.lastReturnData = retData
	writeCallResult(in, retOffset, retLength, retData)
	pushCallStatus(in, result)
	return Continue, nil
}

func opStaticCall(in *Interpreter, host Host) (Return, error) {
	gasW, _ := in.Stack.Pop()
	addrW, _ := in.Stack.Pop()
	argsOffset, _ := in.Stack.Pop()
	argsLength, _ := in.Stack.Pop()
	retOffset, _ := in.Stack.Pop()
	retLength, _ := in.Stack.Pop()

	to := wordToAddress(addrW)

	forwarded := CallGas(in.Gas.Remaining(), callRequestedGas(gasW), gasForwarding1of64(in.Fork))
	if !in.Gas.RecordCost(forwarded) {
		in.Stack.Push(NewWord())
		return Continue, nil
	}

	input := in.Memory.Get(argsOffset.Uint64(), argsLength.Uint64())
	inputs := &CallInputs{
		Transfer: TransferInfo{Source: in.addr(), Target: to, Value: NewWord()},
		Input:    input,
		GasLimit: forwarded,
		Context: CallContext{
			Address: to, Caller: in.addr(), CodeAddress: to,
			ApparentValue: NewWord(), Scheme: StaticCall,
		},
		IsStatic: true,
	}

	result, gasUsed, retData := host.CallHost(inputs)
	settleCallGas(in, forwarded, gasUsed)
	in.lastReturnData = retData
	writeCallResult(in, retOffset, retLength, retData)
	pushCallStatus(in, result)
	return Continue, nil
}

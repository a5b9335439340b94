package vm

func opJump(in *Interpreter, host Host) (Return, error) {
	dest, _ := in.Stack.Pop()
	return in.jumpTo(dest), nil
}

func opJumpi(in *Interpreter, host Host) (Return, error) {
	dest, _ := in.Stack.Pop()
	cond, _ := in.Stack.Pop()
	if cond.IsZero() {
		return Continue, nil
	}
	return in.jumpTo(dest), nil
}

func opJumpdest(in *Interpreter, host Host) (Return, error) { return Continue, nil }

func opPc(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(WordFromUint64(in.PC() - 1))
	return Continue, nil
}

func opGas(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(WordFromUint64(in.Gas.Remaining()))
	return Continue, nil
}

func opReturn(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Pop()
	size, _ := in.Stack.Pop()
	in.output = in.Memory.Get(offset.Uint64(), size.Uint64())
	return ReturnOK, nil
}

func opRevert(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Pop()
	size, _ := in.Stack.Pop()
	in.output = in.Memory.Get(offset.Uint64(), size.Uint64())
	return Revert, nil
}

func opInvalid(in *Interpreter, host Host) (Return, error) { return InvalidOpcode, nil }

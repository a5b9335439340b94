package vm

func opAnd(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.And(x, y)
	return Continue, nil
}

func opOr(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Or(x, y)
	return Continue, nil
}

func opXor(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Xor(x, y)
	return Continue, nil
}

func opNot(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Peek()
	x.Not(x)
	return Continue, nil
}

func opByte(in *Interpreter, host Host) (Return, error) {
	th, _ := in.Stack.Pop()
	val, _ := in.Stack.Peek()
	val.Byte(th)
	return Continue, nil
}

func opShl(in *Interpreter, host Host) (Return, error) {
	shift, _ := in.Stack.Pop()
	value, _ := in.Stack.Peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return Continue, nil
}

func opShr(in *Interpreter, host Host) (Return, error) {
	shift, _ := in.Stack.Pop()
	value, _ := in.Stack.Peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return Continue, nil
}

func opSar(in *Interpreter, host Host) (Return, error) {
	shift, _ := in.Stack.Pop()
	value, _ := in.Stack.Peek()
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return Continue, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return Continue, nil
}

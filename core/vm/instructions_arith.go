package vm

// Arithmetic and comparison opcode handlers. Each follows the pop_top
// contract from spec.md §4.2: pop operands, compute, write the result into
// the stack slot left by the last pop instead of pushing a fresh one.
// Grounded on the teacher's core/vm/instructions.go opAdd/opSub/... family,
// calling holiman/uint256's own EVM-semantic methods directly rather than
// re-deriving two's-complement arithmetic by hand.

func opStop(in *Interpreter, host Host) (Return, error) { return Stop, nil }

func opAdd(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Add(x, y)
	return Continue, nil
}

func opMul(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Mul(x, y)
	return Continue, nil
}

func opSub(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Sub(x, y)
	return Continue, nil
}

func opDiv(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Div(x, y)
	return Continue, nil
}

func opSdiv(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.SDiv(x, y)
	return Continue, nil
}

func opMod(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.Mod(x, y)
	return Continue, nil
}

func opSmod(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	y.SMod(x, y)
	return Continue, nil
}

func opAddmod(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Pop()
	z, _ := in.Stack.Peek()
	z.AddMod(x, y, z)
	return Continue, nil
}

func opMulmod(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Pop()
	z, _ := in.Stack.Peek()
	z.MulMod(x, y, z)
	return Continue, nil
}

func opExp(in *Interpreter, host Host) (Return, error) {
	base, _ := in.Stack.Pop()
	exponent, _ := in.Stack.Peek()
	exponent.Exp(base, exponent)
	return Continue, nil
}

func dynGasExp(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	exponent, err := in.Stack.Back(1)
	if err != nil {
		return 0, Continue
	}
	byteLen := (exponent.BitLen() + 7) / 8
	return uint64(byteLen) * expByteCost(in.Fork), Continue
}

func opSignExtend(in *Interpreter, host Host) (Return, error) {
	back, _ := in.Stack.Pop()
	num, _ := in.Stack.Peek()
	num.ExtendSign(num, back)
	return Continue, nil
}

func opLt(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue, nil
}

func opGt(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue, nil
}

func opSlt(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue, nil
}

func opSgt(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue, nil
}

func opEq(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Pop()
	y, _ := in.Stack.Peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return Continue, nil
}

func opIszero(in *Interpreter, host Host) (Return, error) {
	x, _ := in.Stack.Peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return Continue, nil
}

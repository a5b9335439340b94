package vm

func opPop(in *Interpreter, host Host) (Return, error) {
	in.Stack.Pop()
	return Continue, nil
}

func opMload(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Peek()
	o := offset.Uint64()
	offset.SetBytes(in.Memory.GetPtr(o, 32))
	return Continue, nil
}

func opMstore(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Pop()
	val, _ := in.Stack.Pop()
	in.Memory.SetWord(offset.Uint64(), val)
	return Continue, nil
}

func opMstore8(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Pop()
	val, _ := in.Stack.Pop()
	in.Memory.SetByte(offset.Uint64(), byte(val.Uint64()))
	return Continue, nil
}

func opMsize(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(WordFromUint64(uint64(in.Memory.Len())))
	return Continue, nil
}

// makePush returns the executionFunc for PUSH1..PUSH32: read n big-endian
// immediate bytes starting right after the opcode (pc already advanced past
// the opcode by the loop) and push them as a word, then skip pc past them.
func makePush(n int) executionFunc {
	return func(in *Interpreter, host Host) (Return, error) {
		start := in.PC()
		data := in.Contract.Code.Raw()
		buf := make([]byte, n)
		for i := 0; i < n; i++ {
			p := start + uint64(i)
			if p < uint64(len(data)) {
				buf[i] = data[p]
			}
		}
		in.Stack.Push(WordFromBytes(buf))
		in.advancePC(uint64(n))
		return Continue, nil
	}
}

func opPush0(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(NewWord())
	return Continue, nil
}

func makeDup(n int) executionFunc {
	return func(in *Interpreter, host Host) (Return, error) {
		in.Stack.Dup(n)
		return Continue, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(in *Interpreter, host Host) (Return, error) {
		in.Stack.Swap(n)
		return Continue, nil
	}
}

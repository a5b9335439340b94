package vm

import (
	"github.com/evmcore/evmcore/core/types"
	"github.com/evmcore/evmcore/crypto"
)

// Environment, block-info, storage, log, SHA3, and selfdestruct handlers.
// Most opcodes here read from Host or (SSTORE/LOG/SELFDESTRUCT) write
// through it; ADDRESS, CALLER, CALLVALUE, CALLDATA*, CODESIZE/CODECOPY,
// RETURNDATA* and SHA3 use only the frame's own state. None recurse into
// another Interpreter directly (that is CALL/CREATE's job, in
// instructions_call.go/instructions_create.go).

func opAddress(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(addressToWord(in.addr()))
	return Continue, nil
}

func opBalance(in *Interpreter, host Host) (Return, error) {
	addr, _ := in.Stack.Peek()
	a := wordToAddress(addr)
	value, _, ok := host.Balance(a)
	if !ok {
		return FatalExternalError, nil
	}
	addr.Set(value)
	return Continue, nil
}

func dynGasAccess(idx int) dynamicGasFunc {
	return func(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
		if !coldWarmAccounting(in.Fork) {
			return 0, Continue
		}
		addrW, err := in.Stack.Back(idx)
		if err != nil {
			return 0, Continue
		}
		a := wordToAddress(addrW)
		isCold, _, ok := host.LoadAccount(a)
		if !ok {
			return 0, FatalExternalError
		}
		if isCold {
			return ColdAccountAccessCost - WarmStorageReadCost, Continue
		}
		return 0, Continue
	}
}

var dynGasBalance = dynGasAccess(0)

func opOrigin(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(addressToWord(env.Tx.Origin))
	return Continue, nil
}

func opCaller(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(addressToWord(in.caller()))
	return Continue, nil
}

func opCallvalue(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(NewWord().Set(in.Contract.Value))
	return Continue, nil
}

func opCalldataload(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Peek()
	buf := make([]byte, 32)
	readPadded(buf, in.Contract.Input, offset)
	offset.SetBytes(buf)
	return Continue, nil
}

func opCalldatasize(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(WordFromUint64(uint64(len(in.Contract.Input))))
	return Continue, nil
}

func opCalldatacopy(in *Interpreter, host Host) (Return, error) {
	dst, _ := in.Stack.Pop()
	src, _ := in.Stack.Pop()
	length, _ := in.Stack.Pop()
	copyToMemory(in, dst, src, length, in.Contract.Input)
	return Continue, nil
}

func opCodesize(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(WordFromUint64(uint64(in.Contract.Code.Len())))
	return Continue, nil
}

func opCodecopy(in *Interpreter, host Host) (Return, error) {
	dst, _ := in.Stack.Pop()
	src, _ := in.Stack.Pop()
	length, _ := in.Stack.Pop()
	copyToMemory(in, dst, src, length, in.Contract.Code.Raw())
	return Continue, nil
}

func opGasprice(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(NewWord().Set(env.Tx.GasPrice))
	return Continue, nil
}

func opExtcodesize(in *Interpreter, host Host) (Return, error) {
	addr, _ := in.Stack.Peek()
	a := wordToAddress(addr)
	code, _, ok := host.Code(a)
	if !ok {
		return FatalExternalError, nil
	}
	addr.SetUint64(uint64(len(code)))
	return Continue, nil
}

func dynGasExtcodecopy(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	length, err := in.Stack.Back(3)
	if err != nil {
		return 0, Continue
	}
	cost := copyWordGas(length)
	if !coldWarmAccounting(in.Fork) {
		return cost, Continue
	}
	addrW, err := in.Stack.Back(0)
	if err != nil {
		return cost, Continue
	}
	a := wordToAddress(addrW)
	isCold, _, ok := host.LoadAccount(a)
	if !ok {
		return 0, FatalExternalError
	}
	if isCold {
		cost += ColdAccountAccessCost - WarmStorageReadCost
	}
	return cost, Continue
}

func opExtcodecopy(in *Interpreter, host Host) (Return, error) {
	addr, _ := in.Stack.Pop()
	dst, _ := in.Stack.Pop()
	src, _ := in.Stack.Pop()
	length, _ := in.Stack.Pop()
	a := wordToAddress(addr)
	code, _, ok := host.Code(a)
	if !ok {
		return FatalExternalError, nil
	}
	copyToMemory(in, dst, src, length, code)
	return Continue, nil
}

func opReturndatasize(in *Interpreter, host Host) (Return, error) {
	in.Stack.Push(WordFromUint64(uint64(len(in.lastReturnData))))
	return Continue, nil
}

func opReturndatacopy(in *Interpreter, host Host) (Return, error) {
	dst, _ := in.Stack.Pop()
	src, _ := in.Stack.Pop()
	length, _ := in.Stack.Pop()
	if !src.IsUint64() || !length.IsUint64() {
		return OutOfOffset, nil
	}
	s, l := src.Uint64(), length.Uint64()
	if s+l < s || s+l > uint64(len(in.lastReturnData)) {
		return OutOfOffset, nil
	}
	in.Memory.Set(dst.Uint64(), in.lastReturnData[s:s+l])
	return Continue, nil
}

func opExtcodehash(in *Interpreter, host Host) (Return, error) {
	addr, _ := in.Stack.Peek()
	a := wordToAddress(addr)
	hash, _, ok := host.CodeHash(a)
	if !ok {
		return FatalExternalError, nil
	}
	addr.SetBytes(hash[:])
	return Continue, nil
}

// opBlockhash enforces the "within the last 256 blocks, not the current
// one" window itself (spec.md §4.6) rather than leaving it to the Host:
// the current block number is already available off Env, so there is no
// reason for the interpreter to trust the Host to reject an out-of-range
// query correctly.
func opBlockhash(in *Interpreter, host Host) (Return, error) {
	num, _ := in.Stack.Peek()

	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	current := env.Block.Number.Uint64()

	if !num.IsUint64() {
		num.Clear()
		return Continue, nil
	}
	requested := num.Uint64()
	if requested >= current || current-requested > 256 {
		num.Clear()
		return Continue, nil
	}

	hash, ok := host.BlockHash(requested)
	if !ok {
		num.Clear()
		return Continue, nil
	}
	num.SetBytes(hash[:])
	return Continue, nil
}

func opCoinbase(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(addressToWord(env.Block.Coinbase))
	return Continue, nil
}

func opTimestamp(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(WordFromUint64(env.Block.Timestamp))
	return Continue, nil
}

func opNumber(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(NewWord().Set(env.Block.Number))
	return Continue, nil
}

func opPrevrandao(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(NewWord().Set(env.Block.Difficulty))
	return Continue, nil
}

func opGaslimit(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(WordFromUint64(env.Block.GasLimit))
	return Continue, nil
}

func opChainid(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(WordFromUint64(env.ChainID))
	return Continue, nil
}

func opSelfbalance(in *Interpreter, host Host) (Return, error) {
	value, _, ok := host.Balance(in.addr())
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(NewWord().Set(value))
	return Continue, nil
}

func opBasefee(in *Interpreter, host Host) (Return, error) {
	env, ok := host.Env()
	if !ok {
		return FatalExternalError, nil
	}
	in.Stack.Push(NewWord().Set(env.Block.BaseFee))
	return Continue, nil
}

func opSload(in *Interpreter, host Host) (Return, error) {
	key, _ := in.Stack.Peek()
	value, _, ok := host.SLoad(in.addr(), wordToHash(key))
	if !ok {
		return FatalExternalError, nil
	}
	key.Set(value)
	return Continue, nil
}

// dynGasSload makes the first of SLOAD's two Host.SLoad calls (Berlin+
// only) to learn whether the slot was cold, charging the EIP-2929 delta
// here; opSload's own Host.SLoad call (needed for the value) observes the
// slot already warm and simply ignores its isCold result.
func dynGasSload(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	if !coldWarmAccounting(in.Fork) {
		return 0, Continue
	}
	key, err := in.Stack.Back(0)
	if err != nil {
		return 0, Continue
	}
	_, isCold, ok := host.SLoad(in.addr(), wordToHash(key))
	if !ok {
		return 0, FatalExternalError
	}
	if isCold {
		return ColdSloadCost - WarmStorageReadCost, Continue
	}
	return 0, Continue
}

// opSstore is a no-op beyond balancing the stack: dynGasSstore below is the
// step that actually performs the Host.SStore write, because the write's
// before/after values are exactly what determines its own gas cost.
func opSstore(in *Interpreter, host Host) (Return, error) {
	in.Stack.Pop()
	in.Stack.Pop()
	return Continue, nil
}

const sstoreClearRefundLegacy = 15000

func dynGasSstore(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	keyW, err1 := in.Stack.Back(0)
	valW, err2 := in.Stack.Back(1)
	if err1 != nil || err2 != nil {
		return 0, Continue
	}
	result, ok := host.SStore(in.addr(), wordToHash(keyW), valW)
	if !ok {
		return 0, FatalExternalError
	}
	in.Gas.RecordRefund(sstoreRefund(result, in.Fork))
	return sstoreCost(result, in.Fork), Continue
}

func sstoreCost(r SstoreResult, fork Fork) uint64 {
	var cost uint64
	cold := coldWarmAccounting(fork) && r.IsCold
	if cold {
		cost += ColdSloadCost
	}
	if r.Old.Eq(&r.New) {
		return cost + WarmStorageReadCost
	}
	if r.Original.Eq(&r.Old) {
		if r.Original.IsZero() {
			return cost + SstoreSetGas
		}
		return cost + SstoreResetGas
	}
	return cost + WarmStorageReadCost
}

func sstoreRefund(r SstoreResult, fork Fork) int64 {
	clearRefund := int64(SstoreClearsScheduleRefund)
	if !fork.AtLeast(London) {
		clearRefund = sstoreClearRefundLegacy
	}
	if r.Old.Eq(&r.New) {
		return 0
	}
	if r.Original.Eq(&r.Old) {
		if !r.Original.IsZero() && r.New.IsZero() {
			return clearRefund
		}
		return 0
	}
	var refund int64
	if !r.Original.IsZero() {
		if r.Old.IsZero() {
			refund -= clearRefund
		}
		if r.New.IsZero() {
			refund += clearRefund
		}
	}
	if r.Original.Eq(&r.New) {
		if r.Original.IsZero() {
			refund += int64(SstoreSetGas - WarmStorageReadCost)
		} else {
			refund += int64(SstoreResetGas - WarmStorageReadCost)
		}
	}
	return refund
}

func makeLog(n int) executionFunc {
	return func(in *Interpreter, host Host) (Return, error) {
		offset, _ := in.Stack.Pop()
		size, _ := in.Stack.Pop()
		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			t, _ := in.Stack.Pop()
			topics[i] = wordToHash(t)
		}
		data := in.Memory.Get(offset.Uint64(), size.Uint64())
		if !host.Log(in.addr(), topics, data) {
			return FatalExternalError, nil
		}
		return Continue, nil
	}
}

func dynGasLog(n int) dynamicGasFunc {
	return func(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
		size, err := in.Stack.Back(1)
		if err != nil {
			return 0, Continue
		}
		if !size.IsUint64() {
			return ^uint64(0), Continue
		}
		return uint64(n)*LogTopicGas + size.Uint64()*LogDataGas, Continue
	}
}

func opSha3(in *Interpreter, host Host) (Return, error) {
	offset, _ := in.Stack.Pop()
	size, _ := in.Stack.Pop()
	data := in.Memory.GetPtr(offset.Uint64(), size.Uint64())
	hash := crypto.Keccak256Hash(data)
	in.Stack.Push(hashToWord(hash))
	return Continue, nil
}

func dynGasSha3(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	length, err := in.Stack.Back(1)
	if err != nil {
		return 0, Continue
	}
	if !length.IsUint64() {
		return ^uint64(0), Continue
	}
	return toWordSize(length.Uint64()) * Keccak256WordGas, Continue
}

func opSelfdestruct(in *Interpreter, host Host) (Return, error) {
	beneficiary, _ := in.Stack.Pop()
	to := wordToAddress(beneficiary)
	result, ok := host.SelfDestruct(in.addr(), to)
	if !ok {
		return FatalExternalError, nil
	}
	if selfdestructRefund(in.Fork) && !result.PreviouslyDestroyed {
		in.Gas.RecordRefund(int64(SelfdestructRefundGas))
	}
	return SelfDestruct, nil
}

func dynGasSelfdestruct(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
	beneficiary, err := in.Stack.Back(0)
	if err != nil {
		return 0, Continue
	}
	to := wordToAddress(beneficiary)
	if !coldWarmAccounting(in.Fork) {
		return 0, Continue
	}
	isCold, exists, ok := host.LoadAccount(to)
	if !ok {
		return 0, FatalExternalError
	}
	var cost uint64
	if isCold {
		cost += ColdAccountAccessCost
	}
	if !exists {
		cost += SelfdestructNewAccountGas
	}
	return cost, Continue
}

// readPadded fills dst (len 32) with in[offset:offset+32], zero-padding past
// the end of in or when offset itself overflows uint64 (CALLDATALOAD never
// errors, per spec.md: out-of-range calldata reads as zero).
func readPadded(dst []byte, in []byte, offsetW *Word) {
	if !offsetW.IsUint64() {
		return
	}
	offset := offsetW.Uint64()
	if offset >= uint64(len(in)) {
		return
	}
	copy(dst, in[offset:])
}

// copyToMemory implements the CALLDATACOPY/CODECOPY/EXTCODECOPY primitive:
// resize is already done by the loop via memCopy's memorySizeFunc, so this
// only writes.
func copyToMemory(in *Interpreter, dstW, srcW, lengthW *Word, src []byte) {
	if lengthW.IsZero() {
		return
	}
	dst := dstW.Uint64()
	length := lengthW.Uint64()
	var srcOffset uint64
	if srcW.IsUint64() {
		srcOffset = srcW.Uint64()
	} else {
		srcOffset = uint64(len(src)) // forces the zero-fill path below
	}
	in.Memory.SetData(dst, srcOffset, length, src)
}

// copyWordGas returns length's cost at 3 gas/word, the CALLDATACOPY/
// CODECOPY/EXTCODECOPY/RETURNDATACOPY copy-word rate (spec.md §4.3).
func copyWordGas(length *Word) uint64 {
	if !length.IsUint64() {
		return ^uint64(0)
	}
	return toWordSize(length.Uint64()) * ExtcodecopyWordGas
}

func dynGasCopyWords(lengthIdx int) dynamicGasFunc {
	return func(in *Interpreter, host Host, memSize uint64) (uint64, Return) {
		length, err := in.Stack.Back(lengthIdx)
		if err != nil {
			return 0, Continue
		}
		return copyWordGas(length), Continue
	}
}

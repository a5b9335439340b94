package vm

import "github.com/evmcore/evmcore/core/types"

// testHost is a minimal in-memory Host fixture for exercising the
// interpreter end to end. It is not a production host (no journaling, no
// nested-call orchestration, no precompiles) — those stay out of scope per
// spec.md §1; it exists purely to drive interpreter_test.go's scenarios.
type testHost struct {
	env Env

	balances  map[types.Address]*Word
	code      map[types.Address][]byte
	codeHash  map[types.Address]types.Hash
	committed map[types.Address]map[types.Hash]Word
	storage   map[types.Address]map[types.Hash]Word

	warmAccounts map[types.Address]bool
	warmSlots    map[types.Address]map[types.Hash]bool

	logs         []testLogEntry
	destructed   map[types.Address]bool
	callResult   Return
	callGasUsed  uint64
	callRetData  []byte

	stepHook func()
}

type testLogEntry struct {
	Address types.Address
	Topics  []types.Hash
	Data    []byte
}

func newTestHost() *testHost {
	return &testHost{
		env: Env{
			ChainID: 1,
			Block: BlockContext{
				Number:     WordFromUint64(100),
				Timestamp:  1000,
				Difficulty: NewWord(),
				GasLimit:   30_000_000,
				BaseFee:    WordFromUint64(1),
			},
			Tx: TxContext{GasPrice: WordFromUint64(1)},
		},
		balances:     map[types.Address]*Word{},
		code:         map[types.Address][]byte{},
		codeHash:     map[types.Address]types.Hash{},
		committed:    map[types.Address]map[types.Hash]Word{},
		storage:      map[types.Address]map[types.Hash]Word{},
		warmAccounts: map[types.Address]bool{},
		warmSlots:    map[types.Address]map[types.Hash]bool{},
		destructed:   map[types.Address]bool{},
		callResult:   ReturnOK,
	}
}

func (h *testHost) Env() (Env, bool) { return h.env, true }

func (h *testHost) Balance(addr types.Address) (*Word, bool, bool) {
	cold := !h.warmAccounts[addr]
	h.warmAccounts[addr] = true
	v, ok := h.balances[addr]
	if !ok {
		v = NewWord()
	}
	return v, cold, true
}

func (h *testHost) Code(addr types.Address) ([]byte, bool, bool) {
	cold := !h.warmAccounts[addr]
	h.warmAccounts[addr] = true
	return h.code[addr], cold, true
}

func (h *testHost) CodeHash(addr types.Address) (types.Hash, bool, bool) {
	cold := !h.warmAccounts[addr]
	h.warmAccounts[addr] = true
	return h.codeHash[addr], cold, true
}

func (h *testHost) LoadAccount(addr types.Address) (isCold, exists, ok bool) {
	cold := !h.warmAccounts[addr]
	h.warmAccounts[addr] = true
	_, exists = h.balances[addr]
	return cold, exists, true
}

func (h *testHost) BlockHash(number uint64) (types.Hash, bool) {
	if number >= h.env.Block.Number.Uint64() {
		return types.Hash{}, false
	}
	return types.BytesToHash([]byte{byte(number)}), true
}

func (h *testHost) slotWarm(addr types.Address, key types.Hash) bool {
	m := h.warmSlots[addr]
	if m == nil {
		return false
	}
	return m[key]
}

func (h *testHost) markSlotWarm(addr types.Address, key types.Hash) {
	m := h.warmSlots[addr]
	if m == nil {
		m = map[types.Hash]bool{}
		h.warmSlots[addr] = m
	}
	m[key] = true
}

func (h *testHost) SLoad(addr types.Address, key types.Hash) (*Word, bool, bool) {
	cold := !h.slotWarm(addr, key)
	h.markSlotWarm(addr, key)
	slots := h.storage[addr]
	if slots == nil {
		return NewWord(), cold, true
	}
	v, ok := slots[key]
	if !ok {
		return NewWord(), cold, true
	}
	cp := v
	return &cp, cold, true
}

func (h *testHost) SStore(addr types.Address, key types.Hash, newValue *Word) (SstoreResult, bool) {
	cold := !h.slotWarm(addr, key)
	h.markSlotWarm(addr, key)

	if h.committed[addr] == nil {
		h.committed[addr] = map[types.Hash]Word{}
	}
	if h.storage[addr] == nil {
		h.storage[addr] = map[types.Hash]Word{}
	}
	original, hasOriginal := h.committed[addr][key]
	if !hasOriginal {
		original = Word{}
		h.committed[addr][key] = original
	}
	old, hasOld := h.storage[addr][key]
	if !hasOld {
		old = Word{}
	}
	h.storage[addr][key] = *newValue

	return SstoreResult{Original: original, Old: old, New: *newValue, IsCold: cold}, true
}

func (h *testHost) Log(addr types.Address, topics []types.Hash, data []byte) bool {
	h.logs = append(h.logs, testLogEntry{Address: addr, Topics: topics, Data: data})
	return true
}

func (h *testHost) SelfDestruct(from, to types.Address) (SelfdestructResult, bool) {
	already := h.destructed[from]
	h.destructed[from] = true
	_, exists := h.balances[to]
	return SelfdestructResult{PreviouslyDestroyed: already, TargetExists: exists}, true
}

func (h *testHost) Create(inputs *CreateInputs) (Return, *types.Address, uint64, []byte) {
	return h.callResult, nil, 0, h.callRetData
}

func (h *testHost) CallHost(inputs *CallInputs) (Return, uint64, []byte) {
	return h.callResult, h.callGasUsed, h.callRetData
}

func (h *testHost) Step(in *Interpreter) Return {
	if h.stepHook != nil {
		h.stepHook()
	}
	return Continue
}
func (h *testHost) StepEnd(in *Interpreter, result Return) Return { return Continue }

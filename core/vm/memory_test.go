package vm

import (
	"bytes"
	"testing"
)

func TestMemoryResizeRoundsToWord(t *testing.T) {
	m := NewMemory()
	if err := m.Resize(1); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if m.Len() != 32 {
		t.Errorf("Len = %d, want 32", m.Len())
	}
}

func TestMemoryResizeNeverShrinks(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	m.Resize(32)
	if m.Len() != 64 {
		t.Errorf("Len = %d, want 64 (never shrinks)", m.Len())
	}
}

func TestMemorySetAndGet(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, []byte{1, 2, 3})
	got := m.Get(0, 3)
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("Get = %v, want [1 2 3]", got)
	}
}

func TestMemorySetWord(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.SetWord(0, WordFromUint64(256))
	got := m.Get(0, 32)
	want := make([]byte, 32)
	want[30] = 1
	if !bytes.Equal(got, want) {
		t.Errorf("SetWord(256) bytes = %x, want %x", got, want)
	}
}

func TestMemorySetDataZeroPads(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.SetData(0, 0, 32, []byte{1, 2, 3})
	got := m.Get(0, 32)
	want := make([]byte, 32)
	want[0], want[1], want[2] = 1, 2, 3
	if !bytes.Equal(got, want) {
		t.Errorf("SetData zero-pad = %x, want %x", got, want)
	}
}

func TestMemorySetDataSourceEntirelyOutOfRange(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, bytes.Repeat([]byte{0xff}, 32))
	m.SetData(0, 100, 32, []byte{1, 2, 3})
	got := m.Get(0, 32)
	if !bytes.Equal(got, make([]byte, 32)) {
		t.Errorf("SetData with srcOffset beyond src = %x, want all zero", got)
	}
}

func TestMemoryCapRejectsOverCap(t *testing.T) {
	m := NewMemoryWithCap(64)
	if err := m.Resize(64); err != nil {
		t.Fatalf("Resize(64) under cap: %v", err)
	}
	if err := m.Resize(96); err != ErrInvalidMemRange {
		t.Errorf("Resize past cap = %v, want ErrInvalidMemRange", err)
	}
}

func TestToWordSizeOverflowGuard(t *testing.T) {
	if got := toWordSize(^uint64(0)); got == 0 {
		t.Errorf("toWordSize(MaxUint64) = 0, want a saturated nonzero value")
	}
}

package vm

import "testing"

func TestGasRecordAndErase(t *testing.T) {
	g := NewGas(100)
	if !g.RecordCost(40) {
		t.Fatal("RecordCost(40) should succeed with 100 available")
	}
	if g.Remaining() != 60 {
		t.Errorf("Remaining = %d, want 60", g.Remaining())
	}
	g.EraseCost(10)
	if g.Remaining() != 70 {
		t.Errorf("Remaining after erase = %d, want 70", g.Remaining())
	}
}

func TestCapRefund(t *testing.T) {
	if got := CapRefund(100, 1000, London); got != 100 {
		t.Errorf("uncapped refund = %d, want 100", got)
	}
	if got := CapRefund(1000, 1000, London); got != 200 {
		t.Errorf("London refund cap = %d, want gasUsed/5 = 200", got)
	}
	if got := CapRefund(1000, 1000, Berlin); got != 500 {
		t.Errorf("pre-London refund cap = %d, want gasUsed/2 = 500", got)
	}
}

func TestSstoreCostColdReset(t *testing.T) {
	// Original == Old (both nonzero), New differs: a cold reset must cost
	// the cold access (2100) plus the warm reset (2900) = 5000, not 2900.
	r := SstoreResult{
		Original: WordFromUint64(1),
		Old:      WordFromUint64(1),
		New:      WordFromUint64(2),
		IsCold:   true,
	}
	if got := sstoreCost(r, London); got != ColdSloadCost+SstoreResetGas {
		t.Errorf("cold sstore reset cost = %d, want %d", got, ColdSloadCost+SstoreResetGas)
	}
}

func TestSstoreCostWarmReset(t *testing.T) {
	r := SstoreResult{
		Original: WordFromUint64(1),
		Old:      WordFromUint64(1),
		New:      WordFromUint64(2),
		IsCold:   false,
	}
	if got := sstoreCost(r, London); got != SstoreResetGas {
		t.Errorf("warm sstore reset cost = %d, want %d", got, SstoreResetGas)
	}
}

func TestGasRecordCostInsufficientLeavesMeterUnchanged(t *testing.T) {
	g := NewGas(10)
	if g.RecordCost(11) {
		t.Fatal("RecordCost(11) with 10 remaining should fail")
	}
	if g.Remaining() != 10 {
		t.Errorf("Remaining after failed charge = %d, want unchanged 10", g.Remaining())
	}
}

func TestGasRefundFloor(t *testing.T) {
	g := NewGas(100)
	g.RecordRefund(5)
	g.RecordRefund(-10)
	if g.Refund() != 0 {
		t.Errorf("Refund = %d, want floored at 0", g.Refund())
	}
}

func TestMemoryGasCostQuadratic(t *testing.T) {
	if MemoryGasCost(0) != 0 {
		t.Errorf("MemoryGasCost(0) != 0")
	}
	cost32 := MemoryGasCost(32)
	if cost32 != 3 {
		t.Errorf("MemoryGasCost(32) = %d, want 3", cost32)
	}
	if MemoryGasCost(64) <= cost32 {
		t.Errorf("MemoryGasCost should grow with size")
	}
}

func TestMemoryExpansionGasIsIncremental(t *testing.T) {
	full := MemoryGasCost(128)
	half := MemoryGasCost(64)
	if got := MemoryExpansionGas(64, 128); got != full-half {
		t.Errorf("MemoryExpansionGas(64,128) = %d, want %d", got, full-half)
	}
	if got := MemoryExpansionGas(128, 64); got != 0 {
		t.Errorf("MemoryExpansionGas shrinking = %d, want 0", got)
	}
}

func TestCallGasForwarding(t *testing.T) {
	if got := CallGas(1000, 100, true); got != 100 {
		t.Errorf("CallGas under cap = %d, want 100", got)
	}
	if got := CallGas(1000, 2000, true); got != 1000-1000/64 {
		t.Errorf("CallGas over cap = %d, want %d", got, 1000-1000/64)
	}
	if got := CallGas(1000, 0, true); got != 0 {
		t.Errorf("CallGas requesting 0 = %d, want 0 (not the capped max)", got)
	}
}

func TestCallGasNoForwardingRule(t *testing.T) {
	if got := CallGas(1000, 2000, false); got != 1000 {
		t.Errorf("CallGas pre-Tangerine over-request = %d, want capped to available 1000", got)
	}
}

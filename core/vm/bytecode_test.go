package vm

import "testing"

func TestAnalyzeJumpdest(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(JUMPDEST), byte(STOP)}
	bc := Analyze(code)
	if !bc.IsJumpdest(2) {
		t.Error("offset 2 should be a valid JUMPDEST")
	}
	if bc.IsJumpdest(1) {
		t.Error("PUSH1's immediate data byte must never be a JUMPDEST")
	}
}

func TestAnalyzeSkipsPushImmediateBytesThatLookLikeJumpdest(t *testing.T) {
	// PUSH1 0x5b: the immediate byte equals JUMPDEST's opcode value but must
	// not be treated as one.
	code := []byte{byte(PUSH1), byte(JUMPDEST), byte(STOP)}
	bc := Analyze(code)
	if bc.IsJumpdest(1) {
		t.Error("byte that is PUSH1's immediate data must not be a JUMPDEST even if it equals 0x5b")
	}
}

func TestAnalyzeTrailingPushPadding(t *testing.T) {
	code := []byte{byte(PUSH32)} // opcode with no immediate bytes actually present
	bc := Analyze(code)
	if bc.At(33) != byte(STOP) {
		t.Errorf("reading past padded code must yield STOP, got 0x%02x", bc.At(33))
	}
	if bc.Len() != 1 {
		t.Errorf("Len() must report the unpadded length, got %d", bc.Len())
	}
}

func TestGasBlockAccumulatesUntilBlockEnder(t *testing.T) {
	code := []byte{byte(ADD), byte(ADD), byte(STOP)}
	bc := Analyze(code)
	g, ok := bc.GasBlock(0)
	if !ok {
		t.Fatal("offset 0 should be a recorded block head")
	}
	want := 2 * GasFastestStep
	if g != want {
		t.Errorf("block gas = %d, want %d", g, want)
	}
}

func TestJumpdestStartsItsOwnBlock(t *testing.T) {
	// A JUMPDEST reached mid-block must end the preceding block right
	// before it (excluding its own gas) and start a new block at its own
	// offset, since that offset is exactly where a JUMP/JUMPI can land.
	code := []byte{byte(ADD), byte(ADD), byte(JUMPDEST), byte(ADD)}
	bc := Analyze(code)

	preceding, ok := bc.GasBlock(0)
	if !ok {
		t.Fatal("offset 0 should be a recorded block head")
	}
	if preceding != 2*GasFastestStep {
		t.Errorf("block gas before JUMPDEST = %d, want %d", preceding, 2*GasFastestStep)
	}

	landing, ok := bc.GasBlock(2)
	if !ok {
		t.Fatal("the JUMPDEST's own offset should be a recorded block head")
	}
	want := GasJumpdest + GasFastestStep
	if landing != want {
		t.Errorf("block gas at JUMPDEST = %d, want %d", landing, want)
	}
}

func TestGasBlockStartsNewBlockAfterEnder(t *testing.T) {
	code := []byte{byte(STOP), byte(ADD)}
	bc := Analyze(code)
	if _, ok := bc.GasBlock(1); !ok {
		t.Error("a fresh block must start right after a block-ending opcode")
	}
}

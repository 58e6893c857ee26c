package bytecode

import (
	"testing"

	"github.com/cwbudde/nola/internal/token"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	instrs := []Instruction{
		pushInt(42),
		pushFloat(3.5),
		pushString("hi"),
		pushBool(true),
		varRead("x"),
		assign("y"),
		opOnly(token.PLUS),
		opOnly(token.PRINTLN),
	}
	data := Save(instrs)
	got, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(instrs) {
		t.Fatalf("got %d instructions, want %d", len(got), len(instrs))
	}
	for i := range instrs {
		if got[i] != instrs[i] {
			t.Errorf("instr[%d] = %+v, want %+v", i, got[i], instrs[i])
		}
	}
}

func TestLoadTruncatedCount(t *testing.T) {
	if _, err := Load([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error for truncated count")
	}
}

func TestLoadTruncatedStringOperand(t *testing.T) {
	data := Save([]Instruction{varRead("hello")})
	if _, err := Load(data[:len(data)-3]); err == nil {
		t.Fatal("expected an error for truncated string bytes")
	}
}

func TestSaveEmptyProgram(t *testing.T) {
	data := Save(nil)
	if len(data) != 8 {
		t.Fatalf("got %d bytes, want 8 (count only)", len(data))
	}
	got, err := Load(data)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v; want empty, nil", got, err)
	}
}

package bytecode

import (
	"bytes"
	"testing"

	"github.com/cwbudde/nola/internal/token"
	"github.com/cwbudde/nola/internal/value"
)

func runSource(t *testing.T, src string) string {
	t.Helper()
	prog := parseProgram(t, src)
	instrs, err := Compile(prog)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	vm := New()
	var buf bytes.Buffer
	vm.Stdout = &buf
	if _, err := vm.Run(instrs); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return buf.String()
}

func TestVMScenario1ArithmeticPrintln(t *testing.T) {
	if got := runSource(t, "println(1+2*3);"); got != "7\n" {
		t.Fatalf("got %q, want %q", got, "7\n")
	}
}

func TestVMScenario6RadixLiterals(t *testing.T) {
	if got := runSource(t, "println(0xFF + 0b10);"); got != "257\n" {
		t.Fatalf("got %q, want %q", got, "257\n")
	}
}

func TestVMAssignmentPersists(t *testing.T) {
	if got := runSource(t, "x = 5; println(x);"); got != "5\n" {
		t.Fatalf("got %q, want %q", got, "5\n")
	}
}

func TestVMDivisionByZeroIsRuntimeError(t *testing.T) {
	prog := parseProgram(t, "println(1/0);")
	instrs, err := Compile(prog)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	vm := New()
	if _, err := vm.Run(instrs); err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestVMUnknownVariableIsRuntimeError(t *testing.T) {
	vm := New()
	if _, err := vm.Run([]Instruction{varRead("missing")}); err == nil {
		t.Fatal("expected a runtime error for an unknown identifier")
	}
}

func TestVMStackUnderflowIsRuntimeError(t *testing.T) {
	vm := New()
	if _, err := vm.Run([]Instruction{opOnly(token.PLUS)}); err == nil {
		t.Fatal("expected a stack-underflow error for PLUS on an empty stack")
	}
}

func TestVMEmptyProgramReturnsNull(t *testing.T) {
	vm := New()
	got, err := vm.Run(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != value.NullOp {
		t.Fatalf("got %#v, want NullOp", got)
	}
}

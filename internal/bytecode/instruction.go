// Package bytecode implements the linear instruction stream spec.md §4.3
// compiles to and §4.4's stack VM executes: a flat subset of the language
// (literals, variable reads/assignments, unary/binary operators, and
// print/println calls) with no jumps, call frames, or constant pool —
// control flow, user functions and classes stay the tree-walking
// evaluator's domain (internal/interp).
//
// Grounded on the teacher's internal/bytecode package for the overall
// compiler/VM split and file layout (compiler.go, vm.go, bytecode.go), but
// the instruction shape itself follows spec.md §6's literal wire format
// rather than the teacher's 32-bit packed-opcode/constant-pool design — see
// DESIGN.md conflict #3.
package bytecode

import "github.com/cwbudde/nola/internal/token"

// Instruction is one step of the bytecode stream: an opcode (reusing
// token.Kind for every operator and the bytecode-only PUSH_*/VAR/PRINT/
// PRINTLN members spec.md §9's shared-evalBinaryOp note lets the VM and the
// evaluator agree on) plus whichever operand field that opcode uses.
type Instruction struct {
	Op token.Kind

	IntOperand   int64
	FloatOperand float32
	StrOperand   string
	BoolOperand  bool
}

func pushInt(v int64) Instruction   { return Instruction{Op: token.PUSH_INT, IntOperand: v} }
func pushFloat(v float32) Instruction { return Instruction{Op: token.PUSH_FLOAT, FloatOperand: v} }
func pushString(v string) Instruction { return Instruction{Op: token.PUSH_STRING, StrOperand: v} }
func pushBool(v bool) Instruction   { return Instruction{Op: token.PUSH_BOOL, BoolOperand: v} }
func varRead(name string) Instruction { return Instruction{Op: token.VAR, StrOperand: name} }
func assign(name string) Instruction  { return Instruction{Op: token.ASSIGN, StrOperand: name} }
func opOnly(op token.Kind) Instruction { return Instruction{Op: op} }

// HasStringOperand reports whether op's instruction carries a StrOperand,
// per spec.md §6's wire-format table (PUSH_STRING / VAR / ASSIGN).
func HasStringOperand(op token.Kind) bool {
	return op == token.PUSH_STRING || op == token.VAR || op == token.ASSIGN
}

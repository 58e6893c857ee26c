package bytecode

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/nola/internal/token"
	"github.com/cwbudde/nola/internal/value"
)

// unaryOps and binaryOps are the opcode ranges spec.md §4.4 dispatches on:
// "opcodes in the binary-operator range -> pop two ... ; opcodes in the
// unary range -> pop one ...". Built as sets rather than a contiguous Kind
// range since token.Kind's ordering groups operators by spelling, not by
// arity.
var unaryOps = map[token.Kind]bool{
	token.NEGATE: true, token.NOT: true, token.BANG_BANG: true,
	token.PLUS_PLUS: true, token.MINUS_MINUS: true,
}

var binaryOps = map[token.Kind]bool{
	token.PLUS: true, token.MINUS: true, token.ASTERISK: true, token.SLASH: true,
	token.SLASH_SLASH: true, token.PERCENT: true, token.STAR_STAR: true,
	token.AMP: true, token.PIPE: true, token.CARET: true,
	token.LESS_LESS: true, token.GREATER_GREATER: true,
	token.AMP_AMP: true, token.PIPE_PIPE: true,
	token.LESS: true, token.GREATER: true, token.LESS_EQ: true, token.GREATER_EQ: true,
	token.EQ_EQ: true, token.NOT_EQ: true,
}

// RuntimeError is a fatal VM fault: stack underflow, an unknown global, or
// an evalBinaryOp/evalUnaryOp type error — all terminal per spec.md §7.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return e.Msg }

// VM is the stack machine described by spec.md §4.4: one operand stack of
// Value, one globals map. Call frames and a function table are named by
// the spec but have no bytecode-level opcode to drive them (see
// compiler.go's doc comment); VM therefore only ever executes the flat
// instruction stream Compile produces.
type VM struct {
	stack   []value.Value
	globals map[string]value.Value
	Stdout  io.Writer
}

// New creates a VM with an empty stack and global scope.
func New() *VM {
	return &VM{
		globals: make(map[string]value.Value),
		Stdout:  os.Stdout,
	}
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() (value.Value, error) {
	if len(vm.stack) == 0 {
		return value.Value{}, &RuntimeError{Msg: "stack underflow"}
	}
	top := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return top, nil
}

// Globals exposes the VM's global bindings for inspection (tests, REPL
// tooling); it is the same map instructions mutate, not a copy.
func (vm *VM) Globals() map[string]value.Value { return vm.globals }

// Run executes instrs to completion and returns the final stack top, or
// value.Null() if the stack ended empty (e.g. a program that only prints).
func (vm *VM) Run(instrs []Instruction) (value.Value, error) {
	for _, ins := range instrs {
		if err := vm.step(ins); err != nil {
			return value.Value{}, err
		}
	}
	if len(vm.stack) == 0 {
		return value.Null(), nil
	}
	return vm.stack[len(vm.stack)-1], nil
}

func (vm *VM) step(ins Instruction) error {
	switch {
	case ins.Op == token.PUSH_INT:
		vm.push(value.NewInt(ins.IntOperand))
	case ins.Op == token.PUSH_FLOAT:
		vm.push(value.NewFloat(ins.FloatOperand))
	case ins.Op == token.PUSH_STRING:
		vm.push(value.NewString(ins.StrOperand))
	case ins.Op == token.PUSH_BOOL:
		vm.push(value.NewBool(ins.BoolOperand))

	case ins.Op == token.VAR:
		v, ok := vm.globals[ins.StrOperand]
		if !ok {
			return &RuntimeError{Msg: fmt.Sprintf("unknown identifier %q", ins.StrOperand)}
		}
		vm.push(v)

	case ins.Op == token.ASSIGN:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.globals[ins.StrOperand] = v
		vm.push(v)

	case binaryOps[ins.Op]:
		right, err := vm.pop()
		if err != nil {
			return err
		}
		left, err := vm.pop()
		if err != nil {
			return err
		}
		result, err := value.EvalBinaryOp(left, right, ins.Op)
		if err != nil {
			return &RuntimeError{Msg: err.Error()}
		}
		vm.push(result)

	case unaryOps[ins.Op]:
		operand, err := vm.pop()
		if err != nil {
			return err
		}
		result, err := value.EvalUnaryOp(operand, ins.Op)
		if err != nil {
			return &RuntimeError{Msg: err.Error()}
		}
		vm.push(result)

	case ins.Op == token.PRINT:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		fmt.Fprint(vm.Stdout, v.String())

	case ins.Op == token.PRINTLN:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		fmt.Fprintln(vm.Stdout, v.String())
		if f, ok := vm.Stdout.(*os.File); ok {
			f.Sync()
		}

	default:
		return &RuntimeError{Msg: fmt.Sprintf("unknown opcode %s", ins.Op)}
	}
	return nil
}

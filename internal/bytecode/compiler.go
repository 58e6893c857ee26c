package bytecode

import (
	"fmt"

	"github.com/cwbudde/nola/internal/ast"
	"github.com/cwbudde/nola/internal/token"
)

// CompileError reports an AST node the flat compiler cannot lower —
// control flow, function/class declarations, and anything but a top-level
// print/println call, per spec.md §4.3's silence on those forms.
type CompileError struct {
	Kind ast.Kind
	Msg  string
}

func (e *CompileError) Error() string { return e.Msg }

// Compile lowers prog (expected to be an ast.Program) to a linear
// instruction stream, per spec.md §4.3:
//   - literals   -> PUSH_INT/FLOAT/STRING/BOOL <value>
//   - var read   -> VAR <name>
//   - assignment -> compile value, then ASSIGN <name>
//   - unary      -> compile operand, then the op token as opcode
//   - binary     -> compile left, compile right, then the op token as opcode
//   - print/println(arg) -> compile the single arg, then PRINT/PRINTLN;
//     calls with zero or several args are rejected
//
// Every other statement or expression shape returns a *CompileError: the
// bytecode path covers only straight-line expression statements, per
// spec.md §4.4's opcode list (no jump/call opcodes) and §8's
// "single printed line" scope for the evaluator/VM agreement property.
func Compile(prog *ast.Node) ([]Instruction, error) {
	if prog == nil || prog.Kind != ast.Program {
		return nil, &CompileError{Msg: "Compile expects a Program node"}
	}
	var out []Instruction
	for _, stmt := range prog.Stmts {
		instrs, err := compileStmt(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, instrs...)
	}
	return out, nil
}

func compileStmt(n *ast.Node) ([]Instruction, error) {
	if n.Kind != ast.ExpressionStmt {
		return nil, &CompileError{Kind: n.Kind, Msg: fmt.Sprintf("cannot compile %s to bytecode: only expression statements are supported", n.Kind)}
	}
	if n.IsBreak || n.IsContinue || n.NoOpFlag {
		return nil, &CompileError{Kind: n.Kind, Msg: "cannot compile break/continue/no-op statements to bytecode"}
	}
	return compileExpr(n.Expr)
}

func compileExpr(n *ast.Node) ([]Instruction, error) {
	switch n.Kind {
	case ast.IntLiteral:
		return []Instruction{pushInt(n.IntVal)}, nil
	case ast.FloatLiteral:
		return []Instruction{pushFloat(n.FloatVal)}, nil
	case ast.StrLiteral:
		return []Instruction{pushString(n.StrVal)}, nil
	case ast.BoolLiteral:
		return []Instruction{pushBool(n.BoolVal)}, nil

	case ast.Variable:
		if n.Value != nil {
			valInstrs, err := compileExpr(n.Value)
			if err != nil {
				return nil, err
			}
			return append(valInstrs, assign(n.Name)), nil
		}
		return []Instruction{varRead(n.Name)}, nil

	case ast.UnaryOp:
		operandInstrs, err := compileExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return append(operandInstrs, opOnly(n.Op)), nil

	case ast.BinaryOp:
		leftInstrs, err := compileExpr(n.Left)
		if err != nil {
			return nil, err
		}
		rightInstrs, err := compileExpr(n.Right)
		if err != nil {
			return nil, err
		}
		out := append(leftInstrs, rightInstrs...)
		return append(out, opOnly(n.Op)), nil

	case ast.FunctionCall:
		return compilePrintCall(n)

	default:
		return nil, &CompileError{Kind: n.Kind, Msg: fmt.Sprintf("cannot compile %s to bytecode: not part of the flat expression subset", n.Kind)}
	}
}

// compilePrintCall lowers the two built-ins the VM's opcode set names
// directly: print(args...) / println(args...). Any other call name is
// outside the flat subset — user functions require the call-frame stack
// the evaluator has and the VM doesn't.
func compilePrintCall(n *ast.Node) ([]Instruction, error) {
	var opcode token.Kind
	switch n.Name {
	case "print":
		opcode = token.PRINT
	case "println":
		opcode = token.PRINTLN
	default:
		return nil, &CompileError{Kind: n.Kind, Msg: fmt.Sprintf("cannot compile call to %q to bytecode: only print/println are supported", n.Name)}
	}
	// PRINT/PRINTLN pop exactly one operand per spec.md §4.4 ("pop,
	// stringify by variant, write to stdout"), so the flat subset only
	// compiles single-argument calls.
	if len(n.Args) != 1 {
		return nil, &CompileError{Kind: n.Kind, Msg: fmt.Sprintf("cannot compile %s with %d arguments to bytecode: exactly one argument is supported", n.Name, len(n.Args))}
	}
	argInstrs, err := compileExpr(n.Args[0])
	if err != nil {
		return nil, err
	}
	return append(argInstrs, opOnly(opcode)), nil
}

// evaluator.go implements the recursive-descent tree walk spec.md §4.5
// describes: Program -> statements in order, tracking the last non-null
// result; ExpressionStmt -> its inner node, special-cased for break/continue
// signals; every other Kind dispatched by evalExprValue. Function calls
// dispatch to the evaluator's native registry first (native.Default unless
// NewWithRegistry supplied another), then
// to a class constructor, then to a user-defined function via FunctionTable.
//
// Grounded on the teacher's internal/interp/statements.go and
// expressions.go for the eval/dispatch split, generalized to the AST's
// tagged-struct shape (internal/ast) and the flatter two-level environment
// (environment.go) spec.md §3 specifies.
package interp

import (
	"fmt"

	"github.com/cwbudde/nola/internal/ast"
	"github.com/cwbudde/nola/internal/diag"
	"github.com/cwbudde/nola/internal/native"
	"github.com/cwbudde/nola/internal/token"
	"github.com/cwbudde/nola/internal/value"
)

// ctrl is the loop-control signal a statement can produce, distinct from
// value.Value's IsReturn/IsExit flags: break/continue never carry a value
// and never cross a function-call boundary, so they are threaded as a
// side channel rather than through Value.
type ctrl int

const (
	ctrlNone ctrl = iota
	ctrlBreak
	ctrlContinue
)

// Evaluator walks an AST directly, without compiling to bytecode first.
type Evaluator struct {
	env     *Environment
	fns     *FunctionTable
	classes *ClassTable
	natives *native.Registry

	// File names the source being evaluated, attached to diagnostics.
	File string
}

// New creates an evaluator sharing the process-wide native registry.
func New() *Evaluator {
	return NewWithRegistry(native.Default)
}

// NewWithRegistry creates an evaluator against a private registry, used by
// tests that want an isolated native surface.
func NewWithRegistry(reg *native.Registry) *Evaluator {
	return &Evaluator{
		env:     NewEnvironment(),
		fns:     newFunctionTable(),
		classes: newClassTable(),
		natives: reg,
	}
}

// Env exposes the evaluator's variable environment for inspection by tests
// and embedders (pkg/nola).
func (e *Evaluator) Env() *Environment { return e.env }

func (e *Evaluator) err(kind diag.Kind, span token.Span, format string, args ...interface{}) error {
	return diag.New(kind, span, e.File, fmt.Sprintf(format, args...))
}

// Run evaluates an entire Program, returning the last non-null statement
// result (spec.md §4.5's "program value" rule) or the value an `exit`
// native unwound with. A break/continue outside any loop is ignored.
func (e *Evaluator) Run(prog *ast.Node) (value.Value, error) {
	if prog.Kind != ast.Program {
		return value.Value{}, e.err(diag.Type, prog.Span, "Run requires a Program node, got %s", prog.Kind)
	}
	last := value.Null()
	for _, stmt := range prog.Stmts {
		v, _, err := e.evalStmt(stmt)
		if err != nil {
			return value.Value{}, err
		}
		if v.IsReturn || v.IsExit {
			return v.Plain(), nil
		}
		if v.Kind != value.NullOp {
			last = v
		}
	}
	return last.Plain(), nil
}

// evalBlock runs a statement list in order. It stops early on a
// break/continue signal (propagated to the caller, normally a loop) or on
// a return/exit-flagged Value (propagated to the caller, normally a
// function call or the program root).
func (e *Evaluator) evalBlock(stmts []*ast.Node) (value.Value, ctrl, error) {
	last := value.Null()
	for _, stmt := range stmts {
		v, c, err := e.evalStmt(stmt)
		if err != nil {
			return value.Value{}, ctrlNone, err
		}
		if c != ctrlNone {
			return v, c, nil
		}
		if v.IsReturn || v.IsExit {
			return v, ctrlNone, nil
		}
		if v.Kind != value.NullOp {
			last = v
		}
	}
	return last, ctrlNone, nil
}

// evalStmt evaluates one ExpressionStmt, the only Kind that ever appears in
// a statement list per the parser's wrapExpr convention.
func (e *Evaluator) evalStmt(n *ast.Node) (value.Value, ctrl, error) {
	if n.IsBreak {
		return value.Null(), ctrlBreak, nil
	}
	if n.IsContinue {
		return value.Null(), ctrlContinue, nil
	}
	if n.Expr == nil {
		return value.Null(), ctrlNone, nil
	}
	return e.evalStmtExpr(n.Expr)
}

// evalStmtExpr handles the statement-only forms (control flow,
// declarations, return) that need ctrl propagation or register into a
// table rather than yielding a plain Value; everything else delegates to
// evalExprValue.
func (e *Evaluator) evalStmtExpr(n *ast.Node) (value.Value, ctrl, error) {
	switch n.Kind {
	case ast.IfLiteral:
		return e.evalIf(n)
	case ast.WhileLiteral:
		return e.evalWhile(n)
	case ast.ForLiteral:
		return e.evalFor(n)
	case ast.ReturnLiteral:
		return e.evalReturn(n)
	case ast.FunctionLiteral:
		e.fns.register(n)
		return value.Null(), ctrlNone, nil
	case ast.ClassLiteral:
		e.classes.register(n)
		for _, stmt := range n.Body {
			fn := stmt
			if fn.Kind == ast.ExpressionStmt {
				fn = fn.Expr
			}
			if fn != nil && fn.Kind == ast.FunctionLiteral {
				e.fns.fns[n.Name+"."+fn.Name] = fn
			}
		}
		return value.Null(), ctrlNone, nil
	case ast.NoOp:
		return value.Null(), ctrlNone, nil
	default:
		v, err := e.evalExprValue(n)
		return v, ctrlNone, err
	}
}

func (e *Evaluator) evalIf(n *ast.Node) (value.Value, ctrl, error) {
	cond, err := e.evalExprValue(n.Cond)
	if err != nil {
		return value.Value{}, ctrlNone, err
	}
	if cond.Truthy() {
		return e.evalBlock(n.Then)
	}
	return e.evalBlock(n.Else)
}

func (e *Evaluator) evalWhile(n *ast.Node) (value.Value, ctrl, error) {
	for {
		cond, err := e.evalExprValue(n.Cond)
		if err != nil {
			return value.Value{}, ctrlNone, err
		}
		if !cond.Truthy() {
			break
		}
		v, c, err := e.evalBlock(n.Body)
		if err != nil {
			return value.Value{}, ctrlNone, err
		}
		if v.IsReturn || v.IsExit {
			return v, ctrlNone, nil
		}
		if c == ctrlBreak {
			break
		}
	}
	return value.Null(), ctrlNone, nil
}

// evalFor implements `for <var> $ <iter> <body>`. The iterator operand is
// either a Vec, whose elements are bound to VarName in turn, or an Int N,
// treated as the half-open range 0..N-1 — spec.md doesn't otherwise pin
// down the iterator form, so this was decided as an open question: Vec and
// Int are the two value kinds with a natural notion of sequence (see
// DESIGN.md).
func (e *Evaluator) evalFor(n *ast.Node) (value.Value, ctrl, error) {
	iter, err := e.evalExprValue(n.Iter)
	if err != nil {
		return value.Value{}, ctrlNone, err
	}

	var items []value.Value
	switch iter.Kind {
	case value.Vec:
		if iter.V != nil {
			items = iter.V.Elems
		}
	case value.Int:
		items = make([]value.Value, iter.I)
		for i := range items {
			items[i] = value.NewInt(int64(i))
		}
	default:
		return value.Value{}, ctrlNone, e.err(diag.Type, n.Span, "for loop requires a vec or int iterator, got %s", iter.Kind)
	}

	for _, item := range items {
		e.env.SetLocal(n.VarName, item)
		v, c, err := e.evalBlock(n.Body)
		if err != nil {
			return value.Value{}, ctrlNone, err
		}
		if v.IsReturn || v.IsExit {
			return v, ctrlNone, nil
		}
		if c == ctrlBreak {
			break
		}
	}
	return value.Null(), ctrlNone, nil
}

func (e *Evaluator) evalReturn(n *ast.Node) (value.Value, ctrl, error) {
	if n.Value == nil {
		return value.Null().AsReturn(), ctrlNone, nil
	}
	v, err := e.evalExprValue(n.Value)
	if err != nil {
		return value.Value{}, ctrlNone, err
	}
	return v.AsReturn(), ctrlNone, nil
}

// evalExprValue evaluates every Kind that can appear in expression
// position: literals, variables, operators, calls, vectors. None of these
// ever produce a break/continue signal.
func (e *Evaluator) evalExprValue(n *ast.Node) (value.Value, error) {
	switch n.Kind {
	case ast.IntLiteral:
		return value.NewInt(n.IntVal), nil
	case ast.FloatLiteral:
		return value.NewFloat(n.FloatVal), nil
	case ast.StrLiteral:
		return value.NewString(n.StrVal), nil
	case ast.BoolLiteral:
		return value.NewBool(n.BoolVal), nil
	case ast.NoOp:
		return value.Null(), nil
	case ast.TypeInt, ast.TypeFloat, ast.TypeStr, ast.TypeBool, ast.TypeVec:
		return value.NewString(n.Kind.String()), nil
	case ast.VecLiteral:
		elems := make([]value.Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := e.evalExprValue(el)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewVec(value.NewVector(elems)), nil
	case ast.Variable:
		return e.evalVariable(n)
	case ast.UnaryOp:
		return e.evalUnary(n)
	case ast.BinaryOp:
		return e.evalBinary(n)
	case ast.FunctionCall:
		return e.evalCall(n)
	default:
		return value.Value{}, e.err(diag.Type, n.Span, "cannot evaluate %s in expression position", n.Kind)
	}
}

func (e *Evaluator) evalVariable(n *ast.Node) (value.Value, error) {
	if n.Value != nil {
		v, err := e.evalExprValue(n.Value)
		if err != nil {
			return value.Value{}, err
		}
		e.env.Assign(n.Name, v)
		return v, nil
	}
	v, ok := e.env.Get(n.Name)
	if !ok {
		return value.Value{}, e.err(diag.Identifier, n.Span, "undefined variable %q", n.Name)
	}
	return v, nil
}

// evalUnary gives `++`/`--` their lvalue-mutation semantics: the operand
// must be a bare Variable read, whose binding is overwritten with the
// computed result. Every other unary op is a pure value.EvalUnaryOp call.
func (e *Evaluator) evalUnary(n *ast.Node) (value.Value, error) {
	if n.Op == token.PLUS_PLUS || n.Op == token.MINUS_MINUS {
		if n.Operand.Kind != ast.Variable || n.Operand.Value != nil {
			return value.Value{}, e.err(diag.Type, n.Span, "%s requires a variable operand", n.Op)
		}
		cur, ok := e.env.Get(n.Operand.Name)
		if !ok {
			return value.Value{}, e.err(diag.Identifier, n.Operand.Span, "undefined variable %q", n.Operand.Name)
		}
		next, err := value.EvalUnaryOp(cur, n.Op)
		if err != nil {
			return value.Value{}, e.err(diag.Type, n.Span, "%s", err)
		}
		e.env.Assign(n.Operand.Name, next)
		if n.Postfix {
			return cur, nil
		}
		return next, nil
	}

	operand, err := e.evalExprValue(n.Operand)
	if err != nil {
		return value.Value{}, err
	}
	result, err := value.EvalUnaryOp(operand, n.Op)
	if err != nil {
		return value.Value{}, e.err(diag.Type, n.Span, "%s", err)
	}
	return result, nil
}

// evalBinary special-cases `.` (member access / method call) and `@`
// (vector index), neither of which value.EvalBinaryOp handles — spec.md's
// AST has no dedicated MemberAccess/Index node, so these are ordinary
// BinaryOp nodes at CALLINDEX precedence (see DESIGN.md) interpreted here.
// Every other op delegates to the shared value.EvalBinaryOp.
func (e *Evaluator) evalBinary(n *ast.Node) (value.Value, error) {
	switch n.Op {
	case token.DOT:
		return e.evalMember(n)
	case token.AT:
		return e.evalIndex(n)
	}

	left, err := e.evalExprValue(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.evalExprValue(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	result, err := value.EvalBinaryOp(left, right, n.Op)
	if err != nil {
		return value.Value{}, e.err(diag.Type, n.Span, "%s", err)
	}
	return result, nil
}

func (e *Evaluator) evalMember(n *ast.Node) (value.Value, error) {
	recv, err := e.evalExprValue(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	if recv.Kind != value.Class {
		return value.Value{}, e.err(diag.Type, n.Span, "member access on non-class value %s", recv.Kind)
	}

	if n.Right.Kind == ast.FunctionCall {
		key, ok := recv.Inst.Methods[n.Right.Name]
		if !ok {
			return value.Value{}, e.err(diag.Identifier, n.Span, "%s has no method %q", recv.Inst.ClassName, n.Right.Name)
		}
		fn, ok := e.fns.lookup(key)
		if !ok {
			return value.Value{}, e.err(diag.Identifier, n.Span, "undefined function %q", key)
		}
		args := make([]value.Value, len(n.Right.Args))
		for i, a := range n.Right.Args {
			v, err := e.evalExprValue(a)
			if err != nil {
				return value.Value{}, err
			}
			args[i] = v
		}
		return e.callMethod(fn, recv.Inst, args, n.Span)
	}

	if n.Right.Kind == ast.Variable && n.Right.Value == nil {
		v, ok := recv.Inst.Fields[n.Right.Name]
		if !ok {
			return value.Value{}, e.err(diag.Identifier, n.Span, "%s has no field %q", recv.Inst.ClassName, n.Right.Name)
		}
		return v, nil
	}

	return value.Value{}, e.err(diag.Type, n.Span, "invalid member access")
}

func (e *Evaluator) evalIndex(n *ast.Node) (value.Value, error) {
	recv, err := e.evalExprValue(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	if recv.Kind != value.Vec {
		return value.Value{}, e.err(diag.Type, n.Span, "index access on non-vec value %s", recv.Kind)
	}
	idx, err := e.evalExprValue(n.Right)
	if err != nil {
		return value.Value{}, err
	}
	if idx.Kind != value.Int {
		return value.Value{}, e.err(diag.Type, n.Span, "vec index must be an int, got %s", idx.Kind)
	}
	if recv.V == nil || idx.I < 0 || idx.I >= int64(len(recv.V.Elems)) {
		return value.Value{}, e.err(diag.Type, n.Span, "index %d out of range", idx.I)
	}
	return recv.V.Elems[idx.I], nil
}

// evalCall dispatches a FunctionCall to, in order: a registered native, a
// class constructor, or a user-defined function — spec.md §4.6's lookup
// order for the evaluator.
func (e *Evaluator) evalCall(n *ast.Node) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExprValue(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if fn, ok := e.natives.Lookup(n.Name); ok {
		return fn(args), nil
	}

	if cls, ok := e.classes.lookup(n.Name); ok {
		return value.NewClass(e.classes.instantiate(cls, args)), nil
	}

	fn, ok := e.fns.lookup(n.Name)
	if !ok {
		return value.Value{}, e.err(diag.Identifier, n.Span, "undefined function %q", n.Name)
	}
	return e.callUserFunction(fn, args, n.Span)
}

func (e *Evaluator) callUserFunction(fn *ast.Node, args []value.Value, span token.Span) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Value{}, e.err(diag.Type, span, "function %q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	e.env.PushFrame()
	defer e.env.PopFrame()
	for i, p := range fn.Params {
		e.env.SetLocal(p, args[i])
	}

	result, _, err := e.evalBlock(fn.Body)
	if err != nil {
		return value.Value{}, err
	}
	if result.IsExit {
		return result, nil
	}
	return result.Plain(), nil
}

// callMethod runs a class method with its instance's fields visible as
// locals alongside the call's own parameters, then writes any mutated
// field back into the instance — spec.md's ClassInstance has no separate
// "this" binding, so a method body refers to fields the same way it
// refers to parameters: as bare variable names.
func (e *Evaluator) callMethod(fn *ast.Node, inst *value.ClassInstance, args []value.Value, span token.Span) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Value{}, e.err(diag.Type, span, "method %q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	frame := e.env.PushFrame()
	defer e.env.PopFrame()
	for name, v := range inst.Fields {
		frame.Locals[name] = v
	}
	for i, p := range fn.Params {
		frame.Locals[p] = args[i]
	}

	result, _, err := e.evalBlock(fn.Body)
	if err != nil {
		return value.Value{}, err
	}

	for name := range inst.Fields {
		if v, ok := frame.Locals[name]; ok {
			inst.Fields[name] = v
		}
	}

	if result.IsExit {
		return result, nil
	}
	return result.Plain(), nil
}

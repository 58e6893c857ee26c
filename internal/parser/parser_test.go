package parser

import (
	"testing"

	"github.com/cwbudde/nola/internal/ast"
	"github.com/cwbudde/nola/internal/diag"
	"github.com/cwbudde/nola/internal/lexer"
	"github.com/cwbudde/nola/internal/token"
)

func parse(t *testing.T, src string) (*ast.Node, *diag.Sink) {
	t.Helper()
	l := lexer.New(src)
	toks := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
	var sink diag.Sink
	p := New(toks, "test.nl", &sink)
	prog := p.ParseProgram()
	return prog, &sink
}

func parseNoErrors(t *testing.T, src string) *ast.Node {
	t.Helper()
	prog, sink := parse(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, sink.Format(false))
	}
	return prog
}

func TestParseSimpleAssignment(t *testing.T) {
	prog := parseNoErrors(t, `x = 1 + 2 * 3;`)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	stmt := prog.Stmts[0]
	if stmt.Kind != ast.ExpressionStmt {
		t.Fatalf("expected ExpressionStmt, got %v", stmt.Kind)
	}
	assign := stmt.Expr
	if assign.Kind != ast.Variable || assign.Name != "x" || assign.Value == nil {
		t.Fatalf("expected assignment to x, got %+v", assign)
	}
	// precedence: * binds tighter than +, so rhs is (1 + (2*3))
	rhs := assign.Value
	if rhs.Kind != ast.BinaryOp || rhs.Op != token.PLUS {
		t.Fatalf("expected top-level +, got %+v", rhs)
	}
	if rhs.Right.Kind != ast.BinaryOp || rhs.Right.Op != token.ASTERISK {
		t.Fatalf("expected nested * on the right of +, got %+v", rhs.Right)
	}
}

func TestParseFunctionDeclAndCall(t *testing.T) {
	prog := parseNoErrors(t, `form f(x,y){ return x*x+y*y; } println(f(3,4));`)
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
	fn := prog.Stmts[0].Expr
	if fn.Kind != ast.FunctionLiteral || fn.Name != "f" {
		t.Fatalf("expected FunctionLiteral f, got %+v", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0] != "x" || fn.Params[1] != "y" {
		t.Fatalf("unexpected params: %v", fn.Params)
	}

	call := prog.Stmts[1].Expr
	if call.Kind != ast.FunctionCall || call.Name != "println" {
		t.Fatalf("expected FunctionCall println, got %+v", call)
	}
	inner := call.Args[0]
	if inner.Kind != ast.FunctionCall || inner.Name != "f" || len(inner.Args) != 2 {
		t.Fatalf("expected nested call to f with 2 args, got %+v", inner)
	}
}

func TestParseSetStatementSugar(t *testing.T) {
	prog := parseNoErrors(t, `set i=0; while i<3 { println(i); i=i+1; }`)
	assign := prog.Stmts[0].Expr
	if assign.Kind != ast.Variable || assign.Name != "i" || assign.Value.IntVal != 0 {
		t.Fatalf("set should produce a plain Variable-assignment node, got %+v", assign)
	}

	loop := prog.Stmts[1].Expr
	if loop.Kind != ast.WhileLiteral {
		t.Fatalf("expected WhileLiteral, got %v", loop.Kind)
	}
	if len(loop.Body) != 2 {
		t.Fatalf("expected 2 statements in while body, got %d", len(loop.Body))
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseNoErrors(t, `if 2==2 println("ok") else println("bad");`)
	ifNode := prog.Stmts[0].Expr
	if ifNode.Kind != ast.IfLiteral {
		t.Fatalf("expected IfLiteral, got %v", ifNode.Kind)
	}
	if ifNode.Cond.Kind != ast.BinaryOp || ifNode.Cond.Op != token.EQ_EQ {
		t.Fatalf("expected == condition, got %+v", ifNode.Cond)
	}
	if len(ifNode.Then) != 1 || len(ifNode.Else) != 1 {
		t.Fatalf("expected single-statement then/else, got then=%d else=%d", len(ifNode.Then), len(ifNode.Else))
	}
}

func TestParseVecLiteral(t *testing.T) {
	prog := parseNoErrors(t, `println([1,2,3]);`)
	call := prog.Stmts[0].Expr
	vec := call.Args[0]
	if vec.Kind != ast.VecLiteral || len(vec.Elems) != 3 {
		t.Fatalf("expected 3-element VecLiteral, got %+v", vec)
	}
}

func TestParseRadixIntLiterals(t *testing.T) {
	prog := parseNoErrors(t, `println(0xFF + 0b10);`)
	call := prog.Stmts[0].Expr
	bin := call.Args[0]
	if bin.Kind != ast.BinaryOp || bin.Left.IntVal != 255 || bin.Right.IntVal != 2 {
		t.Fatalf("expected 0xFF=255 and 0b10=2, got %+v", bin)
	}
}

func TestParseCompoundAssignmentDesugars(t *testing.T) {
	prog := parseNoErrors(t, `x += 1;`)
	assign := prog.Stmts[0].Expr
	if assign.Kind != ast.Variable || assign.Name != "x" {
		t.Fatalf("expected assignment to x, got %+v", assign)
	}
	if assign.Value.Kind != ast.BinaryOp || assign.Value.Op != token.PLUS {
		t.Fatalf("expected desugared x = x + 1, got %+v", assign.Value)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 should parse as 2 ** (3 ** 2), not (2 ** 3) ** 2.
	prog := parseNoErrors(t, `x = 2 ** 3 ** 2;`)
	rhs := prog.Stmts[0].Expr.Value
	if rhs.Kind != ast.BinaryOp || rhs.Op != token.STAR_STAR {
		t.Fatalf("expected top-level **, got %+v", rhs)
	}
	if rhs.Left.IntVal != 2 {
		t.Fatalf("expected left operand 2, got %+v", rhs.Left)
	}
	if rhs.Right.Kind != ast.BinaryOp || rhs.Right.Op != token.STAR_STAR {
		t.Fatalf("expected right-nested **, got %+v", rhs.Right)
	}
}

func TestParsePostfixBindsTighterThanBinary(t *testing.T) {
	prog := parseNoErrors(t, `y = x++ + 1;`)
	rhs := prog.Stmts[0].Expr.Value
	if rhs.Kind != ast.BinaryOp || rhs.Op != token.PLUS {
		t.Fatalf("expected top-level +, got %+v", rhs)
	}
	if rhs.Left.Kind != ast.UnaryOp || !rhs.Left.Postfix || rhs.Left.Op != token.PLUS_PLUS {
		t.Fatalf("expected x++ as postfix UnaryOp on the left, got %+v", rhs.Left)
	}
}

func TestParseUnaryMinusBecomesNegate(t *testing.T) {
	prog := parseNoErrors(t, `x = -5;`)
	rhs := prog.Stmts[0].Expr.Value
	if rhs.Kind != ast.UnaryOp || rhs.Op != token.NEGATE {
		t.Fatalf("expected NEGATE unary op, got %+v", rhs)
	}
}

func TestParseMissingTerminatorError(t *testing.T) {
	_, sink := parse(t, `x = 1`)
	if !sink.HasErrors() {
		t.Fatal("expected a missing-terminator error")
	}
	if sink.Errors()[0].Kind != diag.MissingTerminator {
		t.Fatalf("expected MissingTerminator kind, got %v", sink.Errors()[0].Kind)
	}
}

func TestParseUnterminatedBlockIsSyntaxError(t *testing.T) {
	_, sink := parse(t, `while true { println(1);`)
	if !sink.HasErrors() {
		t.Fatal("expected a syntax error for unterminated block")
	}
}

func TestParseBreakContinue(t *testing.T) {
	prog := parseNoErrors(t, `while true { break; continue; }`)
	body := prog.Stmts[0].Expr.Body
	if !body[0].IsBreak {
		t.Fatalf("expected first statement to be break, got %+v", body[0])
	}
	if !body[1].IsContinue {
		t.Fatalf("expected second statement to be continue, got %+v", body[1])
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseNoErrors(t, `for i $ [1,2,3] { println(i); }`)
	forNode := prog.Stmts[0].Expr
	if forNode.Kind != ast.ForLiteral || forNode.VarName != "i" {
		t.Fatalf("expected ForLiteral over i, got %+v", forNode)
	}
	if forNode.Iter.Kind != ast.VecLiteral {
		t.Fatalf("expected vec literal iterable, got %+v", forNode.Iter)
	}
}

func TestParseClassDecl(t *testing.T) {
	prog := parseNoErrors(t, `class Point(x, y) { form dist() { return x*x+y*y; } }`)
	cls := prog.Stmts[0].Expr
	if cls.Kind != ast.ClassLiteral || cls.Name != "Point" {
		t.Fatalf("expected ClassLiteral Point, got %+v", cls)
	}
	if len(cls.Params) != 2 {
		t.Fatalf("expected 2 constructor params, got %v", cls.Params)
	}
	if len(cls.Body) != 1 || cls.Body[0].Expr.Kind != ast.FunctionLiteral {
		t.Fatalf("expected one method in class body, got %+v", cls.Body)
	}
}

// stubFS implements FileSystem for load-as-source-splice tests.
type stubFS struct{ files map[string]string }

func (s stubFS) ReadSource(name string) (string, error) { return s.files[name], nil }

func TestParseLoadSplicesSource(t *testing.T) {
	l := lexer.New(`load "util.nl"; println(answer());`)
	var sink diag.Sink
	p := New(l.Tokenize(), "main.nl", &sink)
	p.SetFileSystem(stubFS{files: map[string]string{
		"util.nl": `form answer() { return 42; }`,
	}})

	prog := p.ParseProgram()
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Format(false))
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected spliced function + println, got %d stmts", len(prog.Stmts))
	}
	if prog.Stmts[0].Expr.Kind != ast.FunctionLiteral || prog.Stmts[0].Expr.Name != "answer" {
		t.Fatalf("expected spliced FunctionLiteral answer, got %+v", prog.Stmts[0])
	}
}

// stubLibs implements LibraryLoader for load-as-native-library tests.
type stubLibs struct{ loaded []string }

func (s *stubLibs) LoadLibrary(name string) error {
	s.loaded = append(s.loaded, name)
	return nil
}

func TestParseLoadNativeLibrary(t *testing.T) {
	l := lexer.New(`load "mathext"; println(1);`)
	var sink diag.Sink
	p := New(l.Tokenize(), "main.nl", &sink)
	libs := &stubLibs{}
	p.SetLibraryLoader(libs)

	prog := p.ParseProgram()
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Format(false))
	}
	if len(libs.loaded) != 1 || libs.loaded[0] != "mathext" {
		t.Fatalf("expected mathext to be loaded, got %v", libs.loaded)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected only the println statement to remain, got %d", len(prog.Stmts))
	}
}

func TestDecodeEscapes(t *testing.T) {
	tests := []struct{ in, want string }{
		{`hello`, "hello"},
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`\x41`, "A"},
		{`\101`, "A"},
		{`\q`, "q"},
	}
	for _, tt := range tests {
		if got := DecodeEscapes(tt.in); got != tt.want {
			t.Errorf("DecodeEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

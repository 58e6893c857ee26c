package ast

import (
	"strings"
	"testing"

	"github.com/cwbudde/nola/internal/token"
)

func TestIsAssignment(t *testing.T) {
	bare := &Node{Kind: Variable, Name: "x"}
	if bare.IsAssignment() {
		t.Error("bare read should not be an assignment")
	}

	assign := &Node{Kind: Variable, Name: "x", Value: &Node{Kind: IntLiteral, IntVal: 1}}
	if !assign.IsAssignment() {
		t.Error("Variable with non-nil Value should be an assignment")
	}
}

func TestPrintProgram(t *testing.T) {
	prog := NewProgram([]*Node{
		{
			Kind: ExpressionStmt,
			Expr: &Node{
				Kind: BinaryOp,
				Op:   token.PLUS,
				Left: &Node{Kind: IntLiteral, IntVal: 1},
				Right: &Node{
					Kind: BinaryOp, Op: token.ASTERISK,
					Left:  &Node{Kind: IntLiteral, IntVal: 2},
					Right: &Node{Kind: IntLiteral, IntVal: 3},
				},
			},
		},
	})

	out := Print(prog)
	for _, want := range []string{"Program", "ExpressionStmt", "BinaryOp(+)", "BinaryOp(*)", "IntLiteral(1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print() missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintNilNode(t *testing.T) {
	out := Print(nil)
	if !strings.Contains(out, "<nil>") {
		t.Errorf("expected <nil> marker, got %q", out)
	}
}

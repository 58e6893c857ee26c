package interp

import (
	"github.com/cwbudde/nola/internal/ast"
	"github.com/cwbudde/nola/internal/value"
)

// ClassTable maps a class name to its declaration node, populated when a
// ClassLiteral is visited in statement position, per spec.md §4.5's
// "ClassLiteral: register a class template" rule.
type ClassTable struct {
	classes map[string]*ast.Node
}

func newClassTable() *ClassTable {
	return &ClassTable{classes: make(map[string]*ast.Node)}
}

func (t *ClassTable) register(n *ast.Node) {
	t.classes[n.Name] = n
}

func (t *ClassTable) lookup(name string) (*ast.Node, bool) {
	cls, ok := t.classes[name]
	return cls, ok
}

// instantiate constructs a ClassInstance whose fields are bound from
// constructor-parameter arguments and whose methods are the class body's
// FunctionLiteral declarations, per spec.md §4.5's ClassLiteral rule.
func (t *ClassTable) instantiate(cls *ast.Node, args []value.Value) *value.ClassInstance {
	fields := make(map[string]value.Value, len(cls.Params))
	for i, param := range cls.Params {
		if i < len(args) {
			fields[param] = args[i]
		} else {
			fields[param] = value.Null()
		}
	}

	methods := make(map[string]string)
	for _, stmt := range cls.Body {
		fn := stmt
		if fn.Kind == ast.ExpressionStmt {
			fn = fn.Expr
		}
		if fn != nil && fn.Kind == ast.FunctionLiteral {
			methods[fn.Name] = cls.Name + "." + fn.Name
		}
	}

	return &value.ClassInstance{
		ClassName: cls.Name,
		Fields:    fields,
		Methods:   methods,
	}
}

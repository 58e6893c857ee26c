package interp

import "github.com/cwbudde/nola/internal/ast"

// FunctionTable maps a function name to its declaration node, populated
// lazily as FunctionLiteral nodes are visited in statement position, per
// spec.md §4.5. `inline` and `form` declarations share this table — spec.md
// §9 treats `inline` as behaviourally identical to `form` until specified
// otherwise.
type FunctionTable struct {
	fns map[string]*ast.Node
}

func newFunctionTable() *FunctionTable {
	return &FunctionTable{fns: make(map[string]*ast.Node)}
}

func (t *FunctionTable) register(n *ast.Node) {
	t.fns[n.Name] = n
}

func (t *FunctionTable) lookup(name string) (*ast.Node, bool) {
	fn, ok := t.fns[name]
	return fn, ok
}

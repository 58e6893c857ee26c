// Package interp implements the tree-walking evaluator described by
// spec.md §4.5: recursive descent over the AST, a two-level variable
// environment (one call frame's locals, then globals — not the teacher's
// arbitrary nested lexical-scope chain, see DESIGN.md conflict #4), a
// function table built lazily as FunctionLiteral nodes are visited, and
// the native-function registry shared with the parser's `load` machinery.
//
// Grounded on the teacher's internal/interp package for file layout
// (environment.go/statements.go/expressions.go/functions.go/class.go) and
// naming, generalized to the flatter scoping model spec.md §3 describes.
package interp

import "github.com/cwbudde/nola/internal/value"

// CallFrame is one function activation's local bindings, per spec.md §3's
// "Variable environment" note.
type CallFrame struct {
	Locals map[string]value.Value
}

func newCallFrame() *CallFrame {
	return &CallFrame{Locals: make(map[string]value.Value)}
}

// Environment is the two-level name resolution spec.md §3 specifies: a
// single global map, plus a stack of CallFrames. Lookup searches the
// innermost frame first, then globals.
type Environment struct {
	globals map[string]value.Value
	frames  []*CallFrame
}

// NewEnvironment creates an environment with an empty global scope and no
// active call frames.
func NewEnvironment() *Environment {
	return &Environment{globals: make(map[string]value.Value)}
}

// PushFrame starts a new call frame, used when a function call begins.
func (e *Environment) PushFrame() *CallFrame {
	f := newCallFrame()
	e.frames = append(e.frames, f)
	return f
}

// PopFrame discards the innermost call frame, used when a function call
// returns.
func (e *Environment) PopFrame() {
	if len(e.frames) == 0 {
		return
	}
	e.frames = e.frames[:len(e.frames)-1]
}

func (e *Environment) currentFrame() *CallFrame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

// Get searches the innermost call frame first, then globals, per spec.md
// §4.5's Variable-read rule.
func (e *Environment) Get(name string) (value.Value, bool) {
	if f := e.currentFrame(); f != nil {
		if v, ok := f.Locals[name]; ok {
			return v, true
		}
	}
	v, ok := e.globals[name]
	return v, ok
}

// SetLocal binds name in the innermost call frame, or globals if there is
// no active frame.
func (e *Environment) SetLocal(name string, v value.Value) {
	if f := e.currentFrame(); f != nil {
		f.Locals[name] = v
		return
	}
	e.globals[name] = v
}

// SetGlobal unconditionally binds name in the global scope, used to
// materialize function and class declarations regardless of call depth.
func (e *Environment) SetGlobal(name string, v value.Value) {
	e.globals[name] = v
}

// Assign implements spec.md §4.5's assignment rule: re-binding requires
// prior existence (in the innermost frame, else globals); a name that
// exists nowhere creates a new global. Assignment always succeeds.
func (e *Environment) Assign(name string, v value.Value) {
	if f := e.currentFrame(); f != nil {
		if _, ok := f.Locals[name]; ok {
			f.Locals[name] = v
			return
		}
	}
	e.globals[name] = v
}

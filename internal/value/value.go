// Package value implements the Nola runtime value model: a tagged union of
// int, float, bool, string, vector, class-instance and no-op, plus the two
// control-flow flags that let a Value carry a return/exit signal back up
// through the evaluator and the VM.
//
// Grounded on the original C++ std::variant-based Value (original_source/
// include/types.hpp) and on the teacher's interp.Value interface
// (internal/interp/value.go), generalized into a single tagged struct per
// spec.md's design note: the Kind field is the single source of truth, the
// per-type boolean tags the C++ source carried alongside the variant are
// dropped, and only isReturn/isExit survive as they are genuinely
// orthogonal to the active variant.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the active member of a Value's tagged union.
type Kind uint8

const (
	Int Kind = iota
	Float
	Bool
	String
	Vec
	Class
	NullOp
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "str"
	case Vec:
		return "vec"
	case Class:
		return "class"
	case NullOp:
		return "null"
	default:
		return "unknown"
	}
}

// Vector is the shared, mutable-length backing store for Value.Vec.
// Two Values may alias the same *Vector, observing each other's mutations,
// matching spec.md §3's reference-semantics invariant for vectors.
type Vector struct {
	Elems []Value
}

// NewVector wraps elems in a fresh shared vector.
func NewVector(elems []Value) *Vector {
	return &Vector{Elems: elems}
}

// ClassInstance is a runtime object: a class name, its field bindings, and
// its method table. Methods point into the evaluator's function table
// (identified by name) rather than owning copies of FunctionLiteral nodes,
// so instances never outlive the AST that defines their methods — see
// spec.md §3's ownership invariant.
type ClassInstance struct {
	ClassName string
	Fields    map[string]Value
	Methods   map[string]string // method name -> function-table key
}

// Value is the tagged union described by spec.md §3. Exactly one of the
// scalar fields is meaningful, selected by Kind. IsReturn and IsExit are
// orthogonal control-flow flags: IsReturn unwinds the current function call,
// IsExit unwinds the whole program.
type Value struct {
	Kind Kind

	I    int64
	F    float32
	B    bool
	S    string
	V    *Vector
	Inst *ClassInstance

	IsReturn bool
	IsExit   bool
}

// Constructors. Each clears the control-flow flags, since a freshly minted
// value is never itself a return/exit signal until explicitly marked.

func NewInt(i int64) Value         { return Value{Kind: Int, I: i} }
func NewFloat(f float32) Value     { return Value{Kind: Float, F: f} }
func NewBool(b bool) Value         { return Value{Kind: Bool, B: b} }
func NewString(s string) Value     { return Value{Kind: String, S: s} }
func NewVec(v *Vector) Value       { return Value{Kind: Vec, V: v} }
func NewClass(c *ClassInstance) Value { return Value{Kind: Class, Inst: c} }
func Null() Value                  { return Value{Kind: NullOp} }

// AsReturn marks v as the result of a return statement, for the evaluator
// and VM to unwind the current call frame with.
func (v Value) AsReturn() Value {
	v.IsReturn = true
	return v
}

// AsExit marks v as the result of the exit native, unwinding the whole
// program.
func (v Value) AsExit() Value {
	v.IsExit = true
	return v
}

// Plain strips the control-flow flags, returning the bare value. Used once
// a return/exit signal has been consumed by its target frame.
func (v Value) Plain() Value {
	v.IsReturn = false
	v.IsExit = false
	return v
}

// IsPrimitive reports whether v holds a scalar/vector value as opposed to a
// class instance or NullOp — mirrors the C++ source's is_primitive_val.
func (v Value) IsPrimitive() bool {
	return v.Kind != NullOp && v.Kind != Class
}

// Truthy implements spec.md §4.7's truthiness table.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Bool:
		return v.B
	case Int:
		return v.I != 0
	case Float:
		return v.F != 0
	case String:
		return v.S != ""
	case Vec:
		return v.V != nil && len(v.V.Elems) > 0
	case Class:
		return true
	case NullOp:
		return false
	default:
		return false
	}
}

// String renders v the way the print/println natives do.
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.I, 10)
	case Float:
		return strconv.FormatFloat(float64(v.F), 'g', -1, 32)
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	case String:
		return v.S
	case Vec:
		var sb strings.Builder
		sb.WriteByte('[')
		if v.V != nil {
			for i, e := range v.V.Elems {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(e.String())
			}
		}
		sb.WriteByte(']')
		return sb.String()
	case Class:
		return fmt.Sprintf("%s{...}", v.Inst.ClassName)
	case NullOp:
		return "null"
	default:
		return "<?>"
	}
}

// IPow computes base**exp by squaring, matching spec.md §4.7's "exponentiation
// by squaring with an 8-bit exponent". exp is unsigned, so there is no
// negative case: a caller converting an int exponent with uint8() passes its
// low 8 bits (-1 becomes 255).
func IPow(base int64, exp uint8) int64 {
	var result int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// fields/methods expose read-only reflection over a ClassInstance, grounded
// on the teacher's internal/interp/rtti_test.go RTTI surface.
package native

import (
	"sort"

	"github.com/cwbudde/nola/internal/value"
)

func init() {
	Default.Register("fields", nativeFields)
	Default.Register("methods", nativeMethods)
}

func nativeFields(args []value.Value) value.Value {
	if len(args) != 1 || args[0].Kind != value.Class {
		return value.Null()
	}
	names := make([]string, 0, len(args[0].Inst.Fields))
	for name := range args[0].Inst.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return namesToVec(names)
}

func nativeMethods(args []value.Value) value.Value {
	if len(args) != 1 || args[0].Kind != value.Class {
		return value.Null()
	}
	names := make([]string, 0, len(args[0].Inst.Methods))
	for name := range args[0].Inst.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return namesToVec(names)
}

func namesToVec(names []string) value.Value {
	elems := make([]value.Value, len(names))
	for i, n := range names {
		elems[i] = value.NewString(n)
	}
	return value.NewVec(value.NewVector(elems))
}

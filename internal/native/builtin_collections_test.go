package native

import (
	"testing"

	"github.com/cwbudde/nola/internal/value"
)

func testInstance() value.Value {
	return value.NewClass(&value.ClassInstance{
		ClassName: "Point",
		Fields: map[string]value.Value{
			"x": value.NewInt(1),
			"y": value.NewInt(2),
		},
		Methods: map[string]string{
			"length": "Point.length",
		},
	})
}

func TestNativeFieldsSortedNames(t *testing.T) {
	got := nativeFields([]value.Value{testInstance()})
	if got.Kind != value.Vec || len(got.V.Elems) != 2 {
		t.Fatalf("got %#v, want a 2-element vec", got)
	}
	if got.V.Elems[0].S != "x" || got.V.Elems[1].S != "y" {
		t.Fatalf("got %v, want [x y]", got.V.Elems)
	}
}

func TestNativeMethodsNames(t *testing.T) {
	got := nativeMethods([]value.Value{testInstance()})
	if got.Kind != value.Vec || len(got.V.Elems) != 1 || got.V.Elems[0].S != "length" {
		t.Fatalf("got %#v, want [length]", got)
	}
}

func TestNativeFieldsRejectsNonClass(t *testing.T) {
	if got := nativeFields([]value.Value{value.NewInt(1)}); got.Kind != value.NullOp {
		t.Fatalf("got %#v, want NullOp", got)
	}
}

func TestDefaultRegistryHasCollectionNatives(t *testing.T) {
	for _, name := range []string{"fields", "methods"} {
		if _, ok := Default.Lookup(name); !ok {
			t.Errorf("expected %q registered in Default", name)
		}
	}
}

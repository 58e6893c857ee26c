package native

import (
	"math"
	"testing"

	"github.com/cwbudde/nola/internal/value"
)

func TestNativeSqrtAndTrig(t *testing.T) {
	got := unaryFloat(math.Sqrt)([]value.Value{value.NewInt(9)})
	if got.Kind != value.Float || got.F != 3 {
		t.Fatalf("sqrt(9) = %#v, want 3", got)
	}
}

func TestNativeAbsPreservesIntKind(t *testing.T) {
	got := nativeAbs([]value.Value{value.NewInt(-5)})
	if got.Kind != value.Int || got.I != 5 {
		t.Fatalf("abs(-5) = %#v, want int 5", got)
	}
	gotF := nativeAbs([]value.Value{value.NewFloat(-2.5)})
	if gotF.Kind != value.Float || gotF.F != 2.5 {
		t.Fatalf("abs(-2.5) = %#v, want float 2.5", gotF)
	}
}

func TestNativePowIntVsFloat(t *testing.T) {
	got := nativePow([]value.Value{value.NewInt(2), value.NewInt(10)})
	if got.Kind != value.Int || got.I != 1024 {
		t.Fatalf("pow(2,10) = %#v, want int 1024", got)
	}
	gotF := nativePow([]value.Value{value.NewFloat(2), value.NewInt(2)})
	if gotF.Kind != value.Float || gotF.F != 4 {
		t.Fatalf("pow(2.0,2) = %#v, want float 4", gotF)
	}
}

func TestNativeFloorCeilRound(t *testing.T) {
	if got := unaryFloat(math.Floor)([]value.Value{value.NewFloat(1.9)}); got.F != 1 {
		t.Fatalf("floor(1.9) = %#v", got)
	}
	if got := unaryFloat(math.Ceil)([]value.Value{value.NewFloat(1.1)}); got.F != 2 {
		t.Fatalf("ceil(1.1) = %#v", got)
	}
}

func TestDefaultRegistryHasMathNatives(t *testing.T) {
	for _, name := range []string{"sqrt", "abs", "pow", "floor", "ceil", "round", "sin", "cos"} {
		if _, ok := Default.Lookup(name); !ok {
			t.Errorf("expected %q registered in Default", name)
		}
	}
}

// Grounded on the teacher's internal/interp/builtins_math*.go; stdlib math
// is used directly — no pack example imports a third-party numerics library
// for scalar trig/sqrt/rounding, and the teacher itself is stdlib-only here.
package native

import (
	"math"

	"github.com/cwbudde/nola/internal/value"
)

func init() {
	Default.Register("sqrt", unaryFloat(math.Sqrt))
	Default.Register("abs", nativeAbs)
	Default.Register("pow", nativePow)
	Default.Register("floor", unaryFloat(math.Floor))
	Default.Register("ceil", unaryFloat(math.Ceil))
	Default.Register("round", unaryFloat(math.Round))
	Default.Register("sin", unaryFloat(math.Sin))
	Default.Register("cos", unaryFloat(math.Cos))
}

func asF64(v value.Value) float64 {
	if v.Kind == value.Int {
		return float64(v.I)
	}
	return float64(v.F)
}

func unaryFloat(fn func(float64) float64) Fn {
	return func(args []value.Value) value.Value {
		if len(args) != 1 {
			return value.Null()
		}
		return value.NewFloat(float32(fn(asF64(args[0]))))
	}
}

func nativeAbs(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Null()
	}
	if args[0].Kind == value.Int {
		i := args[0].I
		if i < 0 {
			i = -i
		}
		return value.NewInt(i)
	}
	return value.NewFloat(float32(math.Abs(asF64(args[0]))))
}

func nativePow(args []value.Value) value.Value {
	if len(args) != 2 {
		return value.Null()
	}
	if args[0].Kind == value.Int && args[1].Kind == value.Int {
		return value.NewInt(value.IPow(args[0].I, uint8(args[1].I)))
	}
	return value.NewFloat(float32(math.Pow(asF64(args[0]), asF64(args[1]))))
}

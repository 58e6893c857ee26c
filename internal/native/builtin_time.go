// Grounded on the teacher's internal/interp/builtins_datetime*.go; stdlib
// time is used directly for the same reason as builtin_math.go.
package native

import (
	"time"

	"github.com/cwbudde/nola/internal/value"
)

func init() {
	Default.Register("now", nativeNow)
	Default.Register("sleep", nativeSleep)
	Default.Register("clock", nativeClock)
}

var processStart = time.Now()

func nativeNow(args []value.Value) value.Value {
	return value.NewInt(time.Now().UnixMilli())
}

func nativeSleep(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Null()
	}
	time.Sleep(time.Duration(asF64(args[0])) * time.Millisecond)
	return value.Null()
}

// nativeClock returns seconds elapsed since the process started, grounded
// on the C-style `clock()` native the original toolchain exposes.
func nativeClock(args []value.Value) value.Value {
	return value.NewFloat(float32(time.Since(processStart).Seconds()))
}

package native

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/nola/internal/value"
)

// stdin is buffered once and reused by the input native, grounded on the
// teacher's internal/interp/builtins_io.go reader-reuse pattern.
var stdin = bufio.NewReader(os.Stdin)

// Stdout is the writer print/println/input natives target. Exposed as an
// io.Writer (rather than hardcoding os.Stdout) so tests and the VM/evaluator
// can redirect captured output to an in-memory buffer.
var Stdout io.Writer = os.Stdout

func init() {
	Default.Register("print", nativePrint)
	Default.Register("println", nativePrintln)
	Default.Register("input", nativeInput)
	Default.Register("exit", nativeExit)
	Default.Register("isErr", nativeIsErr)
	Default.Register("assert", nativeAssert)
}

func nativePrint(args []value.Value) value.Value {
	for _, a := range args {
		fmt.Fprint(Stdout, a.String())
	}
	return value.Null()
}

// nativePrintln writes each argument followed by a newline and flushes, per
// spec.md §4.4's "PRINTLN appends newline and flushes".
func nativePrintln(args []value.Value) value.Value {
	for _, a := range args {
		fmt.Fprint(Stdout, a.String())
	}
	fmt.Fprintln(Stdout)
	if f, ok := Stdout.(*os.File); ok {
		f.Sync()
	}
	return value.Null()
}

func nativeInput(args []value.Value) value.Value {
	if len(args) > 0 {
		fmt.Fprint(Stdout, args[0].String())
	}
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return value.Null()
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return value.NewString(line)
}

// nativeExit marks its result with IsExit, the sole early-termination path
// per spec.md §5, unwinding the evaluator all the way out.
func nativeExit(args []value.Value) value.Value {
	code := value.NewInt(0)
	if len(args) > 0 {
		code = args[0]
	}
	return code.AsExit()
}

// nativeIsErr lets callers test a natives's NullOp-on-failure result per
// spec.md §7's propagation policy.
func nativeIsErr(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.NewBool(true)
	}
	return value.NewBool(args[0].Kind == value.NullOp)
}

// nativeAssert writes a descriptive message to stderr and returns NullOp on
// failure, matching spec.md §7's native-function argument-validation policy
// rather than terminating the program outright.
func nativeAssert(args []value.Value) value.Value {
	if len(args) == 0 || !args[0].Truthy() {
		msg := "assertion failed"
		if len(args) > 1 {
			msg = args[1].String()
		}
		fmt.Fprintln(os.Stderr, msg)
		return value.Null()
	}
	return value.NewBool(true)
}

// Command nola is the Nola interpreter/compiler CLI: lex, parse and either
// evaluate, compile to bytecode, or load and run a previously compiled
// bytecode file, per spec.md §6's flag surface.
//
// Grounded on the teacher's cmd/dwscript/main.go pattern (thin main calling
// into cmd.Execute), collapsed to a single root command since spec.md's CLI
// is flag-based rather than subcommand-based — see DESIGN.md.
package main

import (
	"os"

	"github.com/cwbudde/nola/cmd/nola/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

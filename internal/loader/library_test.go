package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/nola/internal/native"
)

func TestCandidateNamesOrder(t *testing.T) {
	got := candidateNames("math")
	want := []string{"libmath", "libmath.so", "libmath.dylib"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveFindsSoVariant(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "libmath.so"), []byte{}, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	libs := NewLibs([]string{dir}, native.NewRegistry())
	path, err := libs.resolve("math", []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "libmath.so") {
		t.Fatalf("got %q", path)
	}
}

func TestResolveMissingLibraryIsError(t *testing.T) {
	libs := NewLibs([]string{t.TempDir()}, native.NewRegistry())
	if _, err := libs.resolve("nope", libs.SearchDirs); err == nil {
		t.Fatal("expected an error for a missing library")
	}
}

func TestLoadLibraryRejectsNonPluginFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "libbad.so"), []byte("not an ELF shared object"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	libs := NewLibs([]string{dir}, native.NewRegistry())
	if err := libs.LoadLibrary("bad"); err == nil {
		t.Fatal("expected an error opening a non-plugin file")
	}
}

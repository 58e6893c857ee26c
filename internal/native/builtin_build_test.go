package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/nola/internal/value"
)

func TestNativeBuildManifestReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	content := "name: demo\nversion: 3\ndeps:\n  - math\n  - text\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got := nativeBuildManifest([]value.Value{value.NewString(path)})
	if got.Kind != value.Class {
		t.Fatalf("got %#v, want a class instance", got)
	}
	if got.Inst.ClassName != "Manifest" {
		t.Fatalf("class name = %q, want Manifest", got.Inst.ClassName)
	}
	if name := got.Inst.Fields["name"]; name.S != "demo" {
		t.Fatalf("name field = %#v, want demo", name)
	}
	if deps := got.Inst.Fields["deps"]; deps.Kind != value.Vec || len(deps.V.Elems) != 2 {
		t.Fatalf("deps field = %#v, want a 2-element vec", deps)
	}
}

func TestNativeBuildManifestMissingFile(t *testing.T) {
	got := nativeBuildManifest([]value.Value{value.NewString("/nonexistent/manifest.yaml")})
	if got.Kind != value.NullOp {
		t.Fatalf("got %#v, want NullOp for missing file", got)
	}
}

func TestDefaultRegistryHasBuildNative(t *testing.T) {
	if _, ok := Default.Lookup("buildManifest"); !ok {
		t.Error("expected buildManifest registered in Default")
	}
}

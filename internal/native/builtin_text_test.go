package native

import (
	"testing"

	"github.com/cwbudde/nola/internal/value"
)

func TestNativeTitleCase(t *testing.T) {
	got := nativeTitleCase([]value.Value{value.NewString("hello world")})
	if got.S != "Hello World" {
		t.Fatalf("titleCase = %q, want %q", got.S, "Hello World")
	}
}

func TestNativeFoldCase(t *testing.T) {
	got := nativeFoldCase([]value.Value{value.NewString("STRASSE")})
	if got.S != "strasse" {
		t.Fatalf("foldCase = %q, want %q", got.S, "strasse")
	}
}

func TestNativeTextRejectsNonString(t *testing.T) {
	if got := nativeTitleCase([]value.Value{value.NewInt(1)}); got.Kind != value.NullOp {
		t.Fatalf("expected NullOp for non-string arg, got %#v", got)
	}
}

func TestDefaultRegistryHasTextNatives(t *testing.T) {
	for _, name := range []string{"titleCase", "foldCase"} {
		if _, ok := Default.Lookup(name); !ok {
			t.Errorf("expected %q registered in Default", name)
		}
	}
}

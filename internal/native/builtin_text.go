// Supplements spec.md's string natives with Unicode-aware casing, grounded
// on the teacher's documented UTF-8-awareness discipline in
// internal/lexer/lexer.go's doc comments, and on golang.org/x/text — a
// teacher indirect dependency (pulled in transitively via go-snaps'
// dependency graph) promoted to direct use here rather than left dangling.
package native

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cwbudde/nola/internal/value"
)

var (
	titleCaser = cases.Title(language.Und)
	foldCaser  = cases.Fold()
)

func init() {
	Default.Register("titleCase", nativeTitleCase)
	Default.Register("foldCase", nativeFoldCase)
}

func nativeTitleCase(args []value.Value) value.Value {
	if len(args) != 1 || args[0].Kind != value.String {
		return value.Null()
	}
	return value.NewString(titleCaser.String(args[0].S))
}

// nativeFoldCase applies Unicode case-folding, the locale-independent
// equality-comparison form, not a display transformation.
func nativeFoldCase(args []value.Value) value.Value {
	if len(args) != 1 || args[0].Kind != value.String {
		return value.Null()
	}
	return value.NewString(foldCaser.String(args[0].S))
}

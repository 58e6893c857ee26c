package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"load", LOAD},
		{"form", FORM},
		{"class", CLASS},
		{"while", WHILE},
		{"true", TRUE},
		{"myVar", IDENT},
		{"Form", IDENT}, // lexer is byte-level and case-sensitive; only exact spelling is a keyword
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestSpanCombine(t *testing.T) {
	a := Span{LineNum: 3, StartCol: 5, EndCol: 8, LineText: "x = 1 + 2;"}
	b := Span{LineNum: 3, StartCol: 9, EndCol: 10, LineText: "ignored"}

	got := Combine(a, b)
	want := Span{LineNum: 3, StartCol: 5, EndCol: 10, LineText: "x = 1 + 2;"}

	if got != want {
		t.Errorf("Combine() = %+v, want %+v", got, want)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Text: "foo", Kind: IDENT, Span: Span{LineNum: 1, StartCol: 5}}
	want := `IDENT("foo") at 1:5`
	if got := tok.String(); got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}

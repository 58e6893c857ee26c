package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/nola/internal/token"
)

func TestErrorFormatWithSourceLine(t *testing.T) {
	span := token.Span{LineNum: 2, StartCol: 5, EndCol: 8, LineText: "x = 1 +;"}
	e := New(Syntax, span, "main.nl", "unexpected ';'")

	got := e.Format(false)
	if !strings.Contains(got, "SyntaxError in main.nl:2:5") {
		t.Errorf("missing header, got %q", got)
	}
	if !strings.Contains(got, "x = 1 +;") {
		t.Errorf("missing source line, got %q", got)
	}
	if !strings.Contains(got, "^^^") {
		t.Errorf("expected a 3-wide caret, got %q", got)
	}
	if !strings.Contains(got, "unexpected ';'") {
		t.Errorf("missing message, got %q", got)
	}
}

func TestErrorWithHint(t *testing.T) {
	e := New(MissingTerminator, token.Span{}, "", "missing ';'").WithHint("add a semicolon")
	got := e.Format(false)
	if !strings.Contains(got, "hint: add a semicolon") {
		t.Errorf("expected hint in output, got %q", got)
	}
}

func TestErrorFormatNoFile(t *testing.T) {
	e := New(Identifier, token.Span{LineNum: 1, StartCol: 1}, "", "unknown identifier 'foo'")
	got := e.Format(false)
	if !strings.HasPrefix(got, "IdentifierError at 1:1") {
		t.Errorf("expected file-less header, got %q", got)
	}
}

func TestErrorFormatColor(t *testing.T) {
	e := New(Type, token.Span{LineNum: 1, StartCol: 1, EndCol: 2, LineText: "x"}, "a.nl", "type mismatch")
	got := e.Format(true)
	if !strings.Contains(got, "\033[1;31m") {
		t.Errorf("expected ANSI color codes when color=true, got %q", got)
	}
}

func TestSinkAccumulatesInOrder(t *testing.T) {
	var s Sink
	if s.HasErrors() {
		t.Fatal("empty sink should report no errors")
	}

	s.Report(New(Syntax, token.Span{LineNum: 1}, "a.nl", "first"))
	s.Report(New(Type, token.Span{LineNum: 2}, "a.nl", "second"))

	if !s.HasErrors() {
		t.Fatal("expected HasErrors() true after Report")
	}
	errs := s.Errors()
	if len(errs) != 2 || errs[0].Message != "first" || errs[1].Message != "second" {
		t.Fatalf("unexpected error order: %+v", errs)
	}
}

func TestSinkFormatSingleVsMultiple(t *testing.T) {
	var single Sink
	single.Report(New(Syntax, token.Span{LineNum: 1}, "a.nl", "only error"))
	got := single.Format(false)
	if strings.Contains(got, "compilation failed") {
		t.Errorf("a single error should not be numbered, got %q", got)
	}

	var multi Sink
	multi.Report(New(Syntax, token.Span{LineNum: 1}, "a.nl", "err one"))
	multi.Report(New(Type, token.Span{LineNum: 2}, "a.nl", "err two"))
	got = multi.Format(false)
	if !strings.Contains(got, "compilation failed with 2 error(s)") {
		t.Errorf("expected numbered multi-error header, got %q", got)
	}
	if !strings.Contains(got, "[error 1 of 2]") || !strings.Contains(got, "[error 2 of 2]") {
		t.Errorf("expected both errors numbered, got %q", got)
	}
}

func TestSinkFormatEmpty(t *testing.T) {
	var s Sink
	if got := s.Format(false); got != "" {
		t.Errorf("expected empty string for empty sink, got %q", got)
	}
}

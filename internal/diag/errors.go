// Package diag implements the typed error taxonomy and diagnostics sink
// described by spec.md §7: SyntaxError, MissingTerminatorError,
// IdentifierError and TypeError, each carrying a message, an optional hint,
// a source Span and a filename, plus an ordered Sink that renders them with
// caret underlining.
//
// Grounded on the teacher's internal/errors/errors.go (CompilerError.Format/
// FormatWithContext/FormatErrors) and on original_source/include/errors.hpp
// and include/diagnostics.hpp, whose Error/SyntaxError/MissingTerminatorError/
// IdentifierError/TypeError class hierarchy becomes a Kind tag here instead
// of a C++ inheritance chain.
package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/nola/internal/token"
)

// Kind is the error taxonomy spec.md §7 requires.
type Kind int

const (
	Syntax Kind = iota
	MissingTerminator
	Identifier
	Type
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case MissingTerminator:
		return "MissingTerminatorError"
	case Identifier:
		return "IdentifierError"
	case Type:
		return "TypeError"
	default:
		return "Error"
	}
}

// Error is one diagnostic record.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
	Span    token.Span
	File    string
}

// New builds a plain Error of the given kind.
func New(kind Kind, span token.Span, file, message string) *Error {
	return &Error{Kind: kind, Span: span, File: file, Message: message}
}

// WithHint attaches a remediation hint and returns the same error for
// chaining at the call site.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func (e *Error) Error() string { return e.Format(false) }

// Format renders the error with a one-line source excerpt and a caret
// pointing at the offending column, optionally ANSI-colored. Mirrors
// CompilerError.Format in the teacher.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.File, e.Span.LineNum, e.Span.StartCol)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", e.Kind, e.Span.LineNum, e.Span.StartCol)
	}

	if e.Span.LineText != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Span.LineNum)
		sb.WriteString(lineNumStr)
		sb.WriteString(e.Span.LineText)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(e.Span.StartCol-1, 0)))
		width := e.Span.EndCol - e.Span.StartCol
		if width < 1 {
			width = 1
		}
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString(strings.Repeat("^", width))
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if e.Hint != "" {
		sb.WriteString("\nhint: ")
		sb.WriteString(e.Hint)
	}

	return sb.String()
}

// Sink accumulates diagnostics in the order they were reported, matching
// the original C++ Diagnostics class's has_errors()/print_errors().
type Sink struct {
	errs []*Error
}

// Report appends an error to the sink.
func (s *Sink) Report(err *Error) { s.errs = append(s.errs, err) }

// HasErrors reports whether any diagnostic has been reported.
func (s *Sink) HasErrors() bool { return len(s.errs) > 0 }

// Errors returns the accumulated diagnostics in report order.
func (s *Sink) Errors() []*Error { return s.errs }

// Format renders every accumulated diagnostic, numbering them when there is
// more than one, mirroring FormatErrors in the teacher.
func (s *Sink) Format(color bool) string {
	if len(s.errs) == 0 {
		return ""
	}
	if len(s.errs) == 1 {
		return s.errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(s.errs))
	for i, e := range s.errs {
		fmt.Fprintf(&sb, "[error %d of %d]\n", i+1, len(s.errs))
		sb.WriteString(e.Format(color))
		if i < len(s.errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

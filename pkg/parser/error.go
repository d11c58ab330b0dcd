// Package parser implements ASL's recursive-descent parser, converting a
// token stream from pkg/lexer into the raw (pre-typechecking) AST defined
// by pkg/ast.  Grounded on the teacher's pkg/sexp/parser.go: explicit
// error returns rather than panics, and a SyntaxError carrying the
// offending span plus a message (pkg/sexp/error.go), generalized here to
// ASL's full grammar instead of s-expression lists, with structural error
// recovery (spec.md §4.4) that resynchronises at the next top-level
// declaration keyword after a parse error instead of aborting the whole
// file.
package parser

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/lexer"
)

// SyntaxError is a structured parse error retaining the span in the
// original source where it arose, mirroring the teacher's sexp.SyntaxError.
type SyntaxError struct {
	Span    lexer.Span
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

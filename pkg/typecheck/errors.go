package typecheck

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// FailureKind classifies a typechecking diagnostic per spec.md §4.6's
// failure model.
type FailureKind int

const (
	UnknownObject FailureKind = iota
	IsNotA
	DoesNotMatch
	Ambiguous
	TypeErrorKind
	Unimplemented
)

func (k FailureKind) String() string {
	switch k {
	case UnknownObject:
		return "UnknownObject"
	case IsNotA:
		return "IsNotA"
	case DoesNotMatch:
		return "DoesNotMatch"
	case Ambiguous:
		return "Ambiguous"
	case TypeErrorKind:
		return "TypeError"
	case Unimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// Error is one typed typechecking diagnostic.
type Error struct {
	Kind    FailureKind
	Loc     ident.Location
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Loc, e.Kind, e.Message)
}

// maxErrorsExceeded is a sentinel panic value; after the configurable error
// budget is exhausted, the typechecker rethrows instead of recovering
// (spec.md §4.6 "Failure model").
type maxErrorsExceeded struct{}

// Checker accumulates diagnostics across a whole typechecking run and
// enforces the configurable error budget.
type Checker struct {
	Env       *Env
	MaxErrors int
	Errors    []*Error
	// CurrentReturn is the declared return type of the function body
	// currently being checked, nil outside of one (spec.md §4.6 tc_stmt's
	// Return case checks against it).
	CurrentReturn ast.Type
}

// NewChecker creates a Checker over env with the given error budget; a
// non-positive maxErrors means unlimited.
func NewChecker(env *Env, maxErrors int) *Checker {
	return &Checker{Env: env, MaxErrors: maxErrors}
}

func (c *Checker) report(kind FailureKind, loc ident.Location, format string, args ...any) {
	c.Errors = append(c.Errors, &Error{Kind: kind, Loc: loc, Message: fmt.Sprintf(format, args...)})

	if c.MaxErrors > 0 && len(c.Errors) >= c.MaxErrors {
		panic(maxErrorsExceeded{})
	}
}

// Recover turns a maxErrorsExceeded panic raised by report back into a
// normal return; any other panic is re-raised. Callers at the top of a
// typechecking entry point should `defer c.Recover()`.
func (c *Checker) Recover() {
	if r := recover(); r != nil {
		if _, ok := r.(maxErrorsExceeded); !ok {
			panic(r)
		}
	}
}

func errLoc(n ast.Node) ident.Location {
	if n == nil {
		return ident.Unknown
	}

	return n.Loc()
}

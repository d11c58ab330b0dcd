// Package checks implements the global, pre-typecheck sanity passes over a
// raw AST: the evaluation-order / effectful-call policing described by
// spec.md §4.5. Unlike the teacher's corset constraints, which are
// side-effect-free by construction, ASL functions can mutate globals, so a
// pass must run before typechecking to reject expressions whose value would
// otherwise depend on an unspecified evaluation order.
package checks

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// Error is a diagnostic produced by a global check, carrying the source
// location of the offending construct.
type Error struct {
	Loc     ident.Location
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// Check runs every global check over decls and returns every violation
// found; it does not stop at the first one, mirroring the parser's
// accumulate-and-continue error model.
func Check(decls []ast.Decl) []*Error {
	eff := computeEffectfulFuncs(decls)

	var errs []*Error

	for _, d := range decls {
		switch n := d.(type) {
		case *ast.FuncDef:
			errs = append(errs, checkStmts(n.Body, eff)...)
		case *ast.ConstDecl:
			errs = append(errs, checkExprRoot(n.Value, eff)...)
		case *ast.ConfigConstDecl:
			errs = append(errs, checkExprRoot(n.Default, eff)...)
		case *ast.VarDeclGlobal:
			errs = append(errs, checkExprRoot(n.Init, eff)...)
		}
	}

	return errs
}

func checkExprRoot(e ast.Expr, eff map[string]bool) []*Error {
	if e == nil {
		return nil
	}

	var errs []*Error

	checkExprOrder(e, eff, &errs)

	return errs
}

package checks

import "github.com/asl-lang/aslc/pkg/ast"

// checkStmts runs the evaluation-order check over every expression reachable
// from stmts, recursing into nested bodies.
func checkStmts(stmts []ast.Stmt, eff map[string]bool) []*Error {
	var errs []*Error

	for _, s := range stmts {
		for _, e := range stmtExprs(s) {
			checkExprOrder(e, eff, &errs)
		}

		for _, body := range stmtNestedBodies(s) {
			errs = append(errs, checkStmts(body, eff)...)
		}
	}

	return errs
}

// checkExprOrder walks e in post-order, flagging any node two or more of
// whose immediate children each contain an effectful call — their relative
// evaluation order is unspecified, so the expression's value would be
// ambiguous. It returns whether e itself (including its descendants)
// contains an effectful call, so a parent call can fold that fact into its
// own sibling count.
func checkExprOrder(e ast.Expr, eff map[string]bool, errs *[]*Error) bool {
	if e == nil {
		return false
	}

	children := exprChildren(e)

	effectfulChildren := 0

	anyEffectful := false

	for _, c := range children {
		if checkExprOrder(c, eff, errs) {
			effectfulChildren++

			anyEffectful = true
		}
	}

	if effectfulChildren > 1 {
		*errs = append(*errs, &Error{
			Loc:     e.Loc(),
			Message: "ambiguous evaluation order: more than one effectful call as a sibling subexpression",
		})
	}

	if name, ok := callName(e); ok && eff[name] {
		anyEffectful = true
	}

	return anyEffectful
}

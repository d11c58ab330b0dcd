package checks

import "github.com/asl-lang/aslc/pkg/ast"

// exprChildren returns e's immediate expression-valued children, the same
// shape as ast.descendExpr but returning a slice rather than mutating in
// place; nil children are omitted.
func exprChildren(e ast.Expr) []ast.Expr {
	var out []ast.Expr

	add := func(c ast.Expr) {
		if c != nil {
			out = append(out, c)
		}
	}

	switch n := e.(type) {
	case *ast.LitInt, *ast.LitBits, *ast.LitMask, *ast.LitString, *ast.LitBool, *ast.Var, *ast.UnknownOfType:
		// leaves
	case *ast.Field:
		add(n.Record)
	case *ast.MultiField:
		add(n.Record)
	case *ast.Index:
		add(n.Array)
		add(n.Key)
	case *ast.Slice:
		add(n.Target)
		add(n.Index)
		add(n.Width)
	case *ast.RecordLit:
		for _, f := range n.Values {
			add(f)
		}
	case *ast.With:
		add(n.Target)

		for _, c := range n.Changes {
			add(c.Value)
			add(c.Low)
			add(c.Width)
		}
	case *ast.Cond:
		for _, a := range n.Arms {
			add(a.Cond)
			add(a.Then)
		}

		add(n.Else)
	case *ast.Let:
		add(n.Bound)
		add(n.Body)
	case *ast.AssertIn:
		add(n.Assertion)
		add(n.Body)
	case *ast.UntypedCall:
		for _, a := range n.Args {
			add(a.Expr)
		}
	case *ast.TypedCall:
		for _, p := range n.Params {
			add(p)
		}

		for _, a := range n.Args {
			add(a)
		}
	case *ast.TupleExpr:
		for _, el := range n.Elems {
			add(el)
		}
	case *ast.Concat:
		for _, el := range n.Elems {
			add(el.Value)
		}
	case *ast.UnaryOp:
		add(n.Arg)
	case *ast.BinaryOp:
		add(n.Left)
		add(n.Right)
	case *ast.AsConstraint:
		add(n.Target)
	case *ast.AsType:
		add(n.Target)
	case *ast.ArrayInit:
		for _, el := range n.Elems {
			add(el)
		}

		add(n.Repeat)
		add(n.Count)
	case *ast.PatternIn:
		add(n.Target)
	}

	return out
}

// callName returns the callee name of an UntypedCall node, or "" otherwise.
func callName(e ast.Expr) (string, bool) {
	if c, ok := e.(*ast.UntypedCall); ok {
		return c.Callee.Name, true
	}

	return "", false
}

// collectCallNames walks e and every descendant, recording every UntypedCall
// callee name reached.
func collectCallNames(e ast.Expr, out map[string]bool) {
	if e == nil {
		return
	}

	if name, ok := callName(e); ok {
		out[name] = true
	}

	for _, c := range exprChildren(e) {
		collectCallNames(c, out)
	}
}

// lvalRoot returns the base variable name an lvalue ultimately writes
// through, peeling off field/index/slice layers.
func lvalRoot(l ast.LVal) (string, bool) {
	switch n := l.(type) {
	case *ast.LVar:
		return n.Name.Name, true
	case *ast.LField:
		return lvalRoot(n.Record)
	case *ast.LIndex:
		return lvalRoot(n.Array)
	case *ast.LSlice:
		return lvalRoot(n.Target)
	default:
		return "", false
	}
}

// stmtsCallNames collects the UntypedCall names reachable from stmts,
// recursing into every nested statement body and expression.
func stmtsCallNames(stmts []ast.Stmt, out map[string]bool) {
	for _, s := range stmts {
		stmtCallNames(s, out)
	}
}

func stmtCallNames(s ast.Stmt, out map[string]bool) {
	for _, e := range stmtExprs(s) {
		collectCallNames(e, out)
	}

	for _, body := range stmtNestedBodies(s) {
		stmtsCallNames(body, out)
	}
}

// stmtsAssignGlobal reports whether stmts (or any nested body) contains an
// assignment whose lvalue root names one of globals.
func stmtsAssignGlobal(stmts []ast.Stmt, globals map[string]bool) bool {
	for _, s := range stmts {
		if a, ok := s.(*ast.Assign); ok {
			if root, ok := lvalRoot(a.LHS); ok && globals[root] {
				return true
			}
		}

		for _, body := range stmtNestedBodies(s) {
			if stmtsAssignGlobal(body, globals) {
				return true
			}
		}
	}

	return false
}

// stmtExprs returns the expression-valued fields directly attached to s
// (not recursing into nested statement bodies; see stmtNestedBodies for
// those).
func stmtExprs(s ast.Stmt) []ast.Expr {
	var out []ast.Expr

	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			out = append(out, n.Init)
		}
	case *ast.Assign:
		out = append(out, n.RHS)

		out = append(out, lvalExprs(n.LHS)...)
	case *ast.ExprStmt:
		if n.Untyped != nil {
			out = append(out, n.Untyped)
		}

		if n.Typed != nil {
			out = append(out, n.Typed)
		}
	case *ast.Return:
		if n.Value != nil {
			out = append(out, n.Value)
		}
	case *ast.Assert:
		out = append(out, n.Cond)
	case *ast.Throw:
		out = append(out, n.Exception)
	case *ast.If:
		for _, a := range n.Arms {
			out = append(out, a.Cond)
		}
	case *ast.Case:
		out = append(out, n.Scrutinee)
	case *ast.For:
		out = append(out, n.Lo, n.Hi)
	case *ast.While:
		out = append(out, n.Cond)
	case *ast.Repeat:
		out = append(out, n.Cond)
	}

	return out
}

// lvalExprs returns the expression-valued index/width subexpressions nested
// inside an lvalue (the lvalue itself is never a side-effect hazard; its
// index expressions are).
func lvalExprs(l ast.LVal) []ast.Expr {
	var out []ast.Expr

	switch n := l.(type) {
	case *ast.LField:
		out = append(out, lvalExprs(n.Record)...)
	case *ast.LIndex:
		out = append(out, lvalExprs(n.Array)...)
		out = append(out, n.Key)
	case *ast.LSlice:
		out = append(out, lvalExprs(n.Target)...)
		out = append(out, n.Index)

		if n.Width != nil {
			out = append(out, n.Width)
		}
	}

	return out
}

// stmtNestedBodies returns the nested statement-sequence fields of s, in the
// order they execute.
func stmtNestedBodies(s ast.Stmt) [][]ast.Stmt {
	switch n := s.(type) {
	case *ast.If:
		bodies := make([][]ast.Stmt, 0, len(n.Arms)+1)
		for _, a := range n.Arms {
			bodies = append(bodies, a.Body)
		}

		if n.Else != nil {
			bodies = append(bodies, n.Else)
		}

		return bodies
	case *ast.Case:
		bodies := make([][]ast.Stmt, 0, len(n.Alts)+1)
		for _, a := range n.Alts {
			bodies = append(bodies, a.Body)
		}

		if n.Default != nil {
			bodies = append(bodies, n.Default)
		}

		return bodies
	case *ast.For:
		return [][]ast.Stmt{n.Body}
	case *ast.While:
		return [][]ast.Stmt{n.Body}
	case *ast.Repeat:
		return [][]ast.Stmt{n.Body}
	case *ast.Try:
		bodies := make([][]ast.Stmt, 0, len(n.Arms)+2)
		bodies = append(bodies, n.Body)

		for _, a := range n.Arms {
			bodies = append(bodies, a.Body)
		}

		if n.Default != nil {
			bodies = append(bodies, n.Default)
		}

		return bodies
	default:
		return nil
	}
}

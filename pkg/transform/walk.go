package transform

import "github.com/asl-lang/aslc/pkg/ast"

// postOrderVisitor adapts a plain Expr->Expr rewrite function into the
// ast.ExprVisitor contract, descending into every child first and applying
// fn to the rebuilt node (spec.md §4.7 passes are bottom-up rewrites).
type postOrderVisitor struct{ fn func(ast.Expr) ast.Expr }

func (v postOrderVisitor) VisitExpr(e ast.Expr) ast.ExprAction {
	return ast.ExprAction{Kind: ast.DoChildren, PostFn: v.fn}
}

// RewriteExpr rewrites every node of e, bottom-up, with fn.
func RewriteExpr(e ast.Expr, fn func(ast.Expr) ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}

	return ast.WalkExpr(postOrderVisitor{fn}, e)
}

// rewriteLVal rewrites every expression embedded in an lvalue (index keys,
// slice bounds) with fn, leaving the lvalue's own shape untouched; the
// ast.ExprVisitor machinery only covers Expr, not LVal, so this is hand
// written analogous to pkg/checks/walk.go's lvalExprs.
func rewriteLVal(l ast.LVal, fn func(ast.Expr) ast.Expr) ast.LVal {
	switch n := l.(type) {
	case *ast.LVar:
		return n
	case *ast.LField:
		n.Record = rewriteLVal(n.Record, fn)
		return n
	case *ast.LIndex:
		n.Array = rewriteLVal(n.Array, fn)
		n.Key = RewriteExpr(n.Key, fn)
		return n
	case *ast.LSlice:
		n.Target = rewriteLVal(n.Target, fn)
		n.Index = RewriteExpr(n.Index, fn)
		if n.Width != nil {
			n.Width = RewriteExpr(n.Width, fn)
		}
		return n
	case *ast.LTuple:
		for i := range n.Elems {
			n.Elems[i] = rewriteLVal(n.Elems[i], fn)
		}
		return n
	case *ast.ReadWrite:
		for i := range n.Args {
			n.Args[i] = RewriteExpr(n.Args[i], fn)
		}
		return n
	case *ast.Write:
		for i := range n.Args {
			n.Args[i] = RewriteExpr(n.Args[i], fn)
		}
		return n
	default:
		return l
	}
}

// RewriteStmtsExprs rewrites every expression embedded directly or
// transitively in stmts with fn, without altering statement structure; used
// by passes that only touch expressions (constant propagation and bitslice
// normalization through RewriteAllExprs, and monomorphization).
func RewriteStmtsExprs(stmts []ast.Stmt, fn func(ast.Expr) ast.Expr) []ast.Stmt {
	for _, s := range stmts {
		rewriteStmtExprs(s, fn)
	}

	return stmts
}

func rewriteStmtExprs(s ast.Stmt, fn func(ast.Expr) ast.Expr) {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			n.Init = RewriteExpr(n.Init, fn)
		}
	case *ast.Assign:
		n.LHS = rewriteLVal(n.LHS, fn)
		n.RHS = RewriteExpr(n.RHS, fn)
	case *ast.ExprStmt:
		if n.Typed != nil {
			n.Typed = RewriteExpr(n.Typed, fn).(*ast.TypedCall)
		}
	case *ast.Return:
		if n.Value != nil {
			n.Value = RewriteExpr(n.Value, fn)
		}
	case *ast.Assert:
		n.Cond = RewriteExpr(n.Cond, fn)
	case *ast.Throw:
		n.Exception = RewriteExpr(n.Exception, fn)
	case *ast.If:
		for i := range n.Arms {
			n.Arms[i].Cond = RewriteExpr(n.Arms[i].Cond, fn)
			RewriteStmtsExprs(n.Arms[i].Body, fn)
		}

		RewriteStmtsExprs(n.Else, fn)
	case *ast.Case:
		n.Scrutinee = RewriteExpr(n.Scrutinee, fn)

		for i := range n.Alts {
			RewriteStmtsExprs(n.Alts[i].Body, fn)
		}

		RewriteStmtsExprs(n.Default, fn)
	case *ast.For:
		n.Lo = RewriteExpr(n.Lo, fn)
		n.Hi = RewriteExpr(n.Hi, fn)
		RewriteStmtsExprs(n.Body, fn)
	case *ast.While:
		n.Cond = RewriteExpr(n.Cond, fn)
		RewriteStmtsExprs(n.Body, fn)
	case *ast.Repeat:
		RewriteStmtsExprs(n.Body, fn)
		n.Cond = RewriteExpr(n.Cond, fn)
	case *ast.Try:
		RewriteStmtsExprs(n.Body, fn)

		for i := range n.Arms {
			RewriteStmtsExprs(n.Arms[i].Body, fn)
		}

		RewriteStmtsExprs(n.Default, fn)
	}
}

// EachFuncBody calls fn on every function/getter/setter body in decls,
// in place.
func EachFuncBody(decls []ast.Decl, fn func(*ast.FuncDef)) {
	for _, d := range decls {
		if f, ok := d.(*ast.FuncDef); ok {
			fn(f)
		}
	}
}

// RewriteAllExprs rewrites every expression reachable from decls (function
// bodies, global/const initializers) with fn; the shared entry point for
// every expression-only pass.
func RewriteAllExprs(decls []ast.Decl, fn func(ast.Expr) ast.Expr) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.FuncDef:
			n.Body = RewriteStmtsExprs(n.Body, fn)
		case *ast.ConstDecl:
			n.Value = RewriteExpr(n.Value, fn)
		case *ast.ConfigConstDecl:
			if n.Default != nil {
				n.Default = RewriteExpr(n.Default, fn)
			}
		case *ast.VarDeclGlobal:
			if n.Init != nil {
				n.Init = RewriteExpr(n.Init, fn)
			}
		}
	}
}

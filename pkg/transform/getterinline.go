package transform

import "github.com/asl-lang/aslc/pkg/ast"

// InlineAccessors rewrites an assignment through a resolved getter/setter
// lvalue into a direct call to the resolved setter, appending the assigned
// value as the setter's trailing parameter (spec.md §4.6's getter/setter
// resolution note, completed by this pass per spec.md §4.7). Grounded on
// the same preprocessor.go-style statement rewriter as LowerCases.
func InlineAccessors(ctx *Context, decls []ast.Decl) []ast.Decl {
	v := accessorInlineVisitor{}

	EachFuncBody(decls, func(f *ast.FuncDef) {
		f.Body = ast.WalkStmts(v, f.Body)
	})

	return decls
}

type accessorInlineVisitor struct{}

func (accessorInlineVisitor) VisitStmt(s ast.Stmt) ast.StmtAction {
	as, ok := s.(*ast.Assign)
	if !ok {
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	var setter ast.LVal

	switch as.LHS.(type) {
	case *ast.Write, *ast.ReadWrite:
		setter = as.LHS
	default:
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	call := &ast.ExprStmt{}

	switch n := setter.(type) {
	case *ast.Write:
		call.Typed = &ast.TypedCall{Callee: n.Setter, Args: append(append([]ast.Expr{}, n.Args...), as.RHS)}
	case *ast.ReadWrite:
		call.Typed = &ast.TypedCall{Callee: n.Setter, Args: append(append([]ast.Expr{}, n.Args...), as.RHS)}
	}

	return ast.StmtAction{Kind: ast.Change, Replacement: []ast.Stmt{call}}
}

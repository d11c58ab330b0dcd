package transform

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// HoistLets lifts every let-expression that sits in an unconditionally
// evaluated position out to its own statement, so every later pass (and the
// emitter) only ever has to handle let-bindings at statement position
// (spec.md §4.7's let-hoisting bullet: earlier passes, especially runtime
// check insertion during typechecking, introduce Let nodes nested inside
// ordinary expressions). Lets nested inside a conditionally evaluated
// branch (an If/Case arm, or anywhere inside a Cond expression, whose
// subexpressions hoistExpr does not enter) are left in place: hoisting them
// would change how often their binding is evaluated.
// Grounded on pkg/corset/compiler/preprocessor.go's preprocessLetInModule,
// generalized from corset's reduction-only let handling to ASL's full
// statement grammar.
func HoistLets(ctx *Context, decls []ast.Decl) []ast.Decl {
	EachFuncBody(decls, func(f *ast.FuncDef) { f.Body = hoistStmts(f.Body) })

	return decls
}

func hoistStmts(stmts []ast.Stmt) []ast.Stmt {
	var out []ast.Stmt

	for _, s := range stmts {
		out = append(out, hoistStmt(s)...)
	}

	return out
}

func hoistStmt(s ast.Stmt) []ast.Stmt {
	var pre []ast.Stmt

	take := func(e ast.Expr) ast.Expr {
		var p []ast.Stmt
		p, e = hoistExpr(e)
		pre = append(pre, p...)

		return e
	}

	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			n.Init = take(n.Init)
		}
	case *ast.Assign:
		n.RHS = take(n.RHS)
	case *ast.Return:
		if n.Value != nil {
			n.Value = take(n.Value)
		}
	case *ast.Assert:
		n.Cond = take(n.Cond)
	case *ast.Throw:
		n.Exception = take(n.Exception)
	case *ast.Case:
		n.Scrutinee = take(n.Scrutinee)

		for i := range n.Alts {
			n.Alts[i].Body = hoistStmts(n.Alts[i].Body)
		}

		n.Default = hoistStmts(n.Default)
	case *ast.If:
		if len(n.Arms) > 0 {
			n.Arms[0].Cond = take(n.Arms[0].Cond)
		}

		for i := range n.Arms {
			n.Arms[i].Body = hoistStmts(n.Arms[i].Body)
		}

		n.Else = hoistStmts(n.Else)
	case *ast.For:
		n.Lo = take(n.Lo)
		n.Hi = take(n.Hi)
		n.Body = hoistStmts(n.Body)
	case *ast.While:
		n.Cond = take(n.Cond)
		n.Body = hoistStmts(n.Body)
	case *ast.Repeat:
		n.Body = hoistStmts(n.Body)
	case *ast.Try:
		n.Body = hoistStmts(n.Body)

		for i := range n.Arms {
			n.Arms[i].Body = hoistStmts(n.Arms[i].Body)
		}

		n.Default = hoistStmts(n.Default)
	}

	return append(pre, s)
}

// hoistExpr recursively extracts every let bound in an unconditionally
// evaluated position of e, returning the statements that must precede e's
// containing statement and e with those lets replaced by their bodies.
func hoistExpr(e ast.Expr) ([]ast.Stmt, ast.Expr) {
	switch n := e.(type) {
	case nil:
		return nil, nil
	case *ast.Let:
		preBound, bound := hoistExpr(n.Bound)
		preBody, body := hoistExpr(n.Body)

		vd := &ast.VarDecl{Init: bound, Names: []ident.Ident{n.Name}}

		return append(append(preBound, vd), preBody...), body
	case *ast.BinaryOp:
		if n.Op == "&&" || n.Op == "||" {
			preL, l := hoistExpr(n.Left)
			n.Left = l

			return preL, n
		}

		preL, l := hoistExpr(n.Left)
		preR, r := hoistExpr(n.Right)
		n.Left, n.Right = l, r

		return append(preL, preR...), n
	case *ast.UnaryOp:
		pre, a := hoistExpr(n.Arg)
		n.Arg = a

		return pre, n
	case *ast.Field:
		pre, r := hoistExpr(n.Record)
		n.Record = r

		return pre, n
	case *ast.Index:
		preA, a := hoistExpr(n.Array)
		preK, k := hoistExpr(n.Key)
		n.Array, n.Key = a, k

		return append(preA, preK...), n
	case *ast.Slice:
		pre, t := hoistExpr(n.Target)
		n.Target = t

		return pre, n
	case *ast.Concat:
		var pre []ast.Stmt

		for i := range n.Elems {
			p, v := hoistExpr(n.Elems[i].Value)
			pre = append(pre, p...)
			n.Elems[i].Value = v
		}

		return pre, n
	case *ast.TupleExpr:
		var pre []ast.Stmt

		for i := range n.Elems {
			p, v := hoistExpr(n.Elems[i])
			pre = append(pre, p...)
			n.Elems[i] = v
		}

		return pre, n
	case *ast.TypedCall:
		var pre []ast.Stmt

		for i := range n.Args {
			p, v := hoistExpr(n.Args[i])
			pre = append(pre, p...)
			n.Args[i] = v
		}

		return pre, n
	default:
		return nil, e
	}
}

package transform

import "github.com/asl-lang/aslc/pkg/ast"

// LowerCases rewrites a `case scrutinee of when p1 => s1 ... otherwise
// s end` statement into an equivalent If/elsif chain, each pattern compiled
// to a boolean test against the scrutinee; a missing `otherwise` arm becomes
// a call raising the runtime unmatched-case exception (spec.md §4.7's
// case-lowering bullet). Grounded on pkg/corset/compiler/preprocessor.go's
// per-statement-kind rewrite shape.
func LowerCases(ctx *Context, decls []ast.Decl) []ast.Decl {
	v := caseLowerVisitor{}

	EachFuncBody(decls, func(f *ast.FuncDef) {
		f.Body = ast.WalkStmts(v, f.Body)
	})

	return decls
}

type caseLowerVisitor struct{}

func (caseLowerVisitor) VisitStmt(s ast.Stmt) ast.StmtAction {
	c, ok := s.(*ast.Case)
	if !ok {
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	out := &ast.If{}

	for _, alt := range c.Alts {
		out.Arms = append(out.Arms, ast.IfArm{
			Cond: patternCond(c.Scrutinee, alt.Pattern),
			Body: alt.Body,
		})
	}

	if c.Default != nil {
		out.Else = c.Default
	} else {
		out.Else = []ast.Stmt{&ast.Throw{Exception: &ast.UntypedCall{Callee: unmatchedCaseException}}}
	}

	return ast.StmtAction{Kind: ast.Change, Replacement: []ast.Stmt{out}}
}

// unmatchedCaseException names the exception every unmatched case
// statement without an `otherwise` arm raises at runtime.
var unmatchedCaseException = mustNewIdent("UnmatchedCase")

func patternCond(scrutinee ast.Expr, p ast.Pattern) ast.Expr {
	switch pat := p.(type) {
	case *ast.PatLit:
		return &ast.BinaryOp{Op: "==", Left: scrutinee, Right: &ast.LitInt{Value: pat.Value}}
	case *ast.PatConst:
		return &ast.BinaryOp{Op: "==", Left: scrutinee, Right: &ast.Var{Name: pat.Name}}
	case *ast.PatWildcard:
		return &ast.LitBool{Value: true}
	case *ast.PatSingle:
		return &ast.BinaryOp{Op: "==", Left: scrutinee, Right: pat.Expr}
	case *ast.PatRange:
		return &ast.BinaryOp{
			Op:   "&&",
			Left: &ast.BinaryOp{Op: ">=", Left: scrutinee, Right: pat.Lo},
			Right: &ast.BinaryOp{Op: "<=", Left: scrutinee, Right: pat.Hi},
		}
	case *ast.PatMask:
		care := &ast.LitBits{Value: pat.Care, Width: pat.Width}
		bits := &ast.LitBits{Value: pat.Bits, Width: pat.Width}
		return &ast.BinaryOp{Op: "==", Left: &ast.BinaryOp{Op: "&", Left: scrutinee, Right: care}, Right: bits}
	case *ast.PatSet:
		if len(pat.Elems) == 0 {
			return &ast.LitBool{Value: false}
		}

		cond := patternCond(scrutinee, pat.Elems[0])
		for _, e := range pat.Elems[1:] {
			cond = &ast.BinaryOp{Op: "||", Left: cond, Right: patternCond(scrutinee, e)}
		}

		return cond
	case *ast.PatTuple:
		if len(pat.Elems) == 0 {
			return &ast.LitBool{Value: true}
		}

		field := func(i int) ast.Expr {
			return &ast.Field{Record: scrutinee, Name: mustNewIdent(ordinalField(i))}
		}

		cond := patternCond(field(0), pat.Elems[0])
		for i, e := range pat.Elems[1:] {
			cond = &ast.BinaryOp{Op: "&&", Left: cond, Right: patternCond(field(i+1), e)}
		}

		return cond
	default:
		return &ast.LitBool{Value: false}
	}
}

package transform

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// EliminateTuples replaces every tuple-typed function return with a
// synthesized record type (spec.md §4.7's tuple-elimination bullet),
// rewrites destructuring var-decls and tuple-lvalue assignments against a
// temporary holding the record, and lowers a tuple-valued conditional
// assigned to a tuple lvalue into a per-element if/else. Grounded on
// pkg/corset/compiler/preprocessor.go's preprocessInvokeInModule-style
// substitution rewriting, generalized from argument substitution to
// result-shape substitution.
func EliminateTuples(ctx *Context, decls []ast.Decl) []ast.Decl {
	var out []ast.Decl

	for _, d := range decls {
		f, ok := d.(*ast.FuncDef)
		if !ok {
			out = append(out, d)
			continue
		}

		tt, ok := f.ReturnType.(*ast.TupleType)
		if !ok {
			out = append(out, d)
			continue
		}

		rd := syntheticTupleRecord(ctx, f.Name.Name, tt)
		out = append(out, rd)

		named := &ast.NamedType{Name: rd.Name}
		f.ReturnType = named

		f.Body = ast.WalkStmts(returnRewriter{rd}, f.Body)

		out = append(out, f)
	}

	decls = out

	v := tupleLValVisitor{ctx}

	EachFuncBody(decls, func(f *ast.FuncDef) {
		f.Body = ast.WalkStmts(v, f.Body)
	})

	return decls
}

// syntheticTupleRecord builds the record type standing in for a tuple
// return shape, with positional fields r0, r1, ....
func syntheticTupleRecord(ctx *Context, funcName string, tt *ast.TupleType) *ast.RecordDecl {
	name := ident.WithTag(fmt.Sprintf("__Return_%s", funcName), ctx.Supply.fresh())

	rd := &ast.RecordDecl{Name: name}

	for i, elem := range tt.Elems {
		rd.Fields = append(rd.Fields, ast.RecordField{
			Name: ident.New(fmt.Sprintf("r%d", i)),
			Type: elem,
		})
	}

	ctx.Records[name.Name] = rd

	return rd
}

// returnRewriter rewrites `return (e0, e1, ...)` into `return
// Rec{r0:e0,...}` inside a single tuple-returning function body.
type returnRewriter struct{ rd *ast.RecordDecl }

func (v returnRewriter) VisitStmt(s ast.Stmt) ast.StmtAction {
	ret, ok := s.(*ast.Return)
	if !ok || ret.Value == nil {
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	tup, ok := ret.Value.(*ast.TupleExpr)
	if !ok {
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	lit := &ast.RecordLit{}

	for i, f := range v.rd.Fields {
		lit.Fields = append(lit.Fields, f.Name)
		if i < len(tup.Elems) {
			lit.Values = append(lit.Values, tup.Elems[i])
		}
	}

	ret.Value = lit

	return ast.StmtAction{Kind: ast.DoChildren}
}

// tupleLValVisitor rewrites tuple-shaped destructuring (`var (a,b) =
// f();` and `(a,b) = f();`) against a temporary bound to the call result,
// and a tuple-valued conditional assigned to a tuple lvalue into per-arm
// element assignments.
type tupleLValVisitor struct{ ctx *Context }

func (v tupleLValVisitor) VisitStmt(s ast.Stmt) ast.StmtAction {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Shape != ast.ShapeTuple {
			return ast.StmtAction{Kind: ast.DoChildren}
		}

		tmp := ident.WithTag("__tuple", v.ctx.Supply.fresh())

		out := []ast.Stmt{&ast.VarDecl{Names: []ident.Ident{tmp}, Init: n.Init}}

		for i, name := range n.Names {
			out = append(out, &ast.VarDecl{
				Names: []ident.Ident{name},
				Init:  &ast.Field{Record: &ast.Var{Name: tmp}, Name: ident.New(fmt.Sprintf("r%d", i))},
			})
		}

		return ast.StmtAction{Kind: ast.Change, Replacement: out}

	case *ast.Assign:
		lt, ok := n.LHS.(*ast.LTuple)
		if !ok {
			return ast.StmtAction{Kind: ast.DoChildren}
		}

		if cond, ok := n.RHS.(*ast.Cond); ok {
			return ast.StmtAction{Kind: ast.Change, Replacement: lowerTupleCond(lt, cond)}
		}

		tmp := ident.WithTag("__tuple", v.ctx.Supply.fresh())

		out := []ast.Stmt{&ast.VarDecl{Names: []ident.Ident{tmp}, Init: n.RHS}}

		for i, elem := range lt.Elems {
			out = append(out, &ast.Assign{
				LHS: elem,
				RHS: &ast.Field{Record: &ast.Var{Name: tmp}, Name: ident.New(fmt.Sprintf("r%d", i))},
			})
		}

		return ast.StmtAction{Kind: ast.Change, Replacement: out}
	}

	return ast.StmtAction{Kind: ast.DoChildren}
}

// lowerTupleCond rewrites `(a,b) = if c then (x0,x1) else (y0,y1) end` into
// an If statement assigning each lvalue element directly in each arm,
// avoiding ever materializing an intermediate tuple/record value.
func lowerTupleCond(lt *ast.LTuple, cond *ast.Cond) []ast.Stmt {
	assignArm := func(val ast.Expr) []ast.Stmt {
		tup, ok := val.(*ast.TupleExpr)
		if !ok {
			return nil
		}

		var body []ast.Stmt

		for i, elem := range lt.Elems {
			if i < len(tup.Elems) {
				body = append(body, &ast.Assign{LHS: elem, RHS: tup.Elems[i]})
			}
		}

		return body
	}

	out := &ast.If{}

	for _, arm := range cond.Arms {
		out.Arms = append(out.Arms, ast.IfArm{Cond: arm.Cond, Body: assignArm(arm.Then)})
	}

	if cond.Else != nil {
		out.Else = assignArm(cond.Else)
	}

	return []ast.Stmt{out}
}

package transform

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// LowerBitTuples rewrites a ShapeBitTuple VarDecl (`var (a: bits(8), b:
// bits(4)) = wide;`) into a temporary holding the wide value followed by one
// slice-initialized VarDecl per name, packed high-to-low, matching spec.md
// §4.7's bittuple-lowering bullet. Grounded on the same
// preprocessor.go-style single-purpose rewrite pass as Desugar.
func LowerBitTuples(ctx *Context, decls []ast.Decl) []ast.Decl {
	v := bitTupleVisitor{ctx}

	EachFuncBody(decls, func(f *ast.FuncDef) {
		f.Body = ast.WalkStmts(v, f.Body)
	})

	return decls
}

type bitTupleVisitor struct{ ctx *Context }

func (v bitTupleVisitor) VisitStmt(s ast.Stmt) ast.StmtAction {
	vd, ok := s.(*ast.VarDecl)
	if !ok || vd.Shape != ast.ShapeBitTuple {
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	tt, ok := vd.Type.(*ast.TupleType)
	if !ok || len(tt.Elems) != len(vd.Names) {
		return ast.StmtAction{Kind: ast.DoChildren}
	}

	tmp := ident.WithTag("__bittuple", v.ctx.Supply.fresh())

	out := []ast.Stmt{
		&ast.VarDecl{Names: []ident.Ident{tmp}, Init: vd.Init},
	}

	// Compute each name's width from its declared bits(N) slot and assign
	// slices high-to-low, mirroring the surface syntax's field order.
	offsets := make([]ast.Expr, len(tt.Elems))
	cum := ast.Expr(litInt(0))

	for i := len(tt.Elems) - 1; i >= 0; i-- {
		bt, ok := tt.Elems[i].(*ast.BitsType)
		if !ok {
			continue
		}

		offsets[i] = cum
		cum = &ast.BinaryOp{Op: "+", Left: cum, Right: bt.Width}
	}

	for i, name := range vd.Names {
		bt, ok := tt.Elems[i].(*ast.BitsType)
		if !ok {
			continue
		}

		slice := &ast.Slice{
			Kind:   ast.SliceLowWidth,
			Target: &ast.Var{Name: tmp},
			Index:  offsets[i],
			Width:  bt.Width,
		}

		out = append(out, &ast.VarDecl{Names: []ident.Ident{name}, Type: bt, Init: slice})
	}

	return ast.StmtAction{Kind: ast.Change, Replacement: out}
}

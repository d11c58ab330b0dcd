package transform

import "github.com/asl-lang/aslc/pkg/ast"

// NormalizeSlices rewrites every surface bitslice form (x[i], x[hi:lo],
// x[hi-:w], x[i*:w]) to the canonical x[lo +: w] form spec.md §4.7 requires
// before any later pass (bittuple lowering, monomorphization) has to reason
// about slice bounds. Grounded on pkg/corset/compiler/preprocessor.go's
// single-pass-per-concern rewriting style.
func NormalizeSlices(ctx *Context, decls []ast.Decl) []ast.Decl {
	RewriteAllExprs(decls, normalizeSliceExpr)

	EachFuncBody(decls, func(f *ast.FuncDef) { normalizeSliceLVals(f.Body) })

	return decls
}

func normalizeSliceExpr(e ast.Expr) ast.Expr {
	s, ok := e.(*ast.Slice)
	if !ok {
		return e
	}

	low, width := canonicalBounds(s.Kind, s.Index, s.Width)
	s.Kind, s.Index, s.Width = ast.SliceLowWidth, low, width

	return s
}

// canonicalBounds computes the [low, low+width) bounds a given surface
// slice kind denotes, per spec.md §4.3's four bitslice forms.
func canonicalBounds(kind ast.SliceKind, index, width ast.Expr) (lo, w ast.Expr) {
	switch kind {
	case ast.SliceSingle:
		return index, litInt(1)
	case ast.SliceLowWidth:
		return index, width
	case ast.SliceHighLow:
		// Index holds lo, Width holds hi (see pkg/parser/expr.go).
		hi := width
		lo := index
		return lo, &ast.BinaryOp{Op: "+", Left: &ast.BinaryOp{Op: "-", Left: hi, Right: lo}, Right: litInt(1)}
	case ast.SliceHighWidth:
		hi := index
		return &ast.BinaryOp{Op: "+", Left: &ast.BinaryOp{Op: "-", Left: hi, Right: width}, Right: litInt(1)}, width
	case ast.SliceElement:
		return &ast.BinaryOp{Op: "*", Left: index, Right: width}, width
	default:
		return index, width
	}
}

func normalizeSliceLVals(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Assign:
			normalizeLValSlices(n.LHS)
		case *ast.If:
			for i := range n.Arms {
				normalizeSliceLVals(n.Arms[i].Body)
			}

			normalizeSliceLVals(n.Else)
		case *ast.Case:
			for i := range n.Alts {
				normalizeSliceLVals(n.Alts[i].Body)
			}

			normalizeSliceLVals(n.Default)
		case *ast.For:
			normalizeSliceLVals(n.Body)
		case *ast.While:
			normalizeSliceLVals(n.Body)
		case *ast.Repeat:
			normalizeSliceLVals(n.Body)
		case *ast.Try:
			normalizeSliceLVals(n.Body)

			for i := range n.Arms {
				normalizeSliceLVals(n.Arms[i].Body)
			}

			normalizeSliceLVals(n.Default)
		}
	}
}

func normalizeLValSlices(l ast.LVal) {
	switch n := l.(type) {
	case *ast.LSlice:
		normalizeLValSlices(n.Target)
		low, width := canonicalBounds(n.Kind, n.Index, n.Width)
		n.Kind, n.Index, n.Width = ast.SliceLowWidth, low, width
	case *ast.LField:
		normalizeLValSlices(n.Record)
	case *ast.LIndex:
		normalizeLValSlices(n.Array)
	case *ast.LTuple:
		for _, e := range n.Elems {
			normalizeLValSlices(e)
		}
	}
}

package transform

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// Desugar collapses with-expressions and multi-field access into the
// canonical slice/record/concat operations the remaining passes understand,
// the first step of spec.md §4.7's pipeline. Grounded on
// pkg/corset/compiler/preprocessor.go's preprocessExpressionInModule: a
// single recursive per-node-kind rewriter invoked bottom-up over every
// function body and global initializer.
func Desugar(ctx *Context, decls []ast.Decl) []ast.Decl {
	RewriteAllExprs(decls, func(e ast.Expr) ast.Expr {
		switch n := e.(type) {
		case *ast.With:
			return desugarWith(ctx, n)
		case *ast.MultiField:
			return desugarMultiField(n)
		default:
			return e
		}
	})

	return decls
}

// desugarWith lowers `base with { c1, c2, ... }` into a let-bound chain of
// record reconstructions and bit-concatenations, applying each change in
// source order against the previous step's result.
func desugarWith(ctx *Context, w *ast.With) ast.Expr {
	cur := w.Target

	for _, ch := range w.Changes {
		name := ctx.Supply.fresh()
		base := &ast.Var{Name: ident.WithTag("__with", name)}

		var next ast.Expr

		switch ch.Kind {
		case ast.ChangeField:
			next = rebuildRecordWithField(ctx, base, ch.Field, ch.Value)
		case ast.ChangeSlice:
			next = rebuildBitsWithSlice(base, ch.Low, ch.Width, ch.Value)
		}

		cur = &ast.Let{Name: base.Name, Bound: cur, Body: next}
	}

	return cur
}

// rebuildRecordWithField constructs a RecordLit reading every field of base
// except the one being changed, in the declared field order (spec.md §3's
// record-value invariant requires fields to stay in declaration order).
func rebuildRecordWithField(ctx *Context, base ast.Expr, changed ident.Ident, value ast.Expr) ast.Expr {
	recName := namedTypeName(base)

	rd, ok := ctx.Records[recName]
	if !ok {
		// Record type not resolvable statically (e.g. a parameterised type
		// instantiated by a type-level expression we can't read back here);
		// fall back to a single-field set against the base, which a later
		// pass's type information will still check for shape.
		return &ast.RecordLit{Fields: []ident.Ident{changed}, Values: []ast.Expr{value}}
	}

	lit := &ast.RecordLit{}

	for _, f := range rd.Fields {
		lit.Fields = append(lit.Fields, f.Name)

		if f.Name.Name == changed.Name {
			lit.Values = append(lit.Values, value)
		} else {
			lit.Values = append(lit.Values, &ast.Field{Record: base, Name: f.Name})
		}
	}

	return lit
}

// rebuildBitsWithSlice constructs base with bits [low, low+width) replaced
// by value, as a concatenation of the untouched high bits, the new value,
// and the untouched low bits. A nil low/width slice (SliceSingle's implicit
// width 1, supplied by bitslice normalization before Desugar would ever see
// it) never reaches here since With always carries explicit bounds.
func rebuildBitsWithSlice(base ast.Expr, low, width, value ast.Expr) ast.Expr {
	topBit := &ast.UnaryOp{Op: "topbit", Arg: base}
	highPart := &ast.Slice{
		Kind:   ast.SliceHighWidth,
		Target: base,
		Index:  topBit,
		Width:  &ast.BinaryOp{Op: "+", Left: &ast.BinaryOp{Op: "-", Left: topBit, Right: &ast.BinaryOp{Op: "+", Left: low, Right: width}}, Right: litInt(1)},
	}
	lowPart := &ast.Slice{
		Kind:   ast.SliceLowWidth,
		Target: base,
		Index:  litInt(0),
		Width:  low,
	}

	return &ast.Concat{Elems: []ast.ConcatElem{
		{Value: highPart},
		{Value: value, Width: width},
		{Value: lowPart, Width: low},
	}}
}

// desugarMultiField rewrites `e.[f1,f2,...]` into the concatenation of the
// individual field accesses, high field first per spec.md §4.3's
// multi-field semantics.
func desugarMultiField(n *ast.MultiField) ast.Expr {
	c := &ast.Concat{}

	for _, name := range n.Names {
		c.Elems = append(c.Elems, ast.ConcatElem{Value: &ast.Field{Record: n.Record, Name: name}})
	}

	return c
}

func namedTypeName(e ast.Expr) string {
	nt, ok := e.Type().(*ast.NamedType)
	if !ok || nt == nil {
		return ""
	}

	return nt.Name.Name
}

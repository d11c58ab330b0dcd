package transform

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// WrapGlobals rewrites every reference to a global variable into a field
// access through a single named pointer, so the emitted C keeps all mutable
// global state behind one thread-local indirection (spec.md §4.7's final,
// optional bullet; enabled by asl2c's --thread-local-pointer flag). Grounded
// on the same field-access shape Desugar already builds for with-
// expressions; this pass is the last one in the pipeline, so every global
// read/write left in the tree is already in its final statement-level form.
func WrapGlobals(decls []ast.Decl, ptrName string) []ast.Decl {
	globals := map[string]bool{}

	for _, d := range decls {
		if g, ok := d.(*ast.VarDeclGlobal); ok {
			globals[g.Name.Name] = true
		}
	}

	RewriteAllExprs(decls, func(e ast.Expr) ast.Expr {
		v, ok := e.(*ast.Var)
		if !ok || !globals[v.Name.Name] {
			return e
		}

		f := &ast.Field{Record: &ast.Var{Name: ptrIdent(ptrName)}, Name: v.Name}
		f.SetType(v.Type())

		return f
	})

	for _, d := range decls {
		f, ok := d.(*ast.FuncDef)
		if !ok {
			continue
		}

		wrapGlobalLVals(f.Body, ptrName, globals)
	}

	return decls
}

func wrapGlobalLVals(stmts []ast.Stmt, ptrName string, globals map[string]bool) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Assign:
			n.LHS = wrapLVal(n.LHS, ptrName, globals)
		case *ast.If:
			for i := range n.Arms {
				wrapGlobalLVals(n.Arms[i].Body, ptrName, globals)
			}

			wrapGlobalLVals(n.Else, ptrName, globals)
		case *ast.Case:
			for i := range n.Alts {
				wrapGlobalLVals(n.Alts[i].Body, ptrName, globals)
			}

			wrapGlobalLVals(n.Default, ptrName, globals)
		case *ast.For:
			wrapGlobalLVals(n.Body, ptrName, globals)
		case *ast.While:
			wrapGlobalLVals(n.Body, ptrName, globals)
		case *ast.Repeat:
			wrapGlobalLVals(n.Body, ptrName, globals)
		case *ast.Try:
			wrapGlobalLVals(n.Body, ptrName, globals)

			for i := range n.Arms {
				wrapGlobalLVals(n.Arms[i].Body, ptrName, globals)
			}

			wrapGlobalLVals(n.Default, ptrName, globals)
		}
	}
}

func wrapLVal(l ast.LVal, ptrName string, globals map[string]bool) ast.LVal {
	switch n := l.(type) {
	case *ast.LField:
		n.Record = wrapLVal(n.Record, ptrName, globals)
		return n
	case *ast.LIndex:
		n.Array = wrapLVal(n.Array, ptrName, globals)
		return n
	case *ast.LSlice:
		n.Target = wrapLVal(n.Target, ptrName, globals)
		return n
	}

	lv, ok := l.(*ast.LVar)
	if !ok || !globals[lv.Name.Name] {
		return l
	}

	f := &ast.LField{Record: &ast.LVar{Name: ptrIdent(ptrName)}, Name: lv.Name}
	f.SetType(lv.Type())

	return f
}

func ptrIdent(name string) ident.Ident { return ident.New(name) }

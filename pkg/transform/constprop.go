package transform

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/value"
)

// PropagateConstants inlines every global `const` reference with its
// defining expression and then folds every constant-foldable subexpression
// to a literal via pkg/value.Fold, spec.md §4.7's constant-propagation
// bullet. Grounded directly on pkg/corset/ast/expression.go's
// AsConstant/AsConstantOfExpressions fold-if-possible pattern, which
// pkg/value.Fold itself already generalizes (see DESIGN.md's C2 entry);
// this pass is the thin driver applying that fold everywhere a transform
// pass is allowed to rewrite.
func PropagateConstants(ctx *Context, decls []ast.Decl) []ast.Decl {
	consts := map[string]ast.Expr{}

	for _, d := range decls {
		if cd, ok := d.(*ast.ConstDecl); ok {
			consts[cd.Name.Name] = cd.Value
		}
	}

	RewriteAllExprs(decls, func(e ast.Expr) ast.Expr {
		if v, ok := e.(*ast.Var); ok {
			if def, ok := consts[v.Name.Name]; ok {
				e = def
			}
		}

		if n, ok := value.Fold(e); ok {
			lit := &ast.LitInt{Value: n}
			lit.SetType(e.Type())

			return lit
		}

		return e
	})

	return decls
}

// Package ast implements ASL's typed abstract syntax tree: types,
// expressions, lvalues, patterns, statements and declarations, together with
// a generic visitor framework used by the typechecker (pkg/typecheck) and
// every pass of the transform pipeline (pkg/transform) to rewrite the tree
// without hand-rolling traversal in every pass, per spec.md §4.3/§9.
package ast

import "github.com/asl-lang/aslc/pkg/ident"

// Node is implemented by every AST alternative (types, expressions,
// lvalues, patterns, statements, declarations).  Every node that can fail
// typechecking carries a Location (spec.md §3).
type Node interface {
	Loc() ident.Location
}

// base is embedded by every concrete node to supply Loc() without repeating
// the field and accessor on each variant.
type base struct {
	Location ident.Location
}

// Loc implements Node.
func (b base) Loc() ident.Location { return b.Location }

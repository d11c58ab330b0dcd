package ast

import "github.com/asl-lang/aslc/pkg/ident"

// LVal is the sum over assignable positions; its read-side variants mirror
// Expr's shape, plus two forms only meaningful once resolved: ReadWrite (a
// getter/setter pair) and Write (a setter applied during assignment).
type LVal interface {
	Node
	lvalNode()
	Type() Type
	SetType(Type)
}

// LVar assigns to a plain variable.
type LVar struct {
	base
	typed
	Name     ident.Ident
	Resolved ident.Ident
}

func (*LVar) lvalNode() {}

// LField assigns to a single record field.
type LField struct {
	base
	typed
	Record LVal
	Name   ident.Ident
}

func (*LField) lvalNode() {}

// LIndex assigns to an array element.
type LIndex struct {
	base
	typed
	Array LVal
	Key   Expr
}

func (*LIndex) lvalNode() {}

// LSlice assigns to a bitslice; normalized to low+width form by the
// bitslice-normalization pass, same as the expression-side Slice.
type LSlice struct {
	base
	typed
	Kind   SliceKind
	Target LVal
	Index  Expr
	Width  Expr
}

func (*LSlice) lvalNode() {}

// LTuple assigns to a tuple of lvalues, e.g. `(a, b) = f()`.  Eliminated by
// the tuple-elimination transform pass.
type LTuple struct {
	base
	typed
	Elems []LVal
}

func (*LTuple) lvalNode() {}

// ReadWrite is a resolved access that requires both a getter and a setter:
// produced by the typechecker when `v` names neither a plain variable on
// the read side, and `v` must have a matching setter on the write side
// (spec.md §4.6 getter/setter resolution).
type ReadWrite struct {
	base
	typed
	Getter ident.Ident
	Setter ident.Ident
	Args   []Expr
}

func (*ReadWrite) lvalNode() {}

// Write applies a resolved setter function during assignment, carrying the
// value being assigned as the setter's trailing "right-hand-side" parameter
// once the getter/setter-inlining pass runs.
type Write struct {
	base
	typed
	Setter ident.Ident
	Args   []Expr
}

func (*Write) lvalNode() {}

package ast

import "github.com/asl-lang/aslc/pkg/ident"

// Type is the sum over ASL's type grammar (spec.md §3): integer (optionally
// refined), bits(N) (optionally with register fields), a named constructor,
// typeof(expr), an indexed array, a tuple, or a forward declaration awaiting
// resolution.
type Type interface {
	Node
	typeNode()
}

// ConstraintRange is either a single integer expression or a closed [lo,hi]
// interval of integer expressions, used to refine an integer type.
type ConstraintRange struct {
	Single   Expr // non-nil for a single-value constraint
	Lo, Hi   Expr // both non-nil for an interval constraint
}

// IntegerType is `integer` optionally refined by a union of constraint
// ranges.
type IntegerType struct {
	base
	Constraints []ConstraintRange // nil/empty means unconstrained
}

func (*IntegerType) typeNode() {}

// RegisterField names a set of slices of a bits(N) value under a single
// field identifier, enabling `x.F` access syntax.
type RegisterField struct {
	Name   ident.Ident
	Slices []Expr // each a bitslice expression over the enclosing bits value
}

// BitsType is `bits(N)` with an optional list of register-field
// descriptors.
type BitsType struct {
	base
	Width  Expr
	Fields []RegisterField
}

func (*BitsType) typeNode() {}

// NamedType is a named type constructor `T(e1,...,ek)` with type-level
// expression arguments (e.g. a parameterised record type).
type NamedType struct {
	base
	Name ident.Ident
	Args []Expr
}

func (*NamedType) typeNode() {}

// TypeOfType is `typeof(expr)`.
type TypeOfType struct {
	base
	Expr Expr
}

func (*TypeOfType) typeNode() {}

// ArrayType is an array indexed either by an enumeration type or by an
// integer size, carrying an element type.
type ArrayType struct {
	base
	IndexEnum ident.Ident // non-zero Name when indexed by an enumeration
	IndexSize Expr        // non-nil when indexed by an integer size
	Elem      Type
}

func (*ArrayType) typeNode() {}

// TupleType is the type of a fixed-arity, heterogeneously-typed tuple.
type TupleType struct {
	base
	Elems []Type
}

func (*TupleType) typeNode() {}

// ForwardType stands in for a named type until its declaration is resolved
// by the typechecker; it is never observed after pkg/typecheck completes.
type ForwardType struct {
	base
	Name ident.Ident
}

func (*ForwardType) typeNode() {}

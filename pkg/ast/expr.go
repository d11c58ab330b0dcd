package ast

import (
	"math/big"

	"github.com/asl-lang/aslc/pkg/ident"
)

// Expr is the sum over ASL's expression grammar (spec.md §3/§4.3).
type Expr interface {
	Node
	exprNode()
	// Type returns the type this expression was annotated with by the
	// typechecker.  It is nil until pkg/typecheck has run.
	Type() Type
	// SetType records the inferred type; called exactly once, by
	// pkg/typecheck.
	SetType(Type)
}

// typed is embedded by every expression variant to carry its inferred type
// without repeating accessor boilerplate.
type typed struct {
	inferred Type
}

func (t *typed) Type() Type     { return t.inferred }
func (t *typed) SetType(ty Type) { t.inferred = ty }

// LitInt is an integer literal.
type LitInt struct {
	base
	typed
	Value *big.Int
}

func (*LitInt) exprNode() {}

// LitBits is a bitvector literal ('1010', <N>'b..., <N>'x...).
type LitBits struct {
	base
	typed
	Value *big.Int
	Width uint
}

func (*LitBits) exprNode() {}

// LitMask is a mask literal ('10xx').
type LitMask struct {
	base
	typed
	Bits  *big.Int
	Care  *big.Int
	Width uint
}

func (*LitMask) exprNode() {}

// LitString is a string literal.
type LitString struct {
	base
	typed
	Value string
}

func (*LitString) exprNode() {}

// LitBool is a boolean literal (TRUE/FALSE), distinct from an enumeration so
// the typechecker can treat it as the builtin boolean type directly.
type LitBool struct {
	base
	typed
	Value bool
}

func (*LitBool) exprNode() {}

// Var is a reference to a variable, constant or getter by name.  Before
// typechecking, Resolved is the zero Ident; after, it carries the tag of the
// specific binding (a local/global variable, or a resolved getter call)
// identified by pkg/typecheck.
type Var struct {
	base
	typed
	Name     ident.Ident
	Resolved ident.Ident
}

func (*Var) exprNode() {}

// Field is single-field access `e.f`.
type Field struct {
	base
	typed
	Record Expr
	Name   ident.Ident
}

func (*Field) exprNode() {}

// MultiField is multi-field selection `e.[f1,f2,...]`, which concatenates
// the named fields' bit representations high-to-low.
type MultiField struct {
	base
	typed
	Record Expr
	Names  []ident.Ident
}

func (*MultiField) exprNode() {}

// Index is array subscript `e[i]`.
type Index struct {
	base
	typed
	Array Expr
	Key   Expr
}

func (*Index) exprNode() {}

// SliceKind identifies which of the four surface bitslice forms a Slice
// node was parsed from.  The bitslice-normalization transform rewrites every
// kind to SliceLowWidth before monomorphization runs.
type SliceKind int

const (
	// SliceSingle is x[i]: a single-bit slice.
	SliceSingle SliceKind = iota
	// SliceHighLow is x[hi:lo].
	SliceHighLow
	// SliceLowWidth is x[lo +: width], the canonical normalized form.
	SliceLowWidth
	// SliceHighWidth is x[hi -: width].
	SliceHighWidth
	// SliceElement is x[i *: w], an element slice.
	SliceElement
)

// Slice is a bitslice expression in one of the four surface forms, or the
// single canonical form once bitslice-normalization has run.
type Slice struct {
	base
	typed
	Kind    SliceKind
	Target  Expr
	Index   Expr // single index, or low/high bound depending on Kind
	Width   Expr // nil for SliceSingle
}

func (*Slice) exprNode() {}

// RecordLit constructs a record value; the field set must exactly match the
// declared type's fields, in declaration order (spec.md §3 invariant),
// checked by pkg/typecheck.
type RecordLit struct {
	base
	typed
	Type   Type
	Fields []ident.Ident
	Values []Expr
}

func (*RecordLit) exprNode() {}

// ChangeKind distinguishes a with-expression's two change forms.
type ChangeKind int

const (
	// ChangeField updates a named field.
	ChangeField ChangeKind = iota
	// ChangeSlice updates a bitslice of the base value.
	ChangeSlice
)

// Change is one element of a with-expression's change list.
type Change struct {
	Kind  ChangeKind
	Field ident.Ident // valid when Kind == ChangeField
	Low   Expr        // valid when Kind == ChangeSlice
	Width Expr        // valid when Kind == ChangeSlice
	Value Expr
}

// With is a functional-update expression: `base with { changes... }`.  The
// desugaring pass lowers this into nested field/slice-set operations.
type With struct {
	base
	typed
	Target  Expr
	Changes []Change
}

func (*With) exprNode() {}

// CondArm is one `elsif` arm of a conditional expression.
type CondArm struct {
	Cond Expr
	Then Expr
}

// Cond is an if-elseif-else expression chain.
type Cond struct {
	base
	typed
	Arms []CondArm
	Else Expr
}

func (*Cond) exprNode() {}

// Let is a let-binding expression `let x = e1 in e2`.
type Let struct {
	base
	typed
	Name  ident.Ident
	Bound Expr
	Body  Expr
}

func (*Let) exprNode() {}

// AssertIn is `assert e1 in e2`, an assertion threaded through an
// expression's value.
type AssertIn struct {
	base
	typed
	Assertion Expr
	Body      Expr
}

func (*AssertIn) exprNode() {}

// NamedArg pairs an optional formal-parameter name with an actual
// expression at a call site (spec.md §4.4): `(Option<Ident>, Expr)`.
type NamedArg struct {
	Name ident.Ident // zero value (empty Name) means positional
	Expr Expr
}

// IsNamed reports whether this argument was written with an explicit
// `name = expr` form.
func (a NamedArg) IsNamed() bool { return a.Name.Name != "" }

// ThrowsTag mirrors the exception marker on a function definition or call
// site (spec.md glossary: "Throws tag").
type ThrowsTag int

const (
	// NoThrow means the callee is marked `F` and never throws.
	NoThrow ThrowsTag = iota
	// MayThrow means the callee is marked `F?`.
	MayThrow
	// AlwaysThrow means the callee is marked `F!`.
	AlwaysThrow
)

// UntypedCall is a call as produced directly by the parser, before overload
// resolution: just a callee name and an argument list.  pkg/typecheck
// rewrites every UntypedCall into a TypedCall.
type UntypedCall struct {
	base
	typed
	Callee ident.Ident
	Args   []NamedArg
	Throws ThrowsTag
}

func (*UntypedCall) exprNode() {}

// TypedCall is a call resolved to a specific overload: a concrete callee
// identifier (with disambiguation tag), an ordered list of synthesized
// parameter expressions (width/size parameters bound during resolution,
// spec.md §4.6 step 4), the ordered argument expressions, and the resolved
// throws tag.
type TypedCall struct {
	base
	typed
	Callee ident.Ident
	Params []Expr
	Args   []Expr
	Throws ThrowsTag
}

func (*TypedCall) exprNode() {}

// TupleExpr is a tuple literal.
type TupleExpr struct {
	base
	typed
	Elems []Expr
}

func (*TupleExpr) exprNode() {}

// ConcatElem pairs a concatenation operand with its bitwidth (filled in by
// the typechecker, since widths may be symbolic).
type ConcatElem struct {
	Value Expr
	Width Expr
}

// Concat is `a : b : c` style bit concatenation with a per-element width
// recorded for the emitter.
type Concat struct {
	base
	typed
	Elems []ConcatElem
}

func (*Concat) exprNode() {}

// UnaryOp is unary operator application before resolution (NOT, unary minus,
// etc.); the typechecker rewrites it into a TypedCall against the resolved
// operator candidate.
type UnaryOp struct {
	base
	typed
	Op  string
	Arg Expr
}

func (*UnaryOp) exprNode() {}

// BinaryOp is binary operator application before resolution; ditto.
type BinaryOp struct {
	base
	typed
	Op          string
	Left, Right Expr
}

func (*BinaryOp) exprNode() {}

// AsConstraint is `e as {c1,...,cn}`, a user-asserted integer-constraint
// narrowing that the typechecker verifies (inserting a runtime check when it
// cannot prove membership statically).
type AsConstraint struct {
	base
	typed
	Target      Expr
	Constraints []ConstraintRange
}

func (*AsConstraint) exprNode() {}

// AsType is `e as T`, a user-asserted type narrowing.
type AsType struct {
	base
	typed
	Target   Expr
	AsT      Type
}

func (*AsType) exprNode() {}

// ArrayInit is an array-initializer expression `[e1, e2, ...]` or
// `[e; n]`-style repeated initializer (Repeat non-nil for the latter).
type ArrayInit struct {
	base
	typed
	Elems  []Expr
	Repeat Expr // non-nil: Elems has exactly one entry, repeated Repeat times
	Count  Expr // non-nil alongside Repeat
}

func (*ArrayInit) exprNode() {}

// UnknownOfType is ASL's `UNKNOWN: T`, an arbitrary but fixed value of type
// T chosen by the runtime/emitter.
type UnknownOfType struct {
	base
	typed
	T Type
}

func (*UnknownOfType) exprNode() {}

// PatternIn is `e IN p`, testing whether the value of e matches pattern p.
type PatternIn struct {
	base
	typed
	Target  Expr
	Pattern Pattern
}

func (*PatternIn) exprNode() {}

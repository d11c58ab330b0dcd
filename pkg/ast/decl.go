package ast

import "github.com/asl-lang/aslc/pkg/ident"

// Decl is the sum over ASL's top-level declaration grammar (spec.md §4.3).
type Decl interface {
	Node
	declNode()
}

// BuiltinTypeDecl declares an opaque builtin type known to the runtime
// (e.g. the boolean type), with no ASL-level definition.
type BuiltinTypeDecl struct {
	base
	Name ident.Ident
}

func (*BuiltinTypeDecl) declNode() {}

// ForwardTypeDecl announces a type name before its full definition is
// parsed, enabling mutually-recursive record types.
type ForwardTypeDecl struct {
	base
	Name ident.Ident
}

func (*ForwardTypeDecl) declNode() {}

// RecordField is one field of a record or exception-record declaration.
type RecordField struct {
	Name ident.Ident
	Type Type
}

// RecordDecl declares a (possibly parameterised) record type.
type RecordDecl struct {
	base
	Name       ident.Ident
	Parameters []ident.Ident
	Fields     []RecordField
}

func (*RecordDecl) declNode() {}

// ExceptionDecl declares an exception record, which the C emitter collects
// into a single tagged union (spec.md §4.9 exception lowering).
type ExceptionDecl struct {
	base
	Name   ident.Ident
	Fields []RecordField
}

func (*ExceptionDecl) declNode() {}

// TypeAbbrevDecl declares a type abbreviation parameterised by identifiers:
// `type T(p1,...,pk) = underlying`.
type TypeAbbrevDecl struct {
	base
	Name       ident.Ident
	Parameters []ident.Ident
	Underlying Type
}

func (*TypeAbbrevDecl) declNode() {}

// EnumDecl declares an enumeration type.  Typechecking an EnumDecl also adds
// a builtin equality/inequality operator pair for the new type
// (spec.md §4.6).
type EnumDecl struct {
	base
	Name    ident.Ident
	Members []ident.Ident
}

func (*EnumDecl) declNode() {}

// Param is one formal parameter of a function, getter or setter, optionally
// carrying a default-argument expression that may reference earlier formals
// (spec.md §4.4).
type Param struct {
	Name    ident.Ident
	Type    Type
	Default Expr // nil if this parameter has no default
}

// FuncKind distinguishes ordinary functions from getters and setters, which
// share the same underlying declaration shape but live in different
// resolution namespaces (spec.md §4.6).
type FuncKind int

const (
	// FuncOrdinary is a plain `func`.
	FuncOrdinary FuncKind = iota
	// FuncGetter is `getter F => T` or the array form `getter F[args] => T`.
	FuncGetter
	// FuncSetter is the corresponding setter form, taking an extra
	// right-hand-side parameter.
	FuncSetter
)

// BuiltinFuncDecl declares a function with no ASL-level body, implemented
// directly by the runtime/emitter (e.g. Zeros, primitive arithmetic).
type BuiltinFuncDecl struct {
	base
	Name       ident.Ident
	Kind       FuncKind
	WidthArgs  []ident.Ident // symbolic width/size parameters
	Params     []Param
	ReturnType Type // nil for a procedure
	Throws     ThrowsTag
}

func (*BuiltinFuncDecl) declNode() {}

// FuncTypeDecl is a function prototype with no body (a forward
// declaration).
type FuncTypeDecl struct {
	base
	Name       ident.Ident
	Kind       FuncKind
	WidthArgs  []ident.Ident
	Params     []Param
	ReturnType Type
	Throws     ThrowsTag
}

func (*FuncTypeDecl) declNode() {}

// FuncDef is a full function/getter/setter definition: prototype plus body.
// After overload resolution, Name.Tag distinguishes this definition from its
// sibling overloads.
type FuncDef struct {
	base
	Name       ident.Ident
	Kind       FuncKind
	WidthArgs  []ident.Ident
	Params     []Param
	ReturnType Type
	Throws     ThrowsTag
	Body       []Stmt
}

func (*FuncDef) declNode() {}

// OperatorDecl registers an operator (unary or binary) as resolving to a
// list of candidate function identifiers, populated incrementally by
// Decl_Operator1/Decl_Operator2 forms (spec.md §4.6 operator resolution).
type OperatorDecl struct {
	base
	Operator   string
	Arity      int // 1 for unary, 2 for binary
	Candidates []ident.Ident
}

func (*OperatorDecl) declNode() {}

// ConstDecl declares a global constant with a known value expression.
type ConstDecl struct {
	base
	Name  ident.Ident
	Type  Type // nil when inferred from Value
	Value Expr
}

func (*ConstDecl) declNode() {}

// ConfigConstDecl declares a constant whose value is supplied by the
// session configuration (the `--configuration <json>` CLI flag,
// spec.md §6) rather than fixed at compile time, with Default as its default.
type ConfigConstDecl struct {
	base
	Name    ident.Ident
	Type    Type
	Default Expr // nil if no default is given
}

func (*ConfigConstDecl) declNode() {}

// VarDeclGlobal declares a global (mutable) variable.
type VarDeclGlobal struct {
	base
	Name ident.Ident
	Type Type
	Init Expr // nil if uninitialized
}

func (*VarDeclGlobal) declNode() {}

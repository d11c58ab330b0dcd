// Package typecheck implements ASL's bidirectional typechecker (spec.md
// §4.6): environment management, function/operator overload resolution, and
// the tc_expr/check_expr/tc_stmt/tc_declaration family. It is grounded on
// the teacher's pkg/corset/compiler/{environment,scope,resolver,typing}.go
// (GlobalEnvironment, Module/Register lookup, scope stacking), generalized
// from column/register namespaces to ASL's variable/function/type/operator
// namespaces.
package typecheck

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// VarInfo describes one bound name in a lexical scope or the global
// environment.
type VarInfo struct {
	Name       ident.Ident
	Loc        ident.Location
	Type       ast.Type
	IsLocal    bool
	IsConstant bool
}

// Signature is the common shape shared by BuiltinFuncDecl/FuncTypeDecl/
// FuncDef once registered for overload resolution: a callable candidate
// keyed by base name, disambiguated by Tag once resolved.
type Signature struct {
	Tag        ident.Ident
	Kind       ast.FuncKind
	WidthArgs  []ident.Ident
	Params     []ast.Param
	ReturnType ast.Type
	Throws     ast.ThrowsTag
	Body       []ast.Stmt // nil for builtins and prototypes
}

// OperatorKey identifies a unary or binary operator candidate list.
type OperatorKey struct {
	Op    string
	Arity int
}

// GlobalEnv is the session-wide symbol table: types, function/setter/
// operator candidate lists, globals and known-constant expressions. It is
// only ever appended to, never mutated in place, per spec.md's data-model
// lifecycle note.
type GlobalEnv struct {
	Types     map[string]ast.Decl
	Funcs     map[string][]*Signature
	Setters   map[string][]*Signature
	Operators map[OperatorKey][]*Signature
	Globals   map[string]*VarInfo
	Consts    map[string]ast.Expr
}

// NewGlobalEnv builds an empty global environment. No builtin type or
// intrinsic is pre-registered here; every entry comes from RegisterDecls.
func NewGlobalEnv() *GlobalEnv {
	return &GlobalEnv{
		Types:     map[string]ast.Decl{},
		Funcs:     map[string][]*Signature{},
		Setters:   map[string][]*Signature{},
		Operators: map[OperatorKey][]*Signature{},
		Globals:   map[string]*VarInfo{},
		Consts:    map[string]ast.Expr{},
	}
}

// Scope is one lexical frame of local variable bindings.
type Scope struct {
	vars   map[string]*VarInfo
	parent *Scope
}

func newScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]*VarInfo{}, parent: parent}
}

func (s *Scope) declare(v *VarInfo) {
	s.vars[v.Name.Name] = v
}

func (s *Scope) lookup(name string) (*VarInfo, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Env is the full typechecking context for one function body or top-level
// expression: the global environment, the current scope stack, and the
// conjunction of boolean assumptions accumulated by enclosing `if`/`while`
// conditions, conditional-expression arms and assert-in expressions for SMT
// entailment (spec.md §4.6 "Environment").
type Env struct {
	Global      *GlobalEnv
	scope       *Scope
	Assumptions []ast.Expr
}

// NewEnv creates a typechecking context rooted at the given global
// environment, with a single empty top scope.
func NewEnv(g *GlobalEnv) *Env {
	return &Env{Global: g, scope: newScope(nil)}
}

// Push opens a new nested scope.
func (e *Env) Push() { e.scope = newScope(e.scope) }

// Pop closes the innermost scope.
func (e *Env) Pop() {
	if e.scope.parent != nil {
		e.scope = e.scope.parent
	}
}

// Declare binds a local variable in the current scope.
func (e *Env) Declare(v *VarInfo) { e.scope.declare(v) }

// Lookup resolves name against the local scope stack, then globals.
func (e *Env) Lookup(name string) (*VarInfo, bool) {
	if v, ok := e.scope.lookup(name); ok {
		return v, true
	}

	if v, ok := e.Global.Globals[name]; ok {
		return v, true
	}

	return nil, false
}

// Assume pushes a boolean fact onto the assumption set for the duration of
// a nested typecheck (e.g. an if-arm's condition), returning a function that
// restores the previous set.
func (e *Env) Assume(cond ast.Expr) func() {
	prev := e.Assumptions
	e.Assumptions = append(append([]ast.Expr{}, prev...), cond)

	return func() { e.Assumptions = prev }
}

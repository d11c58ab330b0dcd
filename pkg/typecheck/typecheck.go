package typecheck

import (
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

var boolType ast.Type = &ast.NamedType{Name: ident.New("boolean")}
var unconstrainedInt ast.Type = &ast.IntegerType{}

func singleton(v *big.Int) ast.Type {
	return &ast.IntegerType{Constraints: []ast.ConstraintRange{{Single: &ast.LitInt{Value: v}}}}
}

// RegisterDecls populates g from a parsed program's top-level declarations:
// types, function/getter/setter candidate lists, operator candidate lists,
// globals, and constants. It must run before any TcExpr/TcStmt/TcDecl call,
// mirroring the teacher's two-pass "collect signatures, then check bodies"
// GlobalEnvironment construction (pkg/corset/compiler/environment.go).
func RegisterDecls(g *GlobalEnv, decls []ast.Decl) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.BuiltinTypeDecl:
			g.Types[n.Name.Name] = n
		case *ast.ForwardTypeDecl:
			g.Types[n.Name.Name] = n
		case *ast.RecordDecl:
			g.Types[n.Name.Name] = n
		case *ast.ExceptionDecl:
			g.Types[n.Name.Name] = n
		case *ast.TypeAbbrevDecl:
			g.Types[n.Name.Name] = n
		case *ast.EnumDecl:
			g.Types[n.Name.Name] = n
			registerEnumOperators(g, n)
		case *ast.BuiltinFuncDecl:
			registerSig(g, n.Name, n.Kind, n.WidthArgs, n.Params, n.ReturnType, n.Throws, nil)
		case *ast.FuncTypeDecl:
			registerSig(g, n.Name, n.Kind, n.WidthArgs, n.Params, n.ReturnType, n.Throws, nil)
		case *ast.FuncDef:
			registerSig(g, n.Name, n.Kind, n.WidthArgs, n.Params, n.ReturnType, n.Throws, n.Body)
		case *ast.OperatorDecl:
			key := OperatorKey{Op: n.Operator, Arity: n.Arity}
			for _, tag := range n.Candidates {
				for _, sig := range g.Funcs[tag.Name] {
					g.Operators[key] = append(g.Operators[key], sig)
				}
			}
		case *ast.ConstDecl:
			g.Consts[n.Name.Name] = n.Value
			g.Globals[n.Name.Name] = &VarInfo{Name: n.Name, Loc: n.Loc(), Type: n.Type, IsConstant: true}
		case *ast.ConfigConstDecl:
			g.Globals[n.Name.Name] = &VarInfo{Name: n.Name, Loc: n.Loc(), Type: n.Type, IsConstant: true}
		case *ast.VarDeclGlobal:
			g.Globals[n.Name.Name] = &VarInfo{Name: n.Name, Loc: n.Loc(), Type: n.Type}
		}
	}
}

func registerSig(g *GlobalEnv, name ident.Ident, kind ast.FuncKind, widthArgs []ident.Ident, params []ast.Param, ret ast.Type, throws ast.ThrowsTag, body []ast.Stmt) {
	sig := &Signature{Tag: name, Kind: kind, WidthArgs: widthArgs, Params: params, ReturnType: ret, Throws: throws, Body: body}

	switch kind {
	case ast.FuncSetter:
		g.Setters[name.Name] = append(g.Setters[name.Name], sig)
	default:
		g.Funcs[name.Name] = append(g.Funcs[name.Name], sig)
	}
}

// registerEnumOperators adds the builtin equality/inequality operator pair
// every enumeration type gains (spec.md §4.6 "typechecking an EnumDecl").
func registerEnumOperators(g *GlobalEnv, e *ast.EnumDecl) {
	et := &ast.NamedType{Name: e.Name}
	mk := func(op string) {
		name := ident.New("__" + e.Name.Name + "_" + op)
		sig := &Signature{
			Tag:  name,
			Kind: ast.FuncOrdinary,
			Params: []ast.Param{
				{Name: ident.New("a"), Type: et},
				{Name: ident.New("b"), Type: et},
			},
			ReturnType: boolType,
		}
		g.Funcs[name.Name] = []*Signature{sig}
		g.Operators[OperatorKey{Op: op, Arity: 2}] = append(g.Operators[OperatorKey{Op: op, Arity: 2}], sig)
	}

	mk("==")
	mk("!=")
}

// TcExpr infers a type for e, rewriting UnaryOp/BinaryOp/UntypedCall nodes
// into resolved TypedCall nodes along the way (spec.md §4.6 tc_expr).
func TcExpr(c *Checker, e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.LitInt:
		n.SetType(singleton(n.Value))
		return n
	case *ast.LitBits:
		n.SetType(&ast.BitsType{Width: &ast.LitInt{Value: big.NewInt(int64(n.Width))}})
		return n
	case *ast.LitMask:
		n.SetType(&ast.BitsType{Width: &ast.LitInt{Value: big.NewInt(int64(n.Width))}})
		return n
	case *ast.LitString:
		n.SetType(&ast.NamedType{Name: ident.New("string")})
		return n
	case *ast.LitBool:
		n.SetType(boolType)
		return n
	case *ast.Var:
		return tcVar(c, n)
	case *ast.Field:
		return tcField(c, n)
	case *ast.MultiField:
		n.Record = TcExpr(c, n.Record)
		n.SetType(&ast.BitsType{})
		return n
	case *ast.Index:
		return tcIndex(c, n)
	case *ast.Slice:
		return tcSlice(c, n)
	case *ast.RecordLit:
		for i, v := range n.Values {
			n.Values[i] = TcExpr(c, v)
		}
		n.SetType(n.Type)
		return n
	case *ast.With:
		n.Target = TcExpr(c, n.Target)
		for i := range n.Changes {
			n.Changes[i].Value = TcExpr(c, n.Changes[i].Value)
		}
		n.SetType(n.Target.Type())
		return n
	case *ast.Cond:
		return tcCond(c, n)
	case *ast.Let:
		n.Bound = TcExpr(c, n.Bound)
		c.Env.Push()
		c.Env.Declare(&VarInfo{Name: n.Name, Loc: n.Loc(), Type: n.Bound.Type(), IsLocal: true})
		n.Body = TcExpr(c, n.Body)
		c.Env.Pop()
		n.SetType(n.Body.Type())
		return n
	case *ast.AssertIn:
		n.Assertion = CheckExpr(c, boolType, n.Assertion)
		restore := c.Env.Assume(n.Assertion)
		n.Body = TcExpr(c, n.Body)
		restore()
		n.SetType(n.Body.Type())
		return n
	case *ast.UntypedCall:
		return tcUntypedCall(c, n)
	case *ast.TupleExpr:
		elemTypes := make([]ast.Type, len(n.Elems))
		for i := range n.Elems {
			n.Elems[i] = TcExpr(c, n.Elems[i])
			elemTypes[i] = n.Elems[i].Type()
		}
		n.SetType(&ast.TupleType{Elems: elemTypes})
		return n
	case *ast.Concat:
		total := &ast.LitInt{Value: big.NewInt(0)}
		for i := range n.Elems {
			n.Elems[i].Value = TcExpr(c, n.Elems[i].Value)
		}
		n.SetType(&ast.BitsType{Width: total})
		return n
	case *ast.UnaryOp:
		return tcUnaryOp(c, n)
	case *ast.BinaryOp:
		return tcBinaryOp(c, n)
	case *ast.AsConstraint:
		n.Target = TcExpr(c, n.Target)
		n.SetType(&ast.IntegerType{Constraints: n.Constraints})
		return n
	case *ast.AsType:
		n.Target = TcExpr(c, n.Target)
		n.SetType(n.AsT)
		return n
	case *ast.ArrayInit:
		var elem ast.Type
		for i := range n.Elems {
			n.Elems[i] = TcExpr(c, n.Elems[i])
			if elem == nil {
				elem = n.Elems[i].Type()
			}
		}
		if n.Repeat != nil {
			n.Repeat = TcExpr(c, n.Repeat)
			n.Count = TcExpr(c, n.Count)
			elem = n.Repeat.Type()
		}
		n.SetType(&ast.ArrayType{IndexSize: n.Count, Elem: elem})
		return n
	case *ast.UnknownOfType:
		n.SetType(n.T)
		return n
	case *ast.PatternIn:
		n.Target = TcExpr(c, n.Target)
		n.SetType(boolType)
		return n
	default:
		return e
	}
}

func tcVar(c *Checker, n *ast.Var) ast.Expr {
	if v, ok := c.Env.Lookup(n.Name.Name); ok {
		n.Resolved = v.Name
		n.SetType(v.Type)
		return n
	}

	if val, ok := c.Env.Global.Consts[n.Name.Name]; ok {
		n.Resolved = n.Name
		typed := TcExpr(c, val)
		n.SetType(typed.Type())
		return n
	}

	// No plain binding: try resolving as a nullary getter call.
	if sigs, ok := c.Env.Global.Funcs[n.Name.Name]; ok {
		res, ok := c.Resolve(errLoc(n), "getter "+n.Name.Name, sigs, nil)
		if ok {
			call := &ast.TypedCall{Callee: res.Sig.Tag, Params: res.Params, Args: res.Args, Throws: res.Sig.Throws}
			call.SetType(res.Sig.ReturnType)
			return call
		}

		return n
	}

	c.report(UnknownObject, errLoc(n), "unknown identifier %q", n.Name.Name)
	return n
}

func tcField(c *Checker, n *ast.Field) ast.Expr {
	n.Record = TcExpr(c, n.Record)

	nt, ok := n.Record.Type().(*ast.NamedType)
	if !ok {
		c.report(IsNotA, errLoc(n), "%q is not a record type", typeName(n.Record.Type()))
		n.SetType(unconstrainedInt)
		return n
	}

	rd, ok := c.Env.Global.Types[nt.Name.Name].(*ast.RecordDecl)
	if !ok {
		c.report(UnknownObject, errLoc(n), "unknown record type %q", nt.Name.Name)
		n.SetType(unconstrainedInt)
		return n
	}

	for _, f := range rd.Fields {
		if f.Name.Name == n.Name.Name {
			n.SetType(f.Type)
			return n
		}
	}

	c.report(UnknownObject, errLoc(n), "record %q has no field %q", nt.Name.Name, n.Name.Name)
	n.SetType(unconstrainedInt)
	return n
}

func tcIndex(c *Checker, n *ast.Index) ast.Expr {
	n.Array = TcExpr(c, n.Array)
	n.Key = TcExpr(c, n.Key)

	at, ok := n.Array.Type().(*ast.ArrayType)
	if !ok {
		if _, isBits := n.Array.Type().(*ast.BitsType); isBits {
			s := &ast.Slice{Kind: ast.SliceSingle, Target: n.Array, Index: n.Key}
			s.SetType(&ast.BitsType{Width: &ast.LitInt{Value: big.NewInt(1)}})
			return s
		}

		c.report(IsNotA, errLoc(n), "%q is not an array type", typeName(n.Array.Type()))
		n.SetType(unconstrainedInt)
		return n
	}

	n.SetType(at.Elem)
	return n
}

func tcSlice(c *Checker, n *ast.Slice) ast.Expr {
	n.Target = TcExpr(c, n.Target)
	if n.Index != nil {
		n.Index = TcExpr(c, n.Index)
	}

	var width ast.Expr
	switch n.Kind {
	case ast.SliceSingle:
		width = &ast.LitInt{Value: big.NewInt(1)}
	default:
		if n.Width != nil {
			n.Width = TcExpr(c, n.Width)
			width = n.Width
		} else {
			width = &ast.LitInt{Value: big.NewInt(1)}
		}
	}

	n.SetType(&ast.BitsType{Width: width})
	return n
}

func tcCond(c *Checker, n *ast.Cond) ast.Expr {
	var result ast.Type

	for i := range n.Arms {
		n.Arms[i].Cond = CheckExpr(c, boolType, n.Arms[i].Cond)
		restore := c.Env.Assume(n.Arms[i].Cond)
		n.Arms[i].Then = TcExpr(c, n.Arms[i].Then)
		restore()

		if result == nil {
			result = n.Arms[i].Then.Type()
		} else if lub, ok := LeastUpperBound(result, n.Arms[i].Then.Type()); ok {
			result = lub
		} else {
			c.report(DoesNotMatch, errLoc(n), "conditional arms have incompatible types")
		}
	}

	if n.Else != nil {
		n.Else = TcExpr(c, n.Else)
		if result == nil {
			result = n.Else.Type()
		} else if lub, ok := LeastUpperBound(result, n.Else.Type()); ok {
			result = lub
		} else {
			c.report(DoesNotMatch, errLoc(n), "conditional else-arm has incompatible type")
		}
	}

	n.SetType(result)
	return n
}

func tcUnaryOp(c *Checker, n *ast.UnaryOp) ast.Expr {
	n.Arg = TcExpr(c, n.Arg)

	candidates := c.Env.Global.Operators[OperatorKey{Op: n.Op, Arity: 1}]
	if len(candidates) == 0 {
		// No user/prelude declaration overrides this operator: it is one of
		// ASL's built-in primitive operators (spec.md §4.6's note on
		// `+ - * pow exact_div min max neg`), which carries no Signature.
		fallback := &ast.UnaryOp{Op: n.Op, Arg: n.Arg}
		fallback.SetType(n.Arg.Type())
		return fallback
	}

	res, ok := c.Resolve(errLoc(n), "operator "+n.Op, candidates, []ast.NamedArg{{Expr: n.Arg}})
	if !ok {
		fallback := &ast.UnaryOp{Op: n.Op, Arg: n.Arg}
		fallback.SetType(n.Arg.Type())
		return fallback
	}

	call := &ast.TypedCall{Callee: res.Sig.Tag, Params: res.Params, Args: res.Args, Throws: res.Sig.Throws}
	call.SetType(res.Sig.ReturnType)
	return call
}

func tcBinaryOp(c *Checker, n *ast.BinaryOp) ast.Expr {
	n.Left = TcExpr(c, n.Left)
	n.Right = TcExpr(c, n.Right)

	candidates := c.Env.Global.Operators[OperatorKey{Op: n.Op, Arity: 2}]
	if len(candidates) == 0 {
		fallback := &ast.BinaryOp{Op: n.Op, Left: n.Left, Right: n.Right}
		fallback.SetType(resultTypeFallback(n.Op, n.Left.Type(), n.Right.Type()))
		return fallback
	}

	res, ok := c.Resolve(errLoc(n), "operator "+n.Op, candidates, []ast.NamedArg{{Expr: n.Left}, {Expr: n.Right}})
	if !ok {
		fallback := &ast.BinaryOp{Op: n.Op, Left: n.Left, Right: n.Right}
		fallback.SetType(resultTypeFallback(n.Op, n.Left.Type(), n.Right.Type()))
		return fallback
	}

	call := &ast.TypedCall{Callee: res.Sig.Tag, Params: res.Params, Args: res.Args, Throws: res.Sig.Throws}
	call.SetType(res.Sig.ReturnType)
	return call
}

// resultTypeFallback covers the built-in arithmetic/relational/boolean
// operators, which have no user-declared Signature and so never appear in
// GlobalEnv.Operators; their result shape is fixed by spec.md §4.6's note on
// integer constraint-range propagation through `+ - * pow exact_div min max`.
func resultTypeFallback(op string, l, r ast.Type) ast.Type {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||", "IN":
		return boolType
	case "+", "-", "*", "pow", "exact_div", "min", "max":
		if _, ok := l.(*ast.IntegerType); ok {
			if _, ok := r.(*ast.IntegerType); ok {
				return unconstrainedInt
			}
		}

		return l
	default:
		return l
	}
}

func tcUntypedCall(c *Checker, n *ast.UntypedCall) ast.Expr {
	for i := range n.Args {
		n.Args[i].Expr = TcExpr(c, n.Args[i].Expr)
	}

	candidates := c.Env.Global.Funcs[n.Callee.Name]
	if len(candidates) == 0 {
		c.report(UnknownObject, errLoc(n), "unknown function %q", n.Callee.Name)
		fallback := &ast.UntypedCall{Callee: n.Callee, Args: n.Args, Throws: n.Throws}
		fallback.SetType(unconstrainedInt)
		return fallback
	}

	res, ok := c.Resolve(errLoc(n), "call to "+n.Callee.Name, candidates, n.Args)
	if !ok {
		fallback := &ast.UntypedCall{Callee: n.Callee, Args: n.Args, Throws: n.Throws}
		fallback.SetType(unconstrainedInt)
		return fallback
	}

	call := &ast.TypedCall{Callee: res.Sig.Tag, Params: res.Params, Args: res.Args, Throws: res.Sig.Throws}
	call.SetType(res.Sig.ReturnType)
	return call
}

// CheckExpr infers e's type and verifies it satisfies the subtype relation
// against want, reporting a DoesNotMatch diagnostic otherwise
// (spec.md §4.6 check_expr).
func CheckExpr(c *Checker, want ast.Type, e ast.Expr) ast.Expr {
	typed := TcExpr(c, e)

	if typed.Type() == nil {
		return typed
	}

	if !SubtypeOf(c.Env, typed.Type(), want) {
		c.report(DoesNotMatch, errLoc(typed), "expected %s, found %s", typeName(want), typeName(typed.Type()))
	}

	return typed
}

func typeName(t ast.Type) string {
	switch n := t.(type) {
	case nil:
		return "<unknown>"
	case *ast.IntegerType:
		return "integer"
	case *ast.BitsType:
		return "bits"
	case *ast.NamedType:
		return n.Name.Name
	case *ast.ArrayType:
		return "array[" + typeName(n.Elem) + "]"
	case *ast.TupleType:
		return "tuple"
	default:
		return "?"
	}
}

// TcStmts typechecks a statement list in sequence within the current scope.
func TcStmts(c *Checker, stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = TcStmt(c, s)
	}

	return out
}

// TcStmt typechecks one statement, pushing/popping scopes and assumptions as
// needed for its nested bodies (spec.md §4.6 tc_stmt).
func TcStmt(c *Checker, s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			n.Init = TcExpr(c, n.Init)
			if n.Type == nil {
				n.Type = n.Init.Type()
			} else {
				n.Init = CheckExpr(c, n.Type, n.Init)
			}
		}

		for _, name := range n.Names {
			c.Env.Declare(&VarInfo{Name: name, Loc: n.Loc(), Type: n.Type, IsLocal: true, IsConstant: !n.Mutable})
		}

		return n
	case *ast.Assign:
		tcLVal(c, n.LHS)

		if n.LHS.Type() != nil {
			n.RHS = CheckExpr(c, n.LHS.Type(), n.RHS)
		} else {
			n.RHS = TcExpr(c, n.RHS)
		}

		return n
	case *ast.ExprStmt:
		if n.Untyped != nil {
			typed := TcExpr(c, n.Untyped)
			if tc, ok := typed.(*ast.TypedCall); ok {
				n.Typed, n.Untyped = tc, nil
			}
		}

		return n
	case *ast.Return:
		if n.Value != nil {
			if c.CurrentReturn != nil {
				n.Value = CheckExpr(c, c.CurrentReturn, n.Value)
			} else {
				n.Value = TcExpr(c, n.Value)
			}
		}

		return n
	case *ast.Assert:
		n.Cond = CheckExpr(c, boolType, n.Cond)
		return n
	case *ast.Throw:
		n.Exception = TcExpr(c, n.Exception)
		return n
	case *ast.If:
		for i := range n.Arms {
			n.Arms[i].Cond = CheckExpr(c, boolType, n.Arms[i].Cond)
			restore := c.Env.Assume(n.Arms[i].Cond)
			c.Env.Push()
			n.Arms[i].Body = TcStmts(c, n.Arms[i].Body)
			c.Env.Pop()
			restore()
		}

		if n.Else != nil {
			c.Env.Push()
			n.Else = TcStmts(c, n.Else)
			c.Env.Pop()
		}

		return n
	case *ast.Case:
		n.Scrutinee = TcExpr(c, n.Scrutinee)

		for i := range n.Alts {
			c.Env.Push()
			n.Alts[i].Body = TcStmts(c, n.Alts[i].Body)
			c.Env.Pop()
		}

		if n.Default != nil {
			c.Env.Push()
			n.Default = TcStmts(c, n.Default)
			c.Env.Pop()
		}

		return n
	case *ast.For:
		n.Lo = CheckExpr(c, unconstrainedInt, n.Lo)
		n.Hi = CheckExpr(c, unconstrainedInt, n.Hi)

		c.Env.Push()
		// Subrange refinement: inside Body the loop variable's type narrows
		// to integer{[lo,hi]} (spec.md §4.6 "subrange refinement").
		c.Env.Declare(&VarInfo{Name: n.Var, Loc: n.Loc(), Type: &ast.IntegerType{Constraints: []ast.ConstraintRange{{Lo: n.Lo, Hi: n.Hi}}}, IsLocal: true, IsConstant: true})
		n.Body = TcStmts(c, n.Body)
		c.Env.Pop()

		return n
	case *ast.While:
		n.Cond = CheckExpr(c, boolType, n.Cond)
		restore := c.Env.Assume(n.Cond)
		c.Env.Push()
		n.Body = TcStmts(c, n.Body)
		c.Env.Pop()
		restore()

		return n
	case *ast.Repeat:
		c.Env.Push()
		n.Body = TcStmts(c, n.Body)
		n.Cond = CheckExpr(c, boolType, n.Cond)
		c.Env.Pop()

		return n
	case *ast.Try:
		c.Env.Push()
		n.Body = TcStmts(c, n.Body)
		c.Env.Pop()

		for i := range n.Arms {
			c.Env.Push()
			if n.Arms[i].Binder.Name != "" {
				c.Env.Declare(&VarInfo{Name: n.Arms[i].Binder, Loc: n.Loc(), Type: n.Arms[i].ExceptionType, IsLocal: true})
			}

			n.Arms[i].Body = TcStmts(c, n.Arms[i].Body)
			c.Env.Pop()
		}

		if n.Default != nil {
			c.Env.Push()
			n.Default = TcStmts(c, n.Default)
			c.Env.Pop()
		}

		return n
	default:
		return s
	}
}

func tcLVal(c *Checker, l ast.LVal) {
	switch n := l.(type) {
	case *ast.LVar:
		if v, ok := c.Env.Lookup(n.Name.Name); ok {
			n.Resolved = v.Name
			n.SetType(v.Type)
			return
		}

		c.report(UnknownObject, errLoc(n), "unknown identifier %q", n.Name.Name)
	case *ast.LField:
		tcLVal(c, n.Record)
	case *ast.LIndex:
		tcLVal(c, n.Array)
		n.Key = TcExpr(c, n.Key)
	case *ast.LSlice:
		tcLVal(c, n.Target)
		if n.Index != nil {
			n.Index = TcExpr(c, n.Index)
		}
	case *ast.LTuple:
		for _, e := range n.Elems {
			tcLVal(c, e)
		}
	}
}

// TcDecl typechecks one already-registered top-level declaration's body
// (function/getter/setter definitions and initializer expressions).
func TcDecl(c *Checker, d ast.Decl) ast.Decl {
	switch n := d.(type) {
	case *ast.FuncDef:
		c.Env.Push()
		prevReturn := c.CurrentReturn
		c.CurrentReturn = n.ReturnType

		for _, p := range n.Params {
			c.Env.Declare(&VarInfo{Name: p.Name, Loc: n.Loc(), Type: p.Type, IsLocal: true})
		}

		n.Body = TcStmts(c, n.Body)
		c.CurrentReturn = prevReturn
		c.Env.Pop()

		return n
	case *ast.ConstDecl:
		n.Value = TcExpr(c, n.Value)
		if n.Type == nil {
			n.Type = n.Value.Type()
		}

		return n
	case *ast.VarDeclGlobal:
		if n.Init != nil {
			n.Init = CheckExpr(c, n.Type, n.Init)
		}

		return n
	default:
		return d
	}
}

// Check runs the full bidirectional typechecker over a parsed program:
// registers every declaration's signature, then checks each declaration's
// body in turn, tolerant of the configured error budget.
func Check(decls []ast.Decl, maxErrors int) []*Error {
	g := NewGlobalEnv()
	RegisterDecls(g, decls)

	c := NewChecker(NewEnv(g), maxErrors)
	defer c.Recover()

	for _, d := range decls {
		TcDecl(c, d)
	}

	return c.Errors
}

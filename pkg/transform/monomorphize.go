package transform

import (
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/value"
)

// Monomorphize clones every width-polymorphic function at each literal
// width-tuple it is ever called with, substituting the symbolic width
// parameters throughout the clone's body and rewriting the call site to the
// concrete clone, per spec.md §4.7's monomorphization bullet. It cascades:
// a freshly cloned body may itself contain calls whose own width
// parameters only become literal-foldable once the enclosing substitution
// is applied, so the pass repeats to a fixed point. It terminates because
// each (callee, width-tuple) pair is cloned at most once, memoized in
// cloned. Grounded on pkg/corset/compiler/preprocessorInvokeInModule's
// invocation-substitution/expansion pattern, generalized from corset's
// macro-style inlining to cloning a callee's declaration outright.
func Monomorphize(ctx *Context, decls []ast.Decl) []ast.Decl {
	funcs := map[string]*ast.FuncDef{}

	for _, d := range decls {
		if f, ok := d.(*ast.FuncDef); ok && len(f.WidthArgs) > 0 {
			funcs[f.Name.String()] = f
		}
	}

	if len(funcs) == 0 {
		return decls
	}

	cloned := map[string]ident.Ident{}
	var extra []ast.Decl

	for {
		changed := false

		EachFuncBody(decls, func(f *ast.FuncDef) {
			f.Body = RewriteStmtsExprs(f.Body, func(e ast.Expr) ast.Expr {
				call, ok := e.(*ast.TypedCall)
				if !ok {
					return e
				}

				callee, ok := funcs[call.Callee.String()]
				if !ok || len(call.Params) != len(callee.WidthArgs) {
					return e
				}

				values := make([]*big.Int, len(call.Params))

				for i, p := range call.Params {
					v, ok := value.Fold(p)
					if !ok {
						return e
					}

					values[i] = v
				}

				key := monoKey(call.Callee, values)

				target, ok := cloned[key]
				if !ok {
					clone := cloneFunc(ctx, callee, values)
					target = clone.Name
					cloned[key] = target
					extra = append(extra, clone)
					changed = true
				}

				return &ast.TypedCall{Callee: target, Args: call.Args, Throws: call.Throws}
			})
		})

		decls = append(decls, extra...)
		extra = nil

		if !changed {
			break
		}
	}

	// Every call to a width-polymorphic function has now been redirected to
	// a monomorphic clone, so the generic originals are callerless. They
	// must not reach emission: a symbolic bits(N) width is not a literal
	// pkg/emit's cType can print (printer.go's cType falls back to
	// Unimplemented for a non-literal width), so dropping them here is not
	// an optimization but a correctness requirement of this pass.
	return dropPolymorphicFuncs(decls, funcs)
}

// dropPolymorphicFuncs removes every generic template recorded in funcs
// from decls, preserving the order of everything else.
func dropPolymorphicFuncs(decls []ast.Decl, funcs map[string]*ast.FuncDef) []ast.Decl {
	out := decls[:0]

	for _, d := range decls {
		if f, ok := d.(*ast.FuncDef); ok {
			if _, isPoly := funcs[f.Name.String()]; isPoly {
				continue
			}
		}

		out = append(out, d)
	}

	return out
}

func monoKey(callee ident.Ident, values []*big.Int) string {
	s := callee.String()

	for _, v := range values {
		s += "," + v.String()
	}

	return s
}

// cloneFunc produces a monomorphic copy of a width-polymorphic function with
// each width-arg identifier substituted by its literal value throughout the
// cloned body and parameter/return types.
func cloneFunc(ctx *Context, f *ast.FuncDef, values []*big.Int) *ast.FuncDef {
	bindings := map[string]ast.Expr{}

	for i, w := range f.WidthArgs {
		bindings[w.Name] = &ast.LitInt{Value: values[i]}
	}

	clone := &ast.FuncDef{
		Name:       ident.WithTag(f.Name.Name, ctx.Supply.fresh()),
		Kind:       f.Kind,
		ReturnType: substTypeMono(f.ReturnType, bindings),
		Throws:     f.Throws,
	}

	for _, p := range f.Params {
		clone.Params = append(clone.Params, ast.Param{
			Name:    p.Name,
			Type:    substTypeMono(p.Type, bindings),
			Default: p.Default,
		})
	}

	clone.Body = RewriteStmtsExprs(cloneStmts(f.Body), func(e ast.Expr) ast.Expr {
		v, ok := e.(*ast.Var)
		if !ok {
			return e
		}

		if lit, ok := bindings[v.Name.Name]; ok {
			return lit
		}

		return e
	})

	return clone
}

// cloneStmts deep-copies a statement list, and every expression, lvalue and
// pattern reachable from it, so substituting width parameters into one
// monomorphic clone can never mutate the generic original (or a sibling
// clone built from the same original at a different width-tuple).
// RewriteStmtsExprs and ast.WalkExpr/descendExpr both rewrite nodes in
// place, so a clone that merely copies the []ast.Stmt slice header (sharing
// the pointed-to *Assign/*Return/... structs) would let one width-tuple's
// substitution leak into every other clone of the same generic function.
func cloneStmts(stmts []ast.Stmt) []ast.Stmt {
	if stmts == nil {
		return nil
	}

	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = cloneStmt(s)
	}

	return out
}

func cloneStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.VarDecl:
		c := *n
		c.Names = append([]ident.Ident(nil), n.Names...)

		if n.Init != nil {
			c.Init = cloneExpr(n.Init)
		}

		return &c
	case *ast.Assign:
		c := *n
		c.LHS = cloneLVal(n.LHS)
		c.RHS = cloneExpr(n.RHS)

		return &c
	case *ast.ExprStmt:
		c := *n

		if n.Untyped != nil {
			c.Untyped = cloneExpr(n.Untyped).(*ast.UntypedCall)
		}

		if n.Typed != nil {
			c.Typed = cloneExpr(n.Typed).(*ast.TypedCall)
		}

		return &c
	case *ast.Return:
		c := *n

		if n.Value != nil {
			c.Value = cloneExpr(n.Value)
		}

		return &c
	case *ast.Assert:
		c := *n
		c.Cond = cloneExpr(n.Cond)

		return &c
	case *ast.Throw:
		c := *n
		c.Exception = cloneExpr(n.Exception)

		return &c
	case *ast.Try:
		c := *n
		c.Body = cloneStmts(n.Body)
		c.Arms = make([]ast.CatchArm, len(n.Arms))

		for i, a := range n.Arms {
			c.Arms[i] = ast.CatchArm{ExceptionType: a.ExceptionType, Binder: a.Binder, Body: cloneStmts(a.Body)}
		}

		c.Default = cloneStmts(n.Default)

		return &c
	case *ast.If:
		c := *n
		c.Arms = make([]ast.IfArm, len(n.Arms))

		for i, a := range n.Arms {
			c.Arms[i] = ast.IfArm{Cond: cloneExpr(a.Cond), Body: cloneStmts(a.Body)}
		}

		c.Else = cloneStmts(n.Else)

		return &c
	case *ast.Case:
		c := *n
		c.Scrutinee = cloneExpr(n.Scrutinee)
		c.Alts = make([]ast.CaseAlt, len(n.Alts))

		for i, a := range n.Alts {
			c.Alts[i] = ast.CaseAlt{Pattern: clonePattern(a.Pattern), Body: cloneStmts(a.Body)}
		}

		c.Default = cloneStmts(n.Default)

		return &c
	case *ast.For:
		c := *n
		c.Lo = cloneExpr(n.Lo)
		c.Hi = cloneExpr(n.Hi)
		c.Body = cloneStmts(n.Body)

		return &c
	case *ast.While:
		c := *n
		c.Cond = cloneExpr(n.Cond)
		c.Body = cloneStmts(n.Body)

		return &c
	case *ast.Repeat:
		c := *n
		c.Body = cloneStmts(n.Body)
		c.Cond = cloneExpr(n.Cond)

		return &c
	default:
		panic("transform: cloneStmt: unhandled statement variant")
	}
}

func cloneLVal(l ast.LVal) ast.LVal {
	switch n := l.(type) {
	case nil:
		return nil
	case *ast.LVar:
		c := *n
		return &c
	case *ast.LField:
		c := *n
		c.Record = cloneLVal(n.Record)

		return &c
	case *ast.LIndex:
		c := *n
		c.Array = cloneLVal(n.Array)
		c.Key = cloneExpr(n.Key)

		return &c
	case *ast.LSlice:
		c := *n
		c.Target = cloneLVal(n.Target)
		c.Index = cloneExpr(n.Index)

		if n.Width != nil {
			c.Width = cloneExpr(n.Width)
		}

		return &c
	case *ast.LTuple:
		c := *n
		c.Elems = make([]ast.LVal, len(n.Elems))

		for i, e := range n.Elems {
			c.Elems[i] = cloneLVal(e)
		}

		return &c
	case *ast.ReadWrite:
		c := *n
		c.Args = make([]ast.Expr, len(n.Args))

		for i, a := range n.Args {
			c.Args[i] = cloneExpr(a)
		}

		return &c
	case *ast.Write:
		c := *n
		c.Args = make([]ast.Expr, len(n.Args))

		for i, a := range n.Args {
			c.Args[i] = cloneExpr(a)
		}

		return &c
	default:
		panic("transform: cloneLVal: unhandled lvalue variant")
	}
}

func cloneExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.LitInt:
		c := *n
		if n.Value != nil {
			c.Value = new(big.Int).Set(n.Value)
		}

		return &c
	case *ast.LitBits:
		c := *n
		if n.Value != nil {
			c.Value = new(big.Int).Set(n.Value)
		}

		return &c
	case *ast.LitMask:
		c := *n

		if n.Bits != nil {
			c.Bits = new(big.Int).Set(n.Bits)
		}

		if n.Care != nil {
			c.Care = new(big.Int).Set(n.Care)
		}

		return &c
	case *ast.LitString:
		c := *n
		return &c
	case *ast.LitBool:
		c := *n
		return &c
	case *ast.Var:
		c := *n
		return &c
	case *ast.Field:
		c := *n
		c.Record = cloneExpr(n.Record)

		return &c
	case *ast.MultiField:
		c := *n
		c.Record = cloneExpr(n.Record)
		c.Names = append([]ident.Ident(nil), n.Names...)

		return &c
	case *ast.Index:
		c := *n
		c.Array = cloneExpr(n.Array)
		c.Key = cloneExpr(n.Key)

		return &c
	case *ast.Slice:
		c := *n
		c.Target = cloneExpr(n.Target)
		c.Index = cloneExpr(n.Index)

		if n.Width != nil {
			c.Width = cloneExpr(n.Width)
		}

		return &c
	case *ast.RecordLit:
		c := *n
		c.Fields = append([]ident.Ident(nil), n.Fields...)
		c.Values = make([]ast.Expr, len(n.Values))

		for i, v := range n.Values {
			c.Values[i] = cloneExpr(v)
		}

		return &c
	case *ast.With:
		c := *n
		c.Target = cloneExpr(n.Target)
		c.Changes = make([]ast.Change, len(n.Changes))

		for i, ch := range n.Changes {
			nc := ch
			nc.Value = cloneExpr(ch.Value)

			if ch.Low != nil {
				nc.Low = cloneExpr(ch.Low)
			}

			if ch.Width != nil {
				nc.Width = cloneExpr(ch.Width)
			}

			c.Changes[i] = nc
		}

		return &c
	case *ast.Cond:
		c := *n
		c.Arms = make([]ast.CondArm, len(n.Arms))

		for i, a := range n.Arms {
			c.Arms[i] = ast.CondArm{Cond: cloneExpr(a.Cond), Then: cloneExpr(a.Then)}
		}

		if n.Else != nil {
			c.Else = cloneExpr(n.Else)
		}

		return &c
	case *ast.Let:
		c := *n
		c.Bound = cloneExpr(n.Bound)
		c.Body = cloneExpr(n.Body)

		return &c
	case *ast.AssertIn:
		c := *n
		c.Assertion = cloneExpr(n.Assertion)
		c.Body = cloneExpr(n.Body)

		return &c
	case *ast.UntypedCall:
		c := *n
		c.Args = make([]ast.NamedArg, len(n.Args))

		for i, a := range n.Args {
			c.Args[i] = ast.NamedArg{Name: a.Name, Expr: cloneExpr(a.Expr)}
		}

		return &c
	case *ast.TypedCall:
		c := *n
		c.Params = make([]ast.Expr, len(n.Params))

		for i, p := range n.Params {
			c.Params[i] = cloneExpr(p)
		}

		c.Args = make([]ast.Expr, len(n.Args))

		for i, a := range n.Args {
			c.Args[i] = cloneExpr(a)
		}

		return &c
	case *ast.TupleExpr:
		c := *n
		c.Elems = make([]ast.Expr, len(n.Elems))

		for i, el := range n.Elems {
			c.Elems[i] = cloneExpr(el)
		}

		return &c
	case *ast.Concat:
		c := *n
		c.Elems = make([]ast.ConcatElem, len(n.Elems))

		for i, el := range n.Elems {
			c.Elems[i] = ast.ConcatElem{Value: cloneExpr(el.Value), Width: cloneExpr(el.Width)}
		}

		return &c
	case *ast.UnaryOp:
		c := *n
		c.Arg = cloneExpr(n.Arg)

		return &c
	case *ast.BinaryOp:
		c := *n
		c.Left = cloneExpr(n.Left)
		c.Right = cloneExpr(n.Right)

		return &c
	case *ast.AsConstraint:
		c := *n
		c.Target = cloneExpr(n.Target)
		c.Constraints = cloneConstraintRanges(n.Constraints)

		return &c
	case *ast.AsType:
		c := *n
		c.Target = cloneExpr(n.Target)

		return &c
	case *ast.ArrayInit:
		c := *n
		c.Elems = make([]ast.Expr, len(n.Elems))

		for i, el := range n.Elems {
			c.Elems[i] = cloneExpr(el)
		}

		if n.Repeat != nil {
			c.Repeat = cloneExpr(n.Repeat)
		}

		if n.Count != nil {
			c.Count = cloneExpr(n.Count)
		}

		return &c
	case *ast.UnknownOfType:
		c := *n
		return &c
	case *ast.PatternIn:
		c := *n
		c.Target = cloneExpr(n.Target)
		c.Pattern = clonePattern(n.Pattern)

		return &c
	default:
		panic("transform: cloneExpr: unhandled expression variant")
	}
}

func cloneConstraintRanges(rs []ast.ConstraintRange) []ast.ConstraintRange {
	if rs == nil {
		return nil
	}

	out := make([]ast.ConstraintRange, len(rs))
	for i, r := range rs {
		out[i] = ast.ConstraintRange{Single: cloneExpr(r.Single), Lo: cloneExpr(r.Lo), Hi: cloneExpr(r.Hi)}
	}

	return out
}

func clonePattern(p ast.Pattern) ast.Pattern {
	switch n := p.(type) {
	case nil:
		return nil
	case *ast.PatLit:
		c := *n
		if n.Value != nil {
			c.Value = new(big.Int).Set(n.Value)
		}

		return &c
	case *ast.PatConst:
		c := *n
		return &c
	case *ast.PatWildcard:
		c := *n
		return &c
	case *ast.PatTuple:
		c := *n
		c.Elems = make([]ast.Pattern, len(n.Elems))

		for i, e := range n.Elems {
			c.Elems[i] = clonePattern(e)
		}

		return &c
	case *ast.PatSet:
		c := *n
		c.Elems = make([]ast.Pattern, len(n.Elems))

		for i, e := range n.Elems {
			c.Elems[i] = clonePattern(e)
		}

		return &c
	case *ast.PatSingle:
		c := *n
		c.Expr = cloneExpr(n.Expr)

		return &c
	case *ast.PatRange:
		c := *n
		c.Lo = cloneExpr(n.Lo)
		c.Hi = cloneExpr(n.Hi)

		return &c
	case *ast.PatMask:
		c := *n

		if n.Bits != nil {
			c.Bits = new(big.Int).Set(n.Bits)
		}

		if n.Care != nil {
			c.Care = new(big.Int).Set(n.Care)
		}

		return &c
	default:
		panic("transform: clonePattern: unhandled pattern variant")
	}
}

// substTypeMono substitutes a width-arg reference appearing inside a type's
// expression-valued fields (BitsType.Width, ArrayType.IndexSize) with its
// bound literal.
func substTypeMono(t ast.Type, bindings map[string]ast.Expr) ast.Type {
	switch n := t.(type) {
	case nil:
		return nil
	case *ast.BitsType:
		return &ast.BitsType{Width: substExprMono(n.Width, bindings), Fields: n.Fields}
	case *ast.ArrayType:
		return &ast.ArrayType{IndexEnum: n.IndexEnum, IndexSize: substExprMono(n.IndexSize, bindings), Elem: substTypeMono(n.Elem, bindings)}
	case *ast.NamedType:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = substExprMono(a, bindings)
		}

		return &ast.NamedType{Name: n.Name, Args: args}
	default:
		return t
	}
}

func substExprMono(e ast.Expr, bindings map[string]ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}

	if v, ok := e.(*ast.Var); ok {
		if lit, ok := bindings[v.Name.Name]; ok {
			return lit
		}
	}

	return e
}

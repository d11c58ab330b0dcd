package typecheck

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// bindArgsToSig performs step 1 of spec.md §4.6's function-resolution
// algorithm for one candidate: positional arguments bind left-to-right,
// named arguments bind by name, missing formals fall back to their default
// expression, and any formal left unbound fails the candidate.
func bindArgsToSig(sig *Signature, args []ast.NamedArg) ([]ast.Expr, bool) {
	slots := make([]ast.Expr, len(sig.Params))
	filled := make([]bool, len(sig.Params))
	posIdx := 0

	for _, a := range args {
		if a.IsNamed() {
			idx := -1

			for i, p := range sig.Params {
				if p.Name.Name == a.Name.Name {
					idx = i
					break
				}
			}

			if idx == -1 || filled[idx] {
				return nil, false
			}

			slots[idx], filled[idx] = a.Expr, true
		} else {
			if posIdx >= len(sig.Params) || filled[posIdx] {
				return nil, false
			}

			slots[posIdx], filled[posIdx] = a.Expr, true
			posIdx++
		}
	}

	for i, p := range sig.Params {
		if filled[i] {
			continue
		}

		if p.Default == nil {
			return nil, false
		}

		slots[i], filled[i] = p.Default, true
	}

	return slots, true
}

// namedBeforePositional reports whether args contains a positional argument
// after a named one, which spec.md §4.6 step 1 rejects outright regardless
// of candidate.
func namedBeforePositional(args []ast.NamedArg) bool {
	seenNamed := false

	for _, a := range args {
		if a.IsNamed() {
			seenNamed = true
		} else if seenNamed {
			return true
		}
	}

	return false
}

// typeShapeCompatible is the "structurally compatible, ignoring the
// dependent part" test of spec.md §4.6 step 2: the same type constructor,
// ignoring width/constraint expressions (those are checked precisely later,
// after parameter synthesis).
func typeShapeCompatible(formal, actual ast.Type) bool {
	switch f := formal.(type) {
	case *ast.IntegerType:
		_, ok := actual.(*ast.IntegerType)
		return ok
	case *ast.BitsType:
		_, ok := actual.(*ast.BitsType)
		return ok
	case *ast.NamedType:
		a, ok := actual.(*ast.NamedType)
		return ok && f.Name.Name == a.Name.Name
	case *ast.ArrayType:
		a, ok := actual.(*ast.ArrayType)
		return ok && typeShapeCompatible(f.Elem, a.Elem)
	case *ast.TupleType:
		a, ok := actual.(*ast.TupleType)
		if !ok || len(f.Elems) != len(a.Elems) {
			return false
		}

		for i := range f.Elems {
			if !typeShapeCompatible(f.Elems[i], a.Elems[i]) {
				return false
			}
		}

		return true
	case *ast.TypeOfType:
		return true
	default:
		return TypesEqual(formal, actual)
	}
}

// widthArgSet turns a WidthArgs list into a membership set.
func widthArgSet(args []ident.Ident) map[string]bool {
	out := make(map[string]bool, len(args))
	for _, a := range args {
		out[a.Name] = true
	}

	return out
}

// unifyParam walks one (formal, actual) type pair, binding any formal
// parameter variable found in a dependent slot (bits width, array size,
// named-type constructor argument) to the matching component of actual
// (spec.md §4.6 step 4).
func unifyParam(formal, actual ast.Type, widthArgs map[string]bool, bindings map[string]ast.Expr) {
	switch f := formal.(type) {
	case *ast.BitsType:
		a, ok := actual.(*ast.BitsType)
		if !ok {
			return
		}

		bindWidthVar(f.Width, a.Width, widthArgs, bindings)
	case *ast.NamedType:
		a, ok := actual.(*ast.NamedType)
		if !ok {
			return
		}

		for i := range f.Args {
			if i >= len(a.Args) {
				break
			}

			bindWidthVar(f.Args[i], a.Args[i], widthArgs, bindings)
		}
	case *ast.ArrayType:
		a, ok := actual.(*ast.ArrayType)
		if !ok {
			return
		}

		bindWidthVar(f.IndexSize, a.IndexSize, widthArgs, bindings)
		unifyParam(f.Elem, a.Elem, widthArgs, bindings)
	case *ast.TupleType:
		a, ok := actual.(*ast.TupleType)
		if !ok {
			return
		}

		for i := range f.Elems {
			if i >= len(a.Elems) {
				break
			}

			unifyParam(f.Elems[i], a.Elems[i], widthArgs, bindings)
		}
	}
}

func bindWidthVar(formal, actual ast.Expr, widthArgs map[string]bool, bindings map[string]ast.Expr) {
	v, ok := formal.(*ast.Var)
	if !ok || !widthArgs[v.Name.Name] {
		return
	}

	if _, exists := bindings[v.Name.Name]; !exists {
		bindings[v.Name.Name] = actual
	}
}

// substType rebuilds t with every Var referencing a bound width parameter
// replaced by its bound expression.
func substType(t ast.Type, bindings map[string]ast.Expr) ast.Type {
	switch n := t.(type) {
	case *ast.IntegerType:
		out := &ast.IntegerType{}

		for _, c := range n.Constraints {
			out.Constraints = append(out.Constraints, ast.ConstraintRange{
				Single: substExpr(c.Single, bindings),
				Lo:     substExpr(c.Lo, bindings),
				Hi:     substExpr(c.Hi, bindings),
			})
		}

		return out
	case *ast.BitsType:
		out := &ast.BitsType{Width: substExpr(n.Width, bindings), Fields: n.Fields}
		return out
	case *ast.NamedType:
		out := &ast.NamedType{Name: n.Name}

		for _, a := range n.Args {
			out.Args = append(out.Args, substExpr(a, bindings))
		}

		return out
	case *ast.ArrayType:
		return &ast.ArrayType{
			IndexEnum: n.IndexEnum,
			IndexSize: substExpr(n.IndexSize, bindings),
			Elem:      substType(n.Elem, bindings),
		}
	case *ast.TupleType:
		out := &ast.TupleType{}
		for _, e := range n.Elems {
			out.Elems = append(out.Elems, substType(e, bindings))
		}

		return out
	default:
		return t
	}
}

func substExpr(e ast.Expr, bindings map[string]ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}

	if v, ok := e.(*ast.Var); ok {
		if b, ok := bindings[v.Name.Name]; ok {
			return b
		}
	}

	return e
}

// ResolveResult is a fully resolved call: the chosen candidate, its
// synthesized width-parameter expressions (in WidthArgs order) and its
// bound argument expressions (in Params order).
type ResolveResult struct {
	Sig    *Signature
	Params []ast.Expr
	Args   []ast.Expr
}

// Resolve implements spec.md §4.6's function/operator resolution algorithm
// in full: argument binding, shape filtering, uniqueness, parameter
// synthesis, and final subtype verification.
func (c *Checker) Resolve(loc ident.Location, what string, candidates []*Signature, args []ast.NamedArg) (*ResolveResult, bool) {
	if namedBeforePositional(args) {
		c.report(TypeErrorKind, loc, "%s: a positional argument cannot follow a named argument", what)
		return nil, false
	}

	type attempt struct {
		sig    *Signature
		bound  []ast.Expr
	}

	var shapeMatched []attempt

	for _, sig := range candidates {
		bound, ok := bindArgsToSig(sig, args)
		if !ok {
			continue
		}

		compatible := true

		for i, p := range sig.Params {
			if bound[i].Type() == nil {
				continue // defaults / not-yet-typed expressions are trusted
			}

			if !typeShapeCompatible(p.Type, bound[i].Type()) {
				compatible = false
				break
			}
		}

		if compatible {
			shapeMatched = append(shapeMatched, attempt{sig: sig, bound: bound})
		}
	}

	if len(shapeMatched) == 0 {
		c.report(IsNotA, loc, "%s: no candidate matches the given arguments", what)
		return nil, false
	}

	if len(shapeMatched) > 1 {
		c.report(Ambiguous, loc, "%s: %d candidates match the given arguments", what, len(shapeMatched))
		return nil, false
	}

	chosen := shapeMatched[0]

	wargs := widthArgSet(chosen.sig.WidthArgs)
	bindings := map[string]ast.Expr{}

	for i, p := range chosen.sig.Params {
		if chosen.bound[i].Type() == nil {
			continue
		}

		unifyParam(p.Type, chosen.bound[i].Type(), wargs, bindings)
	}

	paramExprs := make([]ast.Expr, len(chosen.sig.WidthArgs))

	for i, w := range chosen.sig.WidthArgs {
		b, ok := bindings[w.Name]
		if !ok {
			c.report(TypeErrorKind, loc, "%s: could not synthesize width parameter %q", what, w.Name)
			return nil, false
		}

		paramExprs[i] = b
	}

	for i, p := range chosen.sig.Params {
		if chosen.bound[i].Type() == nil {
			continue
		}

		want := substType(p.Type, bindings)
		if !SubtypeOf(c.Env, chosen.bound[i].Type(), want) {
			c.report(DoesNotMatch, loc, "%s: argument %d does not satisfy the expected type", what, i+1)
			return nil, false
		}
	}

	return &ResolveResult{Sig: chosen.sig, Params: paramExprs, Args: chosen.bound}, true
}

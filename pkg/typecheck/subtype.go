package typecheck

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/typecheck/entail"
	"github.com/asl-lang/aslc/pkg/value"
)

// widthsEqual decides whether two width/index expressions are provably
// equal under assumptions: constant-fold first, then fall back to SMT
// entailment (spec.md §4.6 "Subtype satisfaction" step 1-2).
func widthsEqual(assumptions []ast.Expr, a, b ast.Expr) bool {
	if a == nil && b == nil {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	if av, ok := value.Fold(a); ok {
		if bv, ok := value.Fold(b); ok {
			return av.Cmp(bv) == 0
		}
	}

	return entail.Equal(assumptions, a, b)
}

// constraintSubset reports whether every value permitted by sub is also
// permitted by super, i.e. sub's constraint set is a subset of super's.
// An empty constraint set denotes the unconstrained integer type, which is
// a superset of everything but a subset only of itself.
func constraintSubset(assumptions []ast.Expr, sub, super []ast.ConstraintRange) bool {
	if len(super) == 0 {
		return true
	}

	if len(sub) == 0 {
		return false
	}

	for _, s := range sub {
		if !rangeCoveredByAny(assumptions, s, super) {
			return false
		}
	}

	return true
}

func rangeCoveredByAny(assumptions []ast.Expr, r ast.ConstraintRange, covers []ast.ConstraintRange) bool {
	for _, c := range covers {
		if rangeCoveredBy(assumptions, r, c) {
			return true
		}
	}

	return false
}

func rangeCoveredBy(assumptions []ast.Expr, r, c ast.ConstraintRange) bool {
	rLo, rHi := rangeBounds(r)
	cLo, cHi := rangeBounds(c)

	return entailLE(assumptions, cLo, rLo) && entailLE(assumptions, rHi, cHi)
}

func rangeBounds(r ast.ConstraintRange) (lo, hi ast.Expr) {
	if r.Single != nil {
		return r.Single, r.Single
	}

	return r.Lo, r.Hi
}

func entailLE(assumptions []ast.Expr, a, b ast.Expr) bool {
	if av, ok := value.Fold(a); ok {
		if bv, ok := value.Fold(b); ok {
			return av.Cmp(bv) <= 0
		}
	}

	return entail.Entails(assumptions, &ast.BinaryOp{Op: "<=", Left: a, Right: b})
}

// SubtypeOf decides ASL's subtype-satisfaction relation (spec.md §4.6): two
// types satisfy it when structurally equal and every width/index expression
// on sub is provably equal to super's, and every constraint set on sub is a
// subset of super's.
func SubtypeOf(env *Env, sub, super ast.Type) bool {
	asn := env.Assumptions

	switch s := sub.(type) {
	case *ast.IntegerType:
		t, ok := super.(*ast.IntegerType)
		if !ok {
			return false
		}

		return constraintSubset(asn, s.Constraints, t.Constraints)
	case *ast.BitsType:
		t, ok := super.(*ast.BitsType)
		if !ok {
			return false
		}

		if !widthsEqual(asn, s.Width, t.Width) {
			return false
		}

		return registerFieldsEqual(s.Fields, t.Fields)
	case *ast.NamedType:
		t, ok := super.(*ast.NamedType)
		if !ok || s.Name.Name != t.Name.Name || len(s.Args) != len(t.Args) {
			return false
		}

		for i := range s.Args {
			if !widthsEqual(asn, s.Args[i], t.Args[i]) {
				return false
			}
		}

		return true
	case *ast.ArrayType:
		t, ok := super.(*ast.ArrayType)
		if !ok {
			return false
		}

		if s.IndexEnum.Name != "" || t.IndexEnum.Name != "" {
			if s.IndexEnum.Name != t.IndexEnum.Name {
				return false
			}
		} else if !widthsEqual(asn, s.IndexSize, t.IndexSize) {
			return false
		}

		return SubtypeOf(env, s.Elem, t.Elem)
	case *ast.TupleType:
		t, ok := super.(*ast.TupleType)
		if !ok || len(s.Elems) != len(t.Elems) {
			return false
		}

		for i := range s.Elems {
			if !SubtypeOf(env, s.Elems[i], t.Elems[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func registerFieldsEqual(a, b []ast.RegisterField) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Name.Name != b[i].Name.Name || len(a[i].Slices) != len(b[i].Slices) {
			return false
		}
	}

	return true
}

// LeastUpperBound computes a common supertype for branches of the same
// structural shape (used to type `if`/`cond` expressions and case
// alternatives). Integer types widen by unioning constraint sets (falling
// back to the unconstrained integer when either side is itself
// unconstrained); any other mismatch is reported as an error by the caller.
func LeastUpperBound(a, b ast.Type) (ast.Type, bool) {
	switch at := a.(type) {
	case *ast.IntegerType:
		bt, ok := b.(*ast.IntegerType)
		if !ok {
			return nil, false
		}

		if len(at.Constraints) == 0 || len(bt.Constraints) == 0 {
			return &ast.IntegerType{}, true
		}

		return &ast.IntegerType{Constraints: append(append([]ast.ConstraintRange{}, at.Constraints...), bt.Constraints...)}, true
	default:
		if TypesEqual(a, b) {
			return a, true
		}

		return nil, false
	}
}

// TypesEqual is syntactic/structural equality (not subtype satisfaction in
// either direction), used where ASL requires an exact match rather than a
// subsumption check (e.g. two branches of a conditional that are not both
// integer types).
func TypesEqual(a, b ast.Type) bool {
	switch at := a.(type) {
	case *ast.IntegerType:
		bt, ok := b.(*ast.IntegerType)
		return ok && len(at.Constraints) == len(bt.Constraints)
	case *ast.BitsType:
		bt, ok := b.(*ast.BitsType)
		if !ok {
			return false
		}

		if av, aok := value.Fold(at.Width); aok {
			if bv, bok := value.Fold(bt.Width); bok {
				return av.Cmp(bv) == 0
			}
		}

		return false
	case *ast.NamedType:
		bt, ok := b.(*ast.NamedType)
		return ok && at.Name.Name == bt.Name.Name && len(at.Args) == len(bt.Args)
	case *ast.ArrayType:
		bt, ok := b.(*ast.ArrayType)
		return ok && at.IndexEnum.Name == bt.IndexEnum.Name && TypesEqual(at.Elem, bt.Elem)
	case *ast.TupleType:
		bt, ok := b.(*ast.TupleType)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}

		for i := range at.Elems {
			if !TypesEqual(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

package transform

import (
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// LowerIntegerBounds computes a tight [lo,hi] bound for every
// refinement-constrained integer type reachable from a declaration
// (parameters, return types, record fields, global and local variable
// declarations) and represents each with the smallest fixed-width
// two's-complement sintN that covers the bound. Only declared types are
// rewritten: no resize_sintN/cvt_int_sintN/cvt_sintN_int coercion is
// inserted where a value crosses from unconstrained `integer` into a
// sintN-typed slot or between two differently sized slots, and expression
// nodes keep the Type() the typechecker cached on them. Grounded on
// pkg/value's SintN value kind (see DESIGN.md's C2 entry) and on the
// teacher's staged-IR habit of picking a concrete representation only at a
// late lowering stage (pkg/ir/mir's register-width assignment).
func LowerIntegerBounds(ctx *Context, decls []ast.Decl) []ast.Decl {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.FuncDef:
			for i := range n.Params {
				n.Params[i].Type = lowerType(n.Params[i].Type)
			}

			n.ReturnType = lowerType(n.ReturnType)
			lowerStmts(n.Body)
		case *ast.RecordDecl:
			for i := range n.Fields {
				n.Fields[i].Type = lowerType(n.Fields[i].Type)
			}
		case *ast.VarDeclGlobal:
			n.Type = lowerType(n.Type)
		}
	}

	return decls
}

// lowerType replaces a bounded integer{...} type with the smallest sintN
// named type covering its range; an unconstrained integer is left as
// arbitrary precision, per spec.md §4.2's value model.
func lowerType(t ast.Type) ast.Type {
	it, ok := t.(*ast.IntegerType)
	if !ok {
		return t
	}

	lo, hi, ok := integerBounds(it)
	if !ok {
		return t
	}

	return sintNType(sintWidth(lo, hi))
}

func sintNType(width int) ast.Type {
	return &ast.NamedType{Name: ident.New("sintN"), Args: []ast.Expr{litInt(int64(width))}}
}

// integerBounds reduces a union of constraint ranges to its overall
// [lo,hi] envelope; only succeeds when every range bound is a literal, since
// a symbolic bound cannot be sized at compile time here (it is left as
// arbitrary-precision integer instead, same as an unconstrained type).
func integerBounds(it *ast.IntegerType) (*big.Int, *big.Int, bool) {
	if len(it.Constraints) == 0 {
		return nil, nil, false
	}

	var lo, hi *big.Int

	for _, c := range it.Constraints {
		var l, h *big.Int

		switch {
		case c.Single != nil:
			v, ok := c.Single.(*ast.LitInt)
			if !ok {
				return nil, nil, false
			}

			l, h = v.Value, v.Value
		case c.Lo != nil && c.Hi != nil:
			lv, ok1 := c.Lo.(*ast.LitInt)
			hv, ok2 := c.Hi.(*ast.LitInt)

			if !ok1 || !ok2 {
				return nil, nil, false
			}

			l, h = lv.Value, hv.Value
		default:
			return nil, nil, false
		}

		if lo == nil || l.Cmp(lo) < 0 {
			lo = l
		}

		if hi == nil || h.Cmp(hi) > 0 {
			hi = h
		}
	}

	return lo, hi, true
}

// sintWidth returns the smallest two's-complement bit width that can
// represent every value in [lo,hi].
func sintWidth(lo, hi *big.Int) int {
	width := 1

	fits := func(w int) bool {
		half := new(big.Int).Lsh(big.NewInt(1), uint(w-1))
		min := new(big.Int).Neg(half)
		max := new(big.Int).Sub(half, big.NewInt(1))

		return lo.Cmp(min) >= 0 && hi.Cmp(max) <= 0
	}

	for !fits(width) {
		width++
	}

	return width
}

func lowerStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.VarDecl:
			if n.Type != nil {
				n.Type = lowerType(n.Type)
			}
		case *ast.If:
			for i := range n.Arms {
				lowerStmts(n.Arms[i].Body)
			}

			lowerStmts(n.Else)
		case *ast.Case:
			for i := range n.Alts {
				lowerStmts(n.Alts[i].Body)
			}

			lowerStmts(n.Default)
		case *ast.For:
			lowerStmts(n.Body)
		case *ast.While:
			lowerStmts(n.Body)
		case *ast.Repeat:
			lowerStmts(n.Body)
		case *ast.Try:
			lowerStmts(n.Body)

			for i := range n.Arms {
				lowerStmts(n.Arms[i].Body)
			}

			lowerStmts(n.Default)
		}
	}
}

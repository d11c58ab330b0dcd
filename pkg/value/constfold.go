package value

import (
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
)

// Fold attempts to reduce an AST expression tree of literals and supported
// operators to a constant *big.Int, returning (value, true) on success.  It
// preserves observable failure per spec.md §4.2: division by zero (and any
// other partial operation) is reported as "not foldable" via the second
// return value rather than folded to a bogus value, leaving the expression
// for a runtime check instead.  Only integer-valued subtrees are folded;
// bitvector/mask literals are reported as not foldable and never combine
// with integer arithmetic here (that is the typechecker's job, once
// it knows which operator overload was resolved).
func Fold(e ast.Expr) (*big.Int, bool) {
	switch n := e.(type) {
	case *ast.LitInt:
		return new(big.Int).Set(n.Value), true
	case *ast.UnaryOp:
		v, ok := Fold(n.Arg)
		if !ok {
			return nil, false
		}

		switch n.Op {
		case "-":
			return new(big.Int).Neg(v), true
		case "+":
			return v, true
		default:
			return nil, false
		}
	case *ast.BinaryOp:
		return foldBinary(n)
	default:
		return nil, false
	}
}

func foldBinary(n *ast.BinaryOp) (*big.Int, bool) {
	l, ok := Fold(n.Left)
	if !ok {
		return nil, false
	}

	r, ok := Fold(n.Right)
	if !ok {
		return nil, false
	}

	switch n.Op {
	case "+":
		return new(big.Int).Add(l, r), true
	case "-":
		return new(big.Int).Sub(l, r), true
	case "*":
		return new(big.Int).Mul(l, r), true
	case "DIV", "DIVRM":
		if r.Sign() == 0 {
			return nil, false
		}

		q, _ := DivRM(Int{l}, Int{r})

		return q.V, true
	case "MOD":
		if r.Sign() == 0 {
			return nil, false
		}

		m, _ := Mod(Int{l}, Int{r})

		return m.V, true
	case "QUOT":
		if r.Sign() == 0 {
			return nil, false
		}

		q, _ := Quot(Int{l}, Int{r})

		return q.V, true
	case "REM":
		if r.Sign() == 0 {
			return nil, false
		}

		m, _ := Rem(Int{l}, Int{r})

		return m.V, true
	case "pow":
		if !r.IsUint64() {
			return nil, false
		}

		return new(big.Int).Exp(l, r, nil), true
	default:
		return nil, false
	}
}

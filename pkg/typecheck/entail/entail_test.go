package entail

import (
	"math/big"
	"testing"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

func lit(v int64) ast.Expr { return &ast.LitInt{Value: big.NewInt(v)} }

func variable(name string) ast.Expr { return &ast.Var{Name: ident.New(name)} }

func TestConstantFoldFastPath(t *testing.T) {
	goal := &ast.BinaryOp{Op: "==", Left: lit(4), Right: &ast.BinaryOp{Op: "+", Left: lit(2), Right: lit(2)}}

	if !Entails(nil, goal) {
		t.Fatalf("expected 4 == 2+2 to be entailed unconditionally")
	}
}

func TestConstantFoldFalse(t *testing.T) {
	goal := &ast.BinaryOp{Op: "==", Left: lit(4), Right: lit(5)}

	if Entails(nil, goal) {
		t.Fatalf("expected 4 == 5 not to be entailed")
	}
}

func TestEqualityAssumptionPropagates(t *testing.T) {
	n := variable("N")
	m := variable("M")

	assumptions := []ast.Expr{
		&ast.BinaryOp{Op: "==", Left: n, Right: &ast.BinaryOp{Op: "+", Left: m, Right: lit(1)}},
	}

	rhs := &ast.BinaryOp{Op: "+", Left: m, Right: lit(1)}

	if !Equal(assumptions, n, rhs) {
		t.Fatalf("expected N == M+1 to be entailed when given as an assumption")
	}
}

func TestOrderBoundsCompose(t *testing.T) {
	n := variable("N")

	assumptions := []ast.Expr{
		&ast.BinaryOp{Op: ">=", Left: n, Right: lit(3)},
		&ast.BinaryOp{Op: "<=", Left: n, Right: lit(3)},
	}

	goal := &ast.BinaryOp{Op: "==", Left: n, Right: lit(3)}

	if !Entails(assumptions, goal) {
		t.Fatalf("expected N in [3,3] to entail N == 3")
	}
}

func TestUnresolvedAtomFailsClosed(t *testing.T) {
	n := variable("N")
	p := variable("P")

	goal := &ast.BinaryOp{Op: "==", Left: n, Right: p}

	if Entails(nil, goal) {
		t.Fatalf("expected two unrelated atoms not to be entailed equal")
	}
}

func TestSameSubtermSameAtom(t *testing.T) {
	call := func() ast.Expr {
		return &ast.UntypedCall{Callee: ident.New("Width"), Args: []ast.NamedArg{{Expr: variable("X")}}}
	}

	goal := &ast.BinaryOp{Op: "==", Left: call(), Right: call()}

	if !Entails(nil, goal) {
		t.Fatalf("expected two structurally identical calls to be entailed equal via shared atom key")
	}
}

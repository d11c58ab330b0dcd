package ast

import (
	"math/big"
	"testing"
)

// doubler is a minimal ExprVisitor that doubles every integer literal and
// leaves everything else alone, used to exercise WalkExpr's descend/replace
// contract.
type doubler struct{}

func (doubler) VisitExpr(e Expr) ExprAction {
	if lit, ok := e.(*LitInt); ok {
		doubled := new(big.Int).Mul(lit.Value, big.NewInt(2))
		return ExprAction{Kind: Change, Replacement: &LitInt{Value: doubled}}
	}

	return ExprAction{Kind: DoChildren}
}

func TestWalkExprReplacesLeaves(t *testing.T) {
	tree := &BinaryOp{
		Op:    "+",
		Left:  &LitInt{Value: big.NewInt(3)},
		Right: &LitInt{Value: big.NewInt(4)},
	}

	result := WalkExpr(doubler{}, tree).(*BinaryOp)

	left := result.Left.(*LitInt)
	right := result.Right.(*LitInt)

	if left.Value.Int64() != 6 || right.Value.Int64() != 8 {
		t.Errorf("expected doubled literals, got %s and %s", left.Value, right.Value)
	}
}

// skipAll never descends, used to confirm Skip prevents recursion.
type skipAll struct{ visited int }

func (s *skipAll) VisitExpr(e Expr) ExprAction {
	s.visited++
	return ExprAction{Kind: Skip}
}

func TestWalkExprSkip(t *testing.T) {
	tree := &BinaryOp{
		Op:    "+",
		Left:  &LitInt{Value: big.NewInt(1)},
		Right: &LitInt{Value: big.NewInt(2)},
	}

	v := &skipAll{}
	WalkExpr(v, tree)

	if v.visited != 1 {
		t.Errorf("expected Skip to prevent descending into children, visited=%d", v.visited)
	}
}

// countStmts counts every statement visited, exercising nested bodies.
type countStmts struct{ n int }

func (c *countStmts) VisitStmt(s Stmt) StmtAction {
	c.n++
	return StmtAction{Kind: DoChildren}
}

func TestWalkStmtsDescendsNestedBodies(t *testing.T) {
	body := []Stmt{
		&If{
			Arms: []IfArm{{
				Cond: &LitBool{Value: true},
				Body: []Stmt{&Return{}, &Return{}},
			}},
			Else: []Stmt{&Return{}},
		},
	}

	c := &countStmts{}
	WalkStmts(c, body)

	// 1 If + 2 Return (then-arm) + 1 Return (else-arm) = 4
	if c.n != 4 {
		t.Errorf("expected 4 statements visited, got %d", c.n)
	}
}

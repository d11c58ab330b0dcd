package ast

import (
	"math/big"

	"github.com/asl-lang/aslc/pkg/ident"
)

// Pattern is the sum over ASL's pattern grammar, used by `case` alternatives
// and `IN` expressions.
type Pattern interface {
	Node
	patternNode()
}

// PatLit matches a literal value exactly.
type PatLit struct {
	base
	Value *big.Int
}

func (*PatLit) patternNode() {}

// PatConst matches a named constant's value.
type PatConst struct {
	base
	Name ident.Ident
}

func (*PatConst) patternNode() {}

// PatWildcard matches anything, binding nothing (`-`).
type PatWildcard struct{ base }

func (*PatWildcard) patternNode() {}

// PatTuple matches a tuple elementwise.
type PatTuple struct {
	base
	Elems []Pattern
}

func (*PatTuple) patternNode() {}

// PatSet matches if any of the contained patterns match (`{p1, p2, ...}`).
type PatSet struct {
	base
	Elems []Pattern
}

func (*PatSet) patternNode() {}

// PatSingle matches if the scrutinee equals the given expression's value.
type PatSingle struct {
	base
	Expr Expr
}

func (*PatSingle) patternNode() {}

// PatRange matches a closed interval [Lo, Hi].
type PatRange struct {
	base
	Lo, Hi Expr
}

func (*PatRange) patternNode() {}

// PatMask matches a bitvector against a mask literal.
type PatMask struct {
	base
	Bits  *big.Int
	Care  *big.Int
	Width uint
}

func (*PatMask) patternNode() {}

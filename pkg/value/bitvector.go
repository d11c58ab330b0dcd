package value

import "math/big"

// NewBitVector constructs a bitvector of the given width, masking v into
// [0, 2^width).
func NewBitVector(v *big.Int, width uint) BitVector {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), width), big.NewInt(1))

	return BitVector{V: new(big.Int).And(v, mask), Width: width}
}

// requireEqualWidth panics when two bitvectors are not width-homogeneous.
// This invariant (spec.md §3) is supposed to already be proven by the
// typechecker's SMT entailment before any AST reaches constant folding or
// emission, so a mismatch here indicates an upstream compiler bug rather
// than a user-facing error.
func requireEqualWidth(a, b BitVector) {
	if a.Width != b.Width {
		panic("bitvector width mismatch reached value layer")
	}
}

// And implements bitwise AND.
func And(a, b BitVector) BitVector {
	requireEqualWidth(a, b)
	return NewBitVector(new(big.Int).And(a.V, b.V), a.Width)
}

// Or implements bitwise OR.
func Or(a, b BitVector) BitVector {
	requireEqualWidth(a, b)
	return NewBitVector(new(big.Int).Or(a.V, b.V), a.Width)
}

// Xor implements bitwise XOR.
func Xor(a, b BitVector) BitVector {
	requireEqualWidth(a, b)
	return NewBitVector(new(big.Int).Xor(a.V, b.V), a.Width)
}

// Not implements bitwise complement.
func Not(a BitVector) BitVector {
	return NewBitVector(new(big.Int).Not(a.V), a.Width)
}

// Shl shifts a left by n bits, truncating to Width.
func Shl(a BitVector, n uint) BitVector {
	return NewBitVector(new(big.Int).Lsh(a.V, n), a.Width)
}

// Lsr shifts a right logically by n bits.
func Lsr(a BitVector, n uint) BitVector {
	return NewBitVector(new(big.Int).Rsh(a.V, n), a.Width)
}

// Asr shifts a right arithmetically by n bits, treating the top bit as a
// sign bit.
func Asr(a BitVector, n uint) BitVector {
	if a.Width == 0 {
		return a
	}

	signed := wrapToWidth(a.V, a.Width)

	return NewBitVector(new(big.Int).Rsh(signed, n), a.Width)
}

// ZeroExtend widens a to a new, larger width, padding with zero bits.
func ZeroExtend(a BitVector, width uint) BitVector {
	return NewBitVector(a.V, width)
}

// SignExtend widens a to a new, larger width, replicating the sign bit.
func SignExtend(a BitVector, width uint) BitVector {
	signed := wrapToWidth(a.V, a.Width)

	return NewBitVector(signed, width)
}

// Concat concatenates bitvectors high-to-low: Concat(a,b) places a in the
// high bits and b in the low bits, with combined width a.Width+b.Width.
func Concat(a, b BitVector) BitVector {
	shifted := new(big.Int).Lsh(a.V, b.Width)
	combined := new(big.Int).Or(shifted, b.V)

	return NewBitVector(combined, a.Width+b.Width)
}

// Replicate concatenates n copies of a.
func Replicate(a BitVector, n uint) BitVector {
	if n == 0 {
		return NewBitVector(big.NewInt(0), 0)
	}

	result := a
	for i := uint(1); i < n; i++ {
		result = Concat(result, a)
	}

	return result
}

// GetSlice extracts w bits starting at bit index i (the canonical
// "low +: width" form all other slice syntaxes are normalized to by the
// bitslice-normalization transform pass).
func GetSlice(v BitVector, i, w uint) BitVector {
	shifted := new(big.Int).Rsh(v.V, i)
	return NewBitVector(shifted, w)
}

// SetSlice replaces w bits starting at bit index i of v with r, returning the
// updated bitvector.  Together with GetSlice this satisfies the round-trip
// law of spec.md §8: GetSlice(SetSlice(v,i,w,r),i,w) == r when the slice is
// in bounds.
func SetSlice(v BitVector, i, w uint, r BitVector) BitVector {
	clearMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))
	clearMask.Lsh(clearMask, i)
	clearMask.Not(clearMask)

	cleared := new(big.Int).And(v.V, clearMask)
	inserted := new(big.Int).Lsh(new(big.Int).And(r.V, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))), i)

	return NewBitVector(new(big.Int).Or(cleared, inserted), v.Width)
}

// EqualBitVector reports bitwise equality; widths must already be proven
// equal by the typechecker.
func EqualBitVector(a, b BitVector) bool {
	requireEqualWidth(a, b)
	return a.V.Cmp(b.V) == 0
}

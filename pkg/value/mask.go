package value

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Mask is a fixed-width pattern of set/clear/don't-care bits, written in ASL
// source as e.g. '10xx'.  Bits outside the care-mask are always zero in both
// sets, per spec.md §3's invariant.  Backed by bitset.BitSet rather than a
// hand-rolled bit loop: Care and Bits are each a BitSet of length Width, and
// equality-under-mask reduces to an intersection test.
type Mask struct {
	Bits  *bitset.BitSet
	Care  *bitset.BitSet
	Width uint
}

// NewMask constructs a Mask of the given width with every bit don't-care.
func NewMask(width uint) Mask {
	return Mask{Bits: bitset.New(width), Care: bitset.New(width), Width: width}
}

// SetBit marks bit i as cared-about with the given value.
func (m Mask) SetBit(i uint, v bool) {
	m.Care.Set(i)

	if v {
		m.Bits.Set(i)
	} else {
		m.Bits.Clear(i)
	}
}

// Kind implements Value.
func (Mask) Kind() string { return "mask" }

// String renders the mask the way ASL source would, most-significant bit
// first, with 'x' for don't-care positions.
func (m Mask) String() string {
	var sb strings.Builder

	sb.WriteByte('\'')

	for i := int(m.Width) - 1; i >= 0; i-- {
		switch {
		case !m.Care.Test(uint(i)):
			sb.WriteByte('x')
		case m.Bits.Test(uint(i)):
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}

	sb.WriteByte('\'')

	return sb.String()
}

// MatchBitVector reports whether every cared-about bit of m agrees with the
// corresponding bit of b.  Widths must match; mismatched widths are a
// programmer error caught earlier by the typechecker (width-homogeneous
// operator invariant, spec.md §3), hence the panic rather than an error
// return here.
func (m Mask) MatchBitVector(b BitVector) bool {
	if m.Width != b.Width {
		panic(fmt.Sprintf("mask width %d does not match bitvector width %d", m.Width, b.Width))
	}

	for i := uint(0); i < m.Width; i++ {
		if !m.Care.Test(i) {
			continue
		}

		bit := b.V.Bit(int(i)) == 1
		if bit != m.Bits.Test(i) {
			return false
		}
	}

	return true
}

// EqualUnderMask reports whether two masks agree on the intersection of
// their care-sets: for every bit cared about by both, the values must match.
func EqualUnderMask(a, b Mask) bool {
	if a.Width != b.Width {
		return false
	}

	shared := a.Care.Intersection(b.Care)

	for i, ok := shared.NextSet(0); ok; i, ok = shared.NextSet(i + 1) {
		if a.Bits.Test(i) != b.Bits.Test(i) {
			return false
		}
	}

	return true
}

package value

import (
	"math/big"
	"testing"
)

func TestSliceRoundTrip(t *testing.T) {
	v := NewBitVector(big.NewInt(0b1111_0000), 8)
	r := NewBitVector(big.NewInt(0b101), 3)

	updated := SetSlice(v, 2, 3, r)
	got := GetSlice(updated, 2, 3)

	if !EqualBitVector(got, r) {
		t.Errorf("round trip failed: got %s, want %s", got, r)
	}
}

func TestResizeIdentity(t *testing.T) {
	s := NewSintN(big.NewInt(-5), 8)

	if ResizeSintN(s, 8) != s {
		t.Errorf("resize to same width should be identity")
	}
}

func TestResizeRoundTrip(t *testing.T) {
	s := NewSintN(big.NewInt(7), 4)
	widened := ResizeSintN(s, 8)
	narrowed := ResizeSintN(widened, 4)

	if narrowed.V.Cmp(s.V) != 0 {
		t.Errorf("resize round trip failed: got %s want %s", narrowed.V, s.V)
	}
}

func TestCvtRoundTrip(t *testing.T) {
	i := NewInt(42)
	s := CvtIntSintN(i, 8)
	back := CvtSintNInt(s)

	if back.V.Cmp(i.V) != 0 {
		t.Errorf("cvt round trip failed: got %s want %s", back.V, i.V)
	}
}

func TestZRemSintN(t *testing.T) {
	a := NewSintN(big.NewInt(-5), 8)
	b := NewSintN(big.NewInt(3), 8)

	got := ZRemSintN(a, b)
	if got.V.Cmp(big.NewInt(-2)) != 0 {
		t.Errorf("asl_zrem_sintN(-5,3): got %s, want -2", got.V)
	}
}

func TestAlignSintN(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{12, 2, 12},
		{16, 2, 16},
		{15, 4, 12},
	}

	for _, c := range cases {
		a := NewSintN(big.NewInt(c.a), 8)
		b := NewSintN(big.NewInt(c.b), 8)

		got := AlignSintN(a, b)
		if got.V.Cmp(big.NewInt(c.want)) != 0 {
			t.Errorf("align(%d,%d): got %s, want %d", c.a, c.b, got.V, c.want)
		}
	}
}

func TestMaskMatch(t *testing.T) {
	m := NewMask(4)
	m.SetBit(3, true)
	m.SetBit(2, false)
	// bits 1,0 left don't-care

	matching := NewBitVector(big.NewInt(0b1000), 4)
	nonmatching := NewBitVector(big.NewInt(0b0100), 4)

	if !m.MatchBitVector(matching) {
		t.Errorf("expected mask to match %s", matching)
	}

	if m.MatchBitVector(nonmatching) {
		t.Errorf("expected mask not to match %s", nonmatching)
	}
}

func TestIsPow2(t *testing.T) {
	if !IsPow2(NewInt(8)) {
		t.Errorf("8 should be a power of two")
	}

	if IsPow2(NewInt(6)) {
		t.Errorf("6 should not be a power of two")
	}
}

func TestOrBitVectorHex(t *testing.T) {
	x := NewBitVector(big.NewInt(0b1100), 4)
	y := NewBitVector(big.NewInt(0b1010), 4)

	got := Or(x, y)
	if got.V.Int64() != 0xe {
		t.Errorf("Test('1100') OR Test('1010'): got %x, want e", got.V)
	}
}

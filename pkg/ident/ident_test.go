package ident

import "testing"

func TestEqualRequiresNameAndTag(t *testing.T) {
	a := WithTag("x", 1)
	b := WithTag("x", 2)
	c := WithTag("x", 1)

	if a.Equal(b) {
		t.Errorf("expected %v != %v", a, b)
	}

	if !a.Equal(c) {
		t.Errorf("expected %v == %v", a, c)
	}

	if !a.SameRoot(b) {
		t.Errorf("expected %v and %v to share a root", a, b)
	}
}

func TestSupplyProducesDistinctTags(t *testing.T) {
	s := NewSupply("tmp")
	seen := map[Ident]bool{}

	for i := 0; i < 10; i++ {
		id := s.Fresh()
		if seen[id] {
			t.Fatalf("duplicate identifier minted: %v", id)
		}

		seen[id] = true

		if id.Tag == 0 {
			t.Fatalf("fresh identifier %v has zero tag", id)
		}
	}
}

func TestDeriveSuffix(t *testing.T) {
	base := WithTag("F", 3)
	getter := base.Derive("#get")

	if getter.Name != "F#get" {
		t.Errorf("got %q", getter.Name)
	}

	if getter.Tag != base.Tag {
		t.Errorf("expected tag preserved, got %d", getter.Tag)
	}
}

func TestLocationMerge(t *testing.T) {
	a := NewLocation("f.asl", Position{1, 1}, Position{1, 5})
	b := NewLocation("f.asl", Position{2, 1}, Position{2, 9})

	m := a.Merge(b)
	if m.Start != (Position{1, 1}) || m.End != (Position{2, 9}) {
		t.Errorf("unexpected merge result: %+v", m)
	}

	if Unknown.Merge(a) != a {
		t.Errorf("merging Unknown should yield the other location")
	}
}

func TestTableInterning(t *testing.T) {
	tbl := NewTable()

	a := tbl.Intern("Foo")
	b := tbl.Intern("Foo")

	if a != b {
		t.Errorf("expected interned strings to be equal")
	}
}

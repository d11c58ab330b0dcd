// Package value implements ASL's primitive value domain: arbitrary-precision
// integers, bounded (two's-complement) integers, bitvectors, masks, strings,
// tuples, arrays, records and enumeration members, together with the
// operations used by constant folding (pkg/transform) and by the C-family
// emitter (pkg/emit) to print literals.
package value

import (
	"fmt"
	"math/big"

	"github.com/asl-lang/aslc/pkg/ident"
)

// Value is the sum type over every runtime representation ASL programs can
// manipulate (spec.md §3).
type Value interface {
	// Kind names the concrete alternative, for diagnostics and switch-like
	// dispatch without type assertions sprinkled everywhere.
	Kind() string
	// String renders the value the way ASL's own printer would.
	String() string
}

// Int is an arbitrary-precision signed integer.
type Int struct {
	V *big.Int
}

// NewInt constructs an Int from an int64.
func NewInt(v int64) Int { return Int{V: big.NewInt(v)} }

// Kind implements Value.
func (Int) Kind() string { return "integer" }

// String implements Value.
func (i Int) String() string { return i.V.String() }

// SintN is a bounded signed two's-complement integer of a fixed bit width.
type SintN struct {
	V     *big.Int
	Width uint
}

// Kind implements Value.
func (SintN) Kind() string { return "sintN" }

// String implements Value.
func (s SintN) String() string { return fmt.Sprintf("i%d'd%s", s.Width, s.V.String()) }

// BitVector is a fixed-width vector of bits represented as a non-negative
// integer strictly less than 2^Width.
type BitVector struct {
	V     *big.Int
	Width uint
}

// Kind implements Value.
func (BitVector) Kind() string { return "bits" }

// String implements Value.
func (b BitVector) String() string {
	return fmt.Sprintf("%d'x%s", b.Width, b.V.Text(16))
}

// Str is an ASL string literal value.
type Str struct{ V string }

// Kind implements Value.
func (Str) Kind() string { return "string" }

// String implements Value.
func (s Str) String() string { return fmt.Sprintf("%q", s.V) }

// Tuple is an ordered, fixed-arity collection of heterogeneously-typed
// values.
type Tuple struct{ Elems []Value }

// Kind implements Value.
func (Tuple) Kind() string { return "tuple" }

// String implements Value.
func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}

		s += e.String()
	}

	return s + ")"
}

// Array is a homogeneously-typed, fixed-length collection indexed either by
// an integer or by an enumeration member.
type Array struct{ Elems []Value }

// Kind implements Value.
func (Array) Kind() string { return "array" }

// String implements Value.
func (a Array) String() string {
	s := "["
	for i, e := range a.Elems {
		if i > 0 {
			s += ", "
		}

		s += e.String()
	}

	return s + "]"
}

// Record maps field identifier to value.  Field sets always match the
// record type's declared fields exactly, in declaration order
// (spec.md §3 invariants).
type Record struct {
	Fields []ident.Ident
	Values []Value
}

// Kind implements Value.
func (Record) Kind() string { return "record" }

// String implements Value.
func (r Record) String() string {
	s := "{"
	for i, f := range r.Fields {
		if i > 0 {
			s += ", "
		}

		s += f.String() + " = " + r.Values[i].String()
	}

	return s + "}"
}

// Enum is a single member of a declared enumeration type.
type Enum struct {
	Type   ident.Ident
	Member ident.Ident
}

// Kind implements Value.
func (Enum) Kind() string { return "enum" }

// String implements Value.
func (e Enum) String() string { return e.Member.String() }

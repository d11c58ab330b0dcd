// Package ident provides interned identifiers and source locations used
// throughout the compiler's abstract syntax tree.
package ident

import "fmt"

// Ident is an interned name plus a disambiguation tag.  Two identifiers
// compare equal only when both their name and tag match.  A zero tag denotes
// the name as originally written by the user. Overload resolution in the
// typechecker does not assign tags: a resolved call carries the tag its
// chosen declaration was written with (zero for user code), so overloads
// sharing a name are not told apart by tag. The monomorphization pass in pkg/transform gives each function clone
// it creates a fresh tag of its own.
type Ident struct {
	Name string
	Tag  uint64
}

// New constructs an identifier from a user-written name, with tag zero.
func New(name string) Ident {
	return Ident{Name: name, Tag: 0}
}

// WithTag constructs an identifier from a name and an explicit tag, e.g. one
// produced by a Supply.
func WithTag(name string, tag uint64) Ident {
	return Ident{Name: name, Tag: tag}
}

// Derive produces a new identifier by appending a fixed suffix to this one's
// name, preserving the tag.  Used for getter/setter markers.
func (id Ident) Derive(suffix string) Ident {
	return Ident{Name: id.Name + suffix, Tag: id.Tag}
}

// Equal compares two identifiers by (name, tag).
func (id Ident) Equal(other Ident) bool {
	return id.Name == other.Name && id.Tag == other.Tag
}

// SameRoot compares two identifiers by name only, ignoring tag.
func (id Ident) SameRoot(other Ident) bool {
	return id.Name == other.Name
}

// String renders the identifier for diagnostics; tagged identifiers show
// their tag so that overload-resolution output is unambiguous.
func (id Ident) String() string {
	if id.Tag == 0 {
		return id.Name
	}

	return fmt.Sprintf("%s#%d", id.Name, id.Tag)
}

// Supply is a monotonically increasing counter that produces fresh tagged
// identifiers sharing a caller-supplied prefix.  Each Supply counts on its
// own, so tags are unique only among the identifiers one Supply mints.
type Supply struct {
	prefix  string
	counter uint64
}

// NewSupply constructs a name supply which mints identifiers of the form
// "<prefix><n>" with a fresh tag on every call to Fresh.
func NewSupply(prefix string) *Supply {
	return &Supply{prefix: prefix}
}

// Fresh mints a new identifier with a fresh tag, named after this supply's
// prefix and the current counter value.
func (s *Supply) Fresh() Ident {
	s.counter++
	return Ident{Name: fmt.Sprintf("%s%d", s.prefix, s.counter), Tag: s.counter}
}

// FreshTag mints a fresh tag only, to be attached to an existing name (the
// base name is kept, only the tag changes).
func (s *Supply) FreshTag() uint64 {
	s.counter++
	return s.counter
}

// Reset zeroes the counter, so the next Fresh or FreshTag call starts again
// at 1.
func (s *Supply) Reset() {
	s.counter = 0
}

package ident

import "sync"

// Table interns identifier names for a single compilation session.  Unlike a
// package-level global, a Table is a standalone value that each caller
// constructs with NewTable, so separate tables never share interning state;
// internal/session's Session does not hold one.
type Table struct {
	mu      sync.Mutex
	strings map[string]string
}

// NewTable constructs an empty interning table.
func NewTable() *Table {
	return &Table{strings: make(map[string]string)}
}

// Intern returns the canonical copy of name, so that repeated parses of the
// same identifier share one backing string.
func (t *Table) Intern(name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.strings[name]; ok {
		return s
	}

	t.strings[name] = name

	return name
}

// New constructs an identifier using this table's interned copy of name.
func (t *Table) New(name string) Ident {
	return New(t.Intern(name))
}

package ident

import "fmt"

// Position identifies a single point in a source file by line and column,
// both counting from 1.
type Position struct {
	Line   int
	Column int
}

// String renders a position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is either Unknown or a range within a named source file.  Every
// AST node that can fail typechecking carries a Location (spec.md §3).
type Location struct {
	File     string
	Start    Position
	End      Position
	isKnown  bool
}

// Unknown is the location used for synthetic nodes introduced by the
// compiler itself (e.g. inserted runtime checks before a source span can be
// attributed, or nodes built purely in tests).
var Unknown = Location{}

// NewLocation constructs a known location spanning [start,end) in file.
func NewLocation(file string, start, end Position) Location {
	return Location{File: file, Start: start, End: end, isKnown: true}
}

// IsKnown reports whether this location refers to an actual source range.
func (l Location) IsKnown() bool {
	return l.isKnown
}

// Merge produces the smallest location spanning both l and other.  If either
// is Unknown, the other is returned unchanged; merging two Unknown locations
// yields Unknown.
func (l Location) Merge(other Location) Location {
	if !l.isKnown {
		return other
	} else if !other.isKnown {
		return l
	}

	start := l.Start
	if other.Start.Line < start.Line || (other.Start.Line == start.Line && other.Start.Column < start.Column) {
		start = other.Start
	}

	end := l.End
	if other.End.Line > end.Line || (other.End.Line == end.Line && other.End.Column > end.Column) {
		end = other.End
	}

	file := l.File
	if file == "" {
		file = other.File
	}

	return NewLocation(file, start, end)
}

// String renders a location as "file:startLine:startCol-endLine:endCol", or
// "<unknown>" when the location carries no source range.
func (l Location) String() string {
	if !l.isKnown {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%s-%s", l.File, l.Start, l.End)
}

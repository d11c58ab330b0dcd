package emit

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/ident"
)

// reserved is the set of C/C++ reserved words an emitted identifier might
// collide with. Renaming happens only at print time (CName); the AST itself
// is never touched, per spec.md §4.9's "reserved-word renaming" contract.
var reserved = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true,
	"else": true, "enum": true, "extern": true, "float": true, "for": true,
	"goto": true, "if": true, "inline": true, "int": true, "long": true,
	"register": true, "restrict": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "struct": true,
	"switch": true, "typedef": true, "union": true, "unsigned": true,
	"void": true, "volatile": true, "while": true, "_Bool": true,
	"_Complex": true, "_Imaginary": true, "_Generic": true, "_Atomic": true,
	"_BitInt": true, "_Static_assert": true, "bool": true, "true": true,
	"false": true, "class": true, "namespace": true, "template": true,
	"new": true, "delete": true, "this": true, "virtual": true,
	"public": true, "private": true, "protected": true, "try": true,
	"catch": true, "throw": true, "using": true, "typename": true,
}

// CName renders an ident.Ident as a C identifier: a tagged name (produced by
// overload resolution or monomorphization) gets its tag appended so sibling
// overloads/monomorphs never collide; a name colliding with a C/C++ reserved
// word is prefixed with __asl_.
func CName(id ident.Ident) string {
	name := id.Name
	if reserved[name] {
		name = "__asl_" + name
	}

	if id.Tag != 0 {
		return fmt.Sprintf("%s_%d", name, id.Tag)
	}

	return name
}

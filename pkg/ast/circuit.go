package ast

// Circuit is the root of a typechecked (or pre-typechecked) compilation
// unit: the flat ordered list of top-level declarations produced by
// parsing one or more source files (after any module-inclusion handling
// done by the CLI collaborator, which concatenates files per the ASL_PATH
// search order before parsing — see spec.md §6).
type Circuit struct {
	Decls []Decl
}

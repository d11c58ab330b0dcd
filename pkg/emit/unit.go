// Package emit renders a transformed AST (the output of pkg/transform's
// Default() pipeline) as the four kinds of C-family file spec.md §4.9
// names, against a selected pkg/backend.Runtime. Grounded on the teacher's
// pkg/cmd/corset command wiring, which writes several named output files
// per invocation (binfile, lt-trace, debug dumps) from one in-memory
// schema — generalized here to types/exceptions/vars/funs.
package emit

import "github.com/asl-lang/aslc/pkg/ast"

// Unit buckets a flat declaration list by the C file each declaration's
// emission belongs to.
type Unit struct {
	Records    []*ast.RecordDecl
	Exceptions []*ast.ExceptionDecl
	Consts     []*ast.ConstDecl
	Globals    []*ast.VarDeclGlobal
	Funcs      []*ast.FuncDef
}

// NewUnit buckets decls into a Unit. Declarations the emitter does not
// itself render (builtin/forward/operator/type-abbreviation/enum decls,
// which the typechecker and pkg/transform already fully resolved against)
// are intentionally skipped here.
func NewUnit(decls []ast.Decl) *Unit {
	u := &Unit{}

	for _, d := range decls {
		switch n := d.(type) {
		case *ast.RecordDecl:
			u.Records = append(u.Records, n)
		case *ast.ExceptionDecl:
			u.Exceptions = append(u.Exceptions, n)
		case *ast.ConstDecl:
			u.Consts = append(u.Consts, n)
		case *ast.VarDeclGlobal:
			u.Globals = append(u.Globals, n)
		case *ast.FuncDef:
			u.Funcs = append(u.Funcs, n)
		}
	}

	return u
}

// Options configures asl2c's emission, matching its CLI surface (spec.md
// §6) one field per flag.
type Options struct {
	Backend            string // --backend {fallback|c23|ac}
	OutputDir          string // --output-dir
	Basename           string // --basename
	NumCFiles          int    // --num-c-files
	FFIExports         []string
	LineInfo           bool   // --line-info
	ThreadLocalPointer string // --thread-local-pointer <name>, "" disables wrapping
}

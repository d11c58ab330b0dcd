package emit

import (
	"fmt"
	"strings"

	"github.com/asl-lang/aslc/pkg/ast"
)

// FunSources renders one or more <base>_funs[_i].c files, splitting
// p.Unit.Funcs across p.Opts.NumCFiles chunks of roughly equal size while
// preserving declaration order within each chunk (spec.md §4.9's
// "Splitting" contract). NumCFiles <= 1 produces a single file.
func (p *Printer) FunSources(varsHeader, excHeader string) ([]string, error) {
	n := p.Opts.NumCFiles
	if n < 1 {
		n = 1
	}

	if n > len(p.Unit.Funcs) {
		n = len(p.Unit.Funcs)
	}

	if n == 0 {
		n = 1
	}

	chunks := splitEvenly(p.Unit.Funcs, n)
	out := make([]string, len(chunks))

	for i, chunk := range chunks {
		src, err := p.funSource(chunk, varsHeader, excHeader)
		if err != nil {
			return nil, err
		}

		out[i] = src
	}

	return out, nil
}

func splitEvenly(funcs []*ast.FuncDef, n int) [][]*ast.FuncDef {
	if n <= 1 {
		return [][]*ast.FuncDef{funcs}
	}

	chunks := make([][]*ast.FuncDef, n)
	base, extra := len(funcs)/n, len(funcs)%n

	pos := 0

	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}

		chunks[i] = funcs[pos : pos+size]
		pos += size
	}

	return chunks
}

func (p *Printer) funSource(funcs []*ast.FuncDef, varsHeader, excHeader string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "#include %q\n#include %q\n\n", varsHeader, excHeader)

	ffi := make(map[string]bool, len(p.Opts.FFIExports))
	for _, name := range p.Opts.FFIExports {
		ffi[name] = true
	}

	for _, f := range funcs {
		if err := p.function(&b, f); err != nil {
			return "", err
		}

		if ffi[f.Name.Name] {
			if err := p.ffiWrapper(&b, f); err != nil {
				return "", err
			}
		}
	}

	return b.String(), nil
}

func (p *Printer) function(b *strings.Builder, f *ast.FuncDef) error {
	ret, err := p.cType(f.ReturnType)
	if err != nil {
		return err
	}

	params, err := p.paramList(f.Params)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "%s %s(%s) {\n", ret, CName(f.Name), params)

	p.indent = 1
	p.catchLabel = ""

	needsCatch := funcMayThrow(f)
	if needsCatch {
		p.catchLabel = "__asl_fn_catch"
	}

	body, err := p.Stmts(f.Body)
	if err != nil {
		return err
	}

	for _, line := range body {
		fmt.Fprintln(b, line)
	}

	if needsCatch {
		fmt.Fprintf(b, "%s:;\n", p.catchLabel)
	}

	fmt.Fprintf(b, "}\n\n")

	p.indent = 0

	return nil
}

func (p *Printer) paramList(params []ast.Param) (string, error) {
	parts := make([]string, len(params))

	for i, prm := range params {
		ty, err := p.cType(prm.Type)
		if err != nil {
			return "", err
		}

		parts[i] = fmt.Sprintf("%s %s", ty, CName(prm.Name))
	}

	return strings.Join(parts, ", "), nil
}

func funcMayThrow(f *ast.FuncDef) bool { return f.Throws != ast.NoThrow }

// ffiWrapper emits a plain-C-callable wrapper for a function named in the
// FFI export list: it is named `<C name>_ffi` (not the function's own
// name, which stays on the ASL-tagged entry), takes and returns int64_t
// FFI representations, and its body delegates to the ASL-tagged entry.
func (p *Printer) ffiWrapper(b *strings.Builder, f *ast.FuncDef) error {
	sig := make([]string, len(f.Params))
	args := make([]string, len(f.Params))

	for i, prm := range f.Params {
		sig[i] = fmt.Sprintf("int64_t %s", CName(prm.Name))

		w := p.valueType(prm.Type)
		args[i] = p.Runtime.FFIFromC(CName(prm.Name), w.Width)
	}

	call := fmt.Sprintf("%s(%s)", CName(f.Name), strings.Join(args, ", "))
	params := strings.Join(sig, ", ")

	if params == "" {
		params = "void"
	}

	if f.ReturnType == nil {
		fmt.Fprintf(b, "void %s_ffi(%s) {\n    %s;\n}\n\n", CName(f.Name), params, call)
		return nil
	}

	retW := p.valueType(f.ReturnType)

	fmt.Fprintf(b, "int64_t %s_ffi(%s) {\n    return %s;\n}\n\n",
		CName(f.Name), params, p.Runtime.FFIToC(call, retW.Width))

	return nil
}

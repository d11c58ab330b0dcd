package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/backend"
)

// Result names the files Emit wrote, in the order spec.md §6's "Persisted
// state" lists them: one header per (types, exceptions, vars), at least one
// source per (exceptions, vars, funs).
type Result struct {
	TypesHeader      string
	ExceptionsHeader string
	ExceptionsSource string
	VarsHeader       string
	VarsSource       string
	FunSources       []string
}

// Emit renders decls (the output of pkg/transform's pipeline) into the four
// C-family file kinds under opts.OutputDir, against the backend named by
// opts.Backend, and returns the paths written.
func Emit(decls []ast.Decl, opts Options) (*Result, error) {
	rt, err := backend.New(backend.Kind(opts.Backend))
	if err != nil {
		return nil, err
	}

	p := &Printer{Unit: NewUnit(decls), Runtime: rt, Opts: opts}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("emit: creating output directory: %w", err)
	}

	typesPath := p.path("types.h")
	typesBody, err := p.TypesHeader()
	if err != nil {
		return nil, err
	}

	if err := p.write(typesPath, rt.FileHeader()+typesBody); err != nil {
		return nil, err
	}

	excHeaderPath := p.path("exceptions.h")
	excHeaderBody, err := p.ExceptionsHeader()
	if err != nil {
		return nil, err
	}

	if err := p.write(excHeaderPath, banner(opts.Basename, "exceptions")+excHeaderBody); err != nil {
		return nil, err
	}

	excSourcePath := p.path("exceptions.c")
	if err := p.write(excSourcePath, rt.FileHeader()+p.ExceptionsSource()); err != nil {
		return nil, err
	}

	varsHeaderPath := p.path("vars.h")
	varsHeaderBody, err := p.VarsHeader()
	if err != nil {
		return nil, err
	}

	if err := p.write(varsHeaderPath, banner(opts.Basename, "vars")+varsHeaderBody); err != nil {
		return nil, err
	}

	varsSourcePath := p.path("vars.c")
	varsSourceBody, err := p.VarsSource(filepath.Base(varsHeaderPath))
	if err != nil {
		return nil, err
	}

	if err := p.write(varsSourcePath, rt.FileHeader()+varsSourceBody); err != nil {
		return nil, err
	}

	funBodies, err := p.FunSources(filepath.Base(varsHeaderPath), filepath.Base(excHeaderPath))
	if err != nil {
		return nil, err
	}

	funPaths := make([]string, len(funBodies))

	for i, body := range funBodies {
		name := "funs.c"
		if len(funBodies) > 1 {
			name = fmt.Sprintf("funs_%d.c", i)
		}

		funPaths[i] = p.path(name)

		if err := p.write(funPaths[i], rt.FileHeader()+body); err != nil {
			return nil, err
		}
	}

	return &Result{
		TypesHeader:      typesPath,
		ExceptionsHeader: excHeaderPath,
		ExceptionsSource: excSourcePath,
		VarsHeader:       varsHeaderPath,
		VarsSource:       varsSourcePath,
		FunSources:       funPaths,
	}, nil
}

func (p *Printer) path(suffix string) string {
	return filepath.Join(p.Opts.OutputDir, fmt.Sprintf("%s_%s", p.Opts.Basename, suffix))
}

func (p *Printer) write(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

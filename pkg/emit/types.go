package emit

import (
	"fmt"
	"strings"

	"github.com/asl-lang/aslc/pkg/ast"
)

// TypesHeader renders <base>_types.h: one struct per record declaration,
// topologically sorted so a record embedding another by value is declared
// after its dependency (spec.md §4.9's "declarations ordered by topological
// sort").
func (p *Printer) TypesHeader() (string, error) {
	ordered, err := topoSortRecords(p.Unit.Records)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	guard := strings.ToUpper(p.Opts.Basename) + "_TYPES_H"
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)

	for _, rd := range ordered {
		if err := p.recordStruct(&b, rd); err != nil {
			return "", err
		}
	}

	fmt.Fprintf(&b, "#endif /* %s */\n", guard)

	return b.String(), nil
}

func (p *Printer) recordStruct(b *strings.Builder, rd *ast.RecordDecl) error {
	fmt.Fprintf(b, "struct %s {\n", CName(rd.Name))

	for _, f := range rd.Fields {
		ty, err := p.cType(f.Type)
		if err != nil {
			return err
		}

		suffix, err := p.arraySuffix(f.Type)
		if err != nil {
			return err
		}

		fmt.Fprintf(b, "    %s %s%s;\n", ty, CName(f.Name), suffix)
	}

	fmt.Fprintf(b, "};\n\n")

	return nil
}

// recordDeps returns the names of other declared record types n's fields
// reference directly (i.e. by value, not just by pointer/array-of), the
// dependency edges topoSortRecords sorts against.
func recordDeps(rd *ast.RecordDecl) []string {
	var deps []string

	for _, f := range rd.Fields {
		if nt, ok := f.Type.(*ast.NamedType); ok {
			deps = append(deps, nt.Name.Name)
		}
	}

	return deps
}

// topoSortRecords orders records so each one follows every record its
// fields embed by value, detecting cycles (which would require a pointer
// indirection ASL's value semantics don't express) as an Unimplemented.
func topoSortRecords(records []*ast.RecordDecl) ([]*ast.RecordDecl, error) {
	byName := make(map[string]*ast.RecordDecl, len(records))
	for _, rd := range records {
		byName[rd.Name.Name] = rd
	}

	var (
		out     []*ast.RecordDecl
		visited = map[string]int{} // 0 unvisited, 1 in-progress, 2 done
	)

	var visit func(rd *ast.RecordDecl) error
	visit = func(rd *ast.RecordDecl) error {
		switch visited[rd.Name.Name] {
		case 2:
			return nil
		case 1:
			return &Unimplemented{What: fmt.Sprintf("recursive record type %s (requires a pointer indirection)", rd.Name.Name)}
		}

		visited[rd.Name.Name] = 1

		for _, dep := range recordDeps(rd) {
			if depDecl, ok := byName[dep]; ok {
				if err := visit(depDecl); err != nil {
					return err
				}
			}
		}

		visited[rd.Name.Name] = 2
		out = append(out, rd)

		return nil
	}

	for _, rd := range records {
		if err := visit(rd); err != nil {
			return nil, err
		}
	}

	return out, nil
}

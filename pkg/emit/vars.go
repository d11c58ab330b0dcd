package emit

import (
	"fmt"
	"strings"
)

// VarsHeader renders <base>_vars.h: an extern declaration for each global,
// letting every _funs[_i].c translation unit reference the same storage.
func (p *Printer) VarsHeader() (string, error) {
	var b strings.Builder

	guard := strings.ToUpper(p.Opts.Basename) + "_VARS_H"
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)

	for _, g := range p.Unit.Globals {
		ty, err := p.cType(g.Type)
		if err != nil {
			return "", err
		}

		suffix, err := p.arraySuffix(g.Type)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "extern %s %s%s;\n", ty, CName(g.Name), suffix)
	}

	for _, c := range p.Unit.Consts {
		ty, err := p.cType(c.Type)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "extern const %s %s;\n", ty, CName(c.Name))
	}

	fmt.Fprintf(&b, "\n#endif /* %s */\n", guard)

	return b.String(), nil
}

// VarsSource renders <base>_vars.c: the single definition backing each
// extern declared in the header, initialized from the global's declared
// initializer (or zero-valued if it has none).
func (p *Printer) VarsSource(header string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "#include %q\n\n", header)

	for _, g := range p.Unit.Globals {
		ty, err := p.cType(g.Type)
		if err != nil {
			return "", err
		}

		suffix, err := p.arraySuffix(g.Type)
		if err != nil {
			return "", err
		}

		if g.Init == nil {
			fmt.Fprintf(&b, "%s %s%s;\n", ty, CName(g.Name), suffix)
			continue
		}

		init, err := p.Expr(g.Init)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "%s %s%s = %s;\n", ty, CName(g.Name), suffix, init)
	}

	for _, c := range p.Unit.Consts {
		ty, err := p.cType(c.Type)
		if err != nil {
			return "", err
		}

		val, err := p.Expr(c.Value)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "const %s %s = %s;\n", ty, CName(c.Name), val)
	}

	return b.String(), nil
}

package emit

import (
	"fmt"
	"strings"
)

// ExceptionsHeader renders <base>_exceptions.h: the tagged-union wire
// format spec.md §6 specifies verbatim — ASL_exception_tag enum, one struct
// per exception record, a union aliasing all of them, and the declaration
// of the single process-wide instance carrying the current exception.
func (p *Printer) ExceptionsHeader() (string, error) {
	var b strings.Builder

	guard := strings.ToUpper(p.Opts.Basename) + "_EXCEPTIONS_H"
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)

	fmt.Fprintf(&b, "enum ASL_exception_tag {\n    ASL_no_exception,\n")

	for _, ed := range p.Unit.Exceptions {
		fmt.Fprintf(&b, "    tag_%s,\n", CName(ed.Name))
	}

	fmt.Fprintf(&b, "};\n\n")

	for _, ed := range p.Unit.Exceptions {
		fmt.Fprintf(&b, "struct %s {\n", CName(ed.Name))

		for _, f := range ed.Fields {
			ty, err := p.cType(f.Type)
			if err != nil {
				return "", err
			}

			fmt.Fprintf(&b, "    %s %s;\n", ty, CName(f.Name))
		}

		fmt.Fprintf(&b, "};\n\n")
	}

	fmt.Fprintf(&b, "union ASL_exception_payload {\n")

	for _, ed := range p.Unit.Exceptions {
		fmt.Fprintf(&b, "    struct %s as_%s;\n", CName(ed.Name), CName(ed.Name))
	}

	fmt.Fprintf(&b, "};\n\n")

	// The state struct repeats the union's members directly rather than
	// nesting the union, so ASL_exception.as_Foo needs no extra ".payload"
	// indirection at every throw/catch site.
	fmt.Fprintf(&b, "struct ASL_exception_state {\n    enum ASL_exception_tag tag;\n")

	for _, ed := range p.Unit.Exceptions {
		fmt.Fprintf(&b, "    struct %s as_%s;\n", CName(ed.Name), CName(ed.Name))
	}

	fmt.Fprintf(&b, "};\n\n")

	fmt.Fprintf(&b, "extern struct ASL_exception_state ASL_exception;\n\n")
	fmt.Fprintf(&b, "#endif /* %s */\n", guard)

	return b.String(), nil
}

// ExceptionsSource renders <base>_exceptions.c: the single definition of
// the process-wide exception-state variable.
func (p *Printer) ExceptionsSource() string {
	return fmt.Sprintf("struct ASL_exception_state ASL_exception = { .tag = ASL_no_exception };\n")
}

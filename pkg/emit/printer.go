package emit

import (
	"fmt"
	"strings"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/backend"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/value"
)

// Printer renders a function body's statements and expressions as C source,
// against one selected backend.Runtime. One Printer is reused across every
// function in a translation unit; catchLabel holds the label that a throw
// or a failed call jumps to at the current point of rendering, for
// exception-lowering jumps (spec.md §4.9).
type Printer struct {
	Unit    *Unit
	Runtime backend.Runtime
	Opts    Options

	catchLabel   string
	indent       int
	labelCounter uint64
}

func (p *Printer) line(format string, args ...any) string {
	return strings.Repeat("    ", p.indent) + fmt.Sprintf(format, args...)
}

// cType renders an ast.Type as the C type backing it, against p.Runtime.
func (p *Printer) cType(t ast.Type) (string, error) {
	switch n := t.(type) {
	case nil:
		return "void", nil
	case *ast.IntegerType:
		return p.Runtime.TypeName(backend.Int()), nil
	case *ast.BitsType:
		w, ok := literalWidth(n.Width)
		if !ok {
			return "", &Unimplemented{What: "bits(N) with a non-literal width at emission time"}
		}

		return p.Runtime.TypeName(backend.Bits(w)), nil
	case *ast.NamedType:
		if n.Name.Name == "sintN" && len(n.Args) == 1 {
			w, ok := literalWidth(n.Args[0])
			if !ok {
				return "", &Unimplemented{What: "sintN with a non-literal width at emission time"}
			}

			return p.Runtime.TypeName(backend.SintN(w)), nil
		}

		if rd := p.findRecord(n.Name.Name); rd != nil {
			return "struct " + CName(rd.Name), nil
		}

		if ed := p.findException(n.Name.Name); ed != nil {
			return "struct " + CName(ed.Name), nil
		}

		return CName(n.Name), nil
	case *ast.ArrayType:
		return p.cType(n.Elem)
	case *ast.ForwardType:
		return "struct " + CName(n.Name), nil
	case *ast.TypeOfType:
		return "", &Unimplemented{What: "typeof(...) reaching the emitter"}
	default:
		return "", &Unimplemented{What: fmt.Sprintf("type %T", t)}
	}
}

// arraySuffix returns the "[N]" declarator suffix for an ArrayType's
// literal index size, or "" for a non-array type.
func (p *Printer) arraySuffix(t ast.Type) (string, error) {
	at, ok := t.(*ast.ArrayType)
	if !ok {
		return "", nil
	}

	n, ok := literalWidth(at.IndexSize)
	if !ok {
		return "", &Unimplemented{What: "array type with a non-literal size at emission time"}
	}

	return fmt.Sprintf("[%d]", n), nil
}

func literalWidth(e ast.Expr) (backend.Width, bool) {
	if e == nil {
		return 0, false
	}

	v, ok := value.Fold(e)
	if !ok || !v.IsInt64() {
		return 0, false
	}

	return backend.Width(v.Int64()), true
}

func (p *Printer) findRecord(name string) *ast.RecordDecl {
	for _, rd := range p.Unit.Records {
		if rd.Name.Name == name {
			return rd
		}
	}

	return nil
}

func (p *Printer) findException(name string) *ast.ExceptionDecl {
	for _, ed := range p.Unit.Exceptions {
		if ed.Name.Name == name {
			return ed
		}
	}

	return nil
}

func (p *Printer) valueType(t ast.Type) backend.ValueType {
	switch n := t.(type) {
	case *ast.BitsType:
		w, _ := literalWidth(n.Width)
		return backend.Bits(w)
	case *ast.NamedType:
		if n.Name.Name == "sintN" && len(n.Args) == 1 {
			w, _ := literalWidth(n.Args[0])
			return backend.SintN(w)
		}
	}

	return backend.Int()
}

// Expr renders e as a single C expression.
func (p *Printer) Expr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.LitInt:
		return p.Runtime.LiteralInt(n.Value.String()), nil
	case *ast.LitBits:
		return p.Runtime.LiteralBits(n.Width, n.Value.String()), nil
	case *ast.LitMask:
		return "", &Unimplemented{What: "mask literal reaching the emitter (expected lowering by case-lower)"}
	case *ast.LitString:
		return fmt.Sprintf("%q", n.Value), nil
	case *ast.LitBool:
		if n.Value {
			return "true", nil
		}

		return "false", nil
	case *ast.Var:
		return CName(resolvedName(n)), nil
	case *ast.Field:
		rec, err := p.Expr(n.Record)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s.%s", rec, CName(n.Name)), nil
	case *ast.Index:
		arr, err := p.Expr(n.Array)
		if err != nil {
			return "", err
		}

		key, err := p.Expr(n.Key)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s[%s]", arr, key), nil
	case *ast.Slice:
		if n.Kind != ast.SliceLowWidth {
			return "", &Unimplemented{What: "non-canonical slice reaching the emitter (expected lowering by bitslice-normalize)"}
		}

		target, err := p.Expr(n.Target)
		if err != nil {
			return "", err
		}

		lo, err := p.Expr(n.Index)
		if err != nil {
			return "", err
		}

		w, ok := literalWidth(n.Width)
		if !ok {
			return "", &Unimplemented{What: "bitslice with a non-literal width at emission time"}
		}

		return p.Runtime.SliceGet(target, lo, w), nil
	case *ast.RecordLit:
		ty, err := p.cType(n.Type)
		if err != nil {
			return "", err
		}

		parts := make([]string, len(n.Fields))

		for i, f := range n.Fields {
			v, err := p.Expr(n.Values[i])
			if err != nil {
				return "", err
			}

			parts[i] = fmt.Sprintf(".%s = %s", CName(f), v)
		}

		return fmt.Sprintf("(%s){%s}", ty, strings.Join(parts, ", ")), nil
	case *ast.Cond:
		return p.condExpr(n)
	case *ast.Let:
		return "", &Unimplemented{What: "let-expression reaching the emitter (expected lowering by let-hoist)"}
	case *ast.AssertIn:
		body, err := p.Expr(n.Body)
		if err != nil {
			return "", err
		}

		return body, nil
	case *ast.TypedCall:
		return p.call(n)
	case *ast.TupleExpr:
		return "", &Unimplemented{What: "tuple literal reaching the emitter (expected lowering by tuple-eliminate)"}
	case *ast.Concat:
		return p.concat(n)
	case *ast.UnaryOp:
		arg, err := p.Expr(n.Arg)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("(%s%s)", n.Op, arg), nil
	case *ast.BinaryOp:
		l, err := p.Expr(n.Left)
		if err != nil {
			return "", err
		}

		r, err := p.Expr(n.Right)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("(%s %s %s)", l, n.Op, r), nil
	case *ast.AsConstraint:
		return p.Expr(n.Target)
	case *ast.AsType:
		target, err := p.Expr(n.Target)
		if err != nil {
			return "", err
		}

		from := p.valueType(n.Target.Type())
		to := p.valueType(n.AsT)

		return p.Runtime.Convert(from, to, target), nil
	case *ast.ArrayInit:
		if n.Repeat != nil {
			return "", &Unimplemented{What: "repeated array initializer reaching the emitter"}
		}

		ty, err := p.cType(n.Type())
		if err != nil {
			return "", err
		}

		parts := make([]string, len(n.Elems))

		for i, el := range n.Elems {
			v, err := p.Expr(el)
			if err != nil {
				return "", err
			}

			parts[i] = v
		}

		return fmt.Sprintf("(%s[]){%s}", ty, strings.Join(parts, ", ")), nil
	case *ast.UnknownOfType:
		ty, err := p.cType(n.T)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("((%s){0})", ty), nil
	case *ast.PatternIn:
		return "", &Unimplemented{What: "pattern-match expression reaching the emitter (expected lowering by case-lower)"}
	case *ast.With:
		return "", &Unimplemented{What: "with-expression reaching the emitter (expected lowering by desugar)"}
	case *ast.MultiField:
		return "", &Unimplemented{What: "multi-field access reaching the emitter (expected lowering by desugar)"}
	case *ast.UntypedCall:
		return "", &Unimplemented{What: "unresolved call reaching the emitter (expected resolution by typecheck)"}
	default:
		return "", &Unimplemented{What: fmt.Sprintf("expression %T", e)}
	}
}

// resolvedName prefers the typechecker-resolved binding (Resolved) over the
// surface name, falling back to the surface name for a Var that somehow
// reached the emitter unresolved (should not happen post-typecheck, but a
// tagged fallback is still safer than an empty identifier).
func resolvedName(v *ast.Var) ident.Ident {
	if v.Resolved.Name != "" {
		return v.Resolved
	}

	return v.Name
}

func (p *Printer) condExpr(n *ast.Cond) (string, error) {
	if len(n.Arms) == 0 {
		return p.Expr(n.Else)
	}

	cond, err := p.Expr(n.Arms[0].Cond)
	if err != nil {
		return "", err
	}

	then, err := p.Expr(n.Arms[0].Then)
	if err != nil {
		return "", err
	}

	rest := &ast.Cond{Arms: n.Arms[1:], Else: n.Else}

	tail, err := p.condExpr(rest)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("(%s ? %s : %s)", cond, then, tail), nil
}

func (p *Printer) concat(n *ast.Concat) (string, error) {
	args := make([]string, 0, len(n.Elems)*2)

	var total backend.Width

	for _, el := range n.Elems {
		v, err := p.Expr(el.Value)
		if err != nil {
			return "", err
		}

		ew, ok := literalWidth(el.Width)
		if !ok {
			return "", &Unimplemented{What: "concatenation with a non-literal element width"}
		}

		args = append(args, v, fmt.Sprintf("%d", ew))
		total += ew
	}

	return p.Runtime.BitsOp("concat", total, args...), nil
}

func (p *Printer) call(n *ast.TypedCall) (string, error) {
	args := make([]string, 0, len(n.Args))

	for _, a := range n.Args {
		v, err := p.Expr(a)
		if err != nil {
			return "", err
		}

		args = append(args, v)
	}

	call := fmt.Sprintf("%s(%s)", CName(n.Callee), strings.Join(args, ", "))

	if n.Throws == ast.NoThrow {
		return call, nil
	}

	// A call that may throw is checked against the process-wide exception
	// tag immediately after evaluation (spec.md §4.9 exception lowering);
	// statement-position calls emit the check as a follow-on statement
	// (see Stmt's ExprStmt case), so here we just emit the call itself.
	return call, nil
}

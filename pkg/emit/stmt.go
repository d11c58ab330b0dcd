package emit

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/ast"
)

// Stmts renders a statement list, indenting at the printer's current level.
// When line-info is enabled, each top-level statement is preceded by a
// `#line N "file"` directive naming its source position (spec.md §6).
func (p *Printer) Stmts(stmts []ast.Stmt) ([]string, error) {
	var out []string

	for _, s := range stmts {
		if p.Opts.LineInfo {
			if loc := s.Loc(); loc.IsKnown() {
				out = append(out, fmt.Sprintf("#line %d %q", loc.Start.Line, loc.File))
			}
		}

		lines, err := p.Stmt(s)
		if err != nil {
			return nil, err
		}

		out = append(out, lines...)
	}

	return out, nil
}

// Stmt renders one statement, possibly as several output lines.
func (p *Printer) Stmt(s ast.Stmt) ([]string, error) {
	switch n := s.(type) {
	case *ast.VarDecl:
		return p.varDecl(n)
	case *ast.Assign:
		return p.assign(n)
	case *ast.ExprStmt:
		return p.exprStmt(n)
	case *ast.Return:
		return p.ret(n)
	case *ast.Assert:
		return p.assert(n)
	case *ast.Throw:
		return p.throw(n)
	case *ast.If:
		return p.ifStmt(n)
	case *ast.For:
		return p.forStmt(n)
	case *ast.While:
		return p.whileStmt(n)
	case *ast.Repeat:
		return p.repeatStmt(n)
	case *ast.Try:
		return p.tryStmt(n)
	case *ast.Case:
		return nil, &Unimplemented{What: "case statement reaching the emitter (expected lowering by case-lower)"}
	default:
		return nil, &Unimplemented{What: fmt.Sprintf("statement %T", s)}
	}
}

func (p *Printer) varDecl(n *ast.VarDecl) ([]string, error) {
	if len(n.Names) != 1 {
		return nil, &Unimplemented{What: "multi-name var-decl reaching the emitter (expected lowering by bittuple-lower/tuple-eliminate)"}
	}

	ty, err := p.cType(n.Type)
	if err != nil {
		return nil, err
	}

	suffix, err := p.arraySuffix(n.Type)
	if err != nil {
		return nil, err
	}

	name := CName(n.Names[0])

	if n.Init == nil {
		return []string{p.line("%s %s%s;", ty, name, suffix)}, nil
	}

	init, err := p.Expr(n.Init)
	if err != nil {
		return nil, err
	}

	return []string{p.line("%s %s%s = %s;", ty, name, suffix, init)}, nil
}

func (p *Printer) assign(n *ast.Assign) ([]string, error) {
	lhs, err := p.lval(n.LHS)
	if err != nil {
		return nil, err
	}

	if sl, ok := n.LHS.(*ast.LSlice); ok {
		target, err := p.lval(sl.Target)
		if err != nil {
			return nil, err
		}

		lo, err := p.Expr(sl.Index)
		if err != nil {
			return nil, err
		}

		w, ok := literalWidth(sl.Width)
		if !ok {
			return nil, &Unimplemented{What: "bitslice lvalue with a non-literal width at emission time"}
		}

		value, err := p.Expr(n.RHS)
		if err != nil {
			return nil, err
		}

		return []string{p.line("%s", p.Runtime.SliceSet(target, lo, w, value))}, nil
	}

	rhs, err := p.Expr(n.RHS)
	if err != nil {
		return nil, err
	}

	return []string{p.line("%s = %s;", lhs, rhs)}, nil
}

func (p *Printer) lval(l ast.LVal) (string, error) {
	switch n := l.(type) {
	case *ast.LVar:
		return CName(n.Resolved), nil
	case *ast.LField:
		rec, err := p.lval(n.Record)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s.%s", rec, CName(n.Name)), nil
	case *ast.LIndex:
		arr, err := p.lval(n.Array)
		if err != nil {
			return "", err
		}

		key, err := p.Expr(n.Key)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s[%s]", arr, key), nil
	case *ast.LSlice:
		return p.lval(n.Target)
	default:
		return "", &Unimplemented{What: fmt.Sprintf("lvalue %T reaching the emitter", l)}
	}
}

// exprStmt renders a bare procedure-call statement. A call marked MayThrow
// or AlwaysThrow is followed by the tag check spec.md §4.9 requires: if the
// process-wide exception tag is set, control forwards to the current
// function's catch label.
func (p *Printer) exprStmt(n *ast.ExprStmt) ([]string, error) {
	if n.Typed == nil {
		return nil, &Unimplemented{What: "unresolved procedure call reaching the emitter"}
	}

	call, err := p.Expr(n.Typed)
	if err != nil {
		return nil, err
	}

	out := []string{p.line("%s;", call)}

	if n.Typed.Throws != ast.NoThrow && p.catchLabel != "" {
		out = append(out, p.line("if (ASL_exception.tag != ASL_no_exception) goto %s;", p.catchLabel))
	}

	return out, nil
}

func (p *Printer) ret(n *ast.Return) ([]string, error) {
	if n.Value == nil {
		return []string{p.line("return;")}, nil
	}

	v, err := p.Expr(n.Value)
	if err != nil {
		return nil, err
	}

	return []string{p.line("return %s;", v)}, nil
}

func (p *Printer) assert(n *ast.Assert) ([]string, error) {
	cond, err := p.Expr(n.Cond)
	if err != nil {
		return nil, err
	}

	return []string{p.line("ASL_assert(%s, %q);", cond, n.Message)}, nil
}

func (p *Printer) throw(n *ast.Throw) ([]string, error) {
	exc, err := p.Expr(n.Exception)
	if err != nil {
		return nil, err
	}

	ty := exceptionTagOf(n.Exception)

	out := []string{
		p.line("ASL_exception.tag = tag_%s;", ty),
		p.line("ASL_exception.as_%s = %s;", ty, exc),
	}

	if p.catchLabel != "" {
		out = append(out, p.line("goto %s;", p.catchLabel))
	}

	return out, nil
}

// exceptionTagOf recovers the exception record's C name from a thrown
// value, which is always a RecordLit-shaped construction of the declared
// exception type by the time this pass runs.
func exceptionTagOf(e ast.Expr) string {
	rl, ok := e.(*ast.RecordLit)
	if !ok {
		return "unknown"
	}

	nt, ok := rl.Type.(*ast.NamedType)
	if !ok {
		return "unknown"
	}

	return CName(nt.Name)
}

func (p *Printer) ifStmt(n *ast.If) ([]string, error) {
	var out []string

	for i, arm := range n.Arms {
		cond, err := p.Expr(arm.Cond)
		if err != nil {
			return nil, err
		}

		keyword := "if"
		if i > 0 {
			keyword = "} else if"
		}

		out = append(out, p.line("%s (%s) {", keyword, cond))
		p.indent++

		body, err := p.Stmts(arm.Body)
		if err != nil {
			return nil, err
		}

		out = append(out, body...)
		p.indent--
	}

	if len(n.Else) > 0 {
		out = append(out, p.line("} else {"))
		p.indent++

		body, err := p.Stmts(n.Else)
		if err != nil {
			return nil, err
		}

		out = append(out, body...)
		p.indent--
	}

	out = append(out, p.line("}"))

	return out, nil
}

func (p *Printer) forStmt(n *ast.For) ([]string, error) {
	lo, err := p.Expr(n.Lo)
	if err != nil {
		return nil, err
	}

	hi, err := p.Expr(n.Hi)
	if err != nil {
		return nil, err
	}

	v := CName(n.Var)
	op, step := "<=", "++"

	if n.Direction == ast.ForDownTo {
		op, step = ">=", "--"
	}

	out := []string{p.line("for (int64_t %s = %s; %s %s %s; %s%s) {", v, lo, v, op, hi, v, step)}
	p.indent++

	body, err := p.Stmts(n.Body)
	if err != nil {
		return nil, err
	}

	out = append(out, body...)
	p.indent--
	out = append(out, p.line("}"))

	return out, nil
}

func (p *Printer) whileStmt(n *ast.While) ([]string, error) {
	cond, err := p.Expr(n.Cond)
	if err != nil {
		return nil, err
	}

	out := []string{p.line("while (%s) {", cond)}
	p.indent++

	body, err := p.Stmts(n.Body)
	if err != nil {
		return nil, err
	}

	out = append(out, body...)
	p.indent--
	out = append(out, p.line("}"))

	return out, nil
}

func (p *Printer) repeatStmt(n *ast.Repeat) ([]string, error) {
	out := []string{p.line("do {")}
	p.indent++

	body, err := p.Stmts(n.Body)
	if err != nil {
		return nil, err
	}

	out = append(out, body...)
	p.indent--

	cond, err := p.Expr(n.Cond)
	if err != nil {
		return nil, err
	}

	out = append(out, p.line("} while (!(%s));", cond))

	return out, nil
}

// tryStmt lowers a try/catch into the catch-label jump protocol: the body
// runs under a fresh catch label, each arm tests the exception tag, binds
// the payload, clears the tag, then falls through past the remaining arms
// (spec.md §4.9's "Catch arms test the tag, bind the typed payload... reset
// the tag to none").
func (p *Printer) tryStmt(n *ast.Try) ([]string, error) {
	label := fmt.Sprintf("__asl_catch_%d", p.nextLabel())
	outer := p.catchLabel
	p.catchLabel = label

	body, err := p.Stmts(n.Body)
	if err != nil {
		p.catchLabel = outer
		return nil, err
	}

	p.catchLabel = outer

	out := append([]string{}, body...)
	out = append(out, p.line("goto %s_done;", label))
	out = append(out, fmt.Sprintf("%s:", label))
	p.indent++

	for i, arm := range n.Arms {
		tag := exceptionTagOfType(arm.ExceptionType)
		keyword := "if"

		if i > 0 {
			keyword = "else if"
		}

		out = append(out, p.line("%s (ASL_exception.tag == tag_%s) {", keyword, tag))
		p.indent++
		out = append(out, p.line("%s %s = ASL_exception.as_%s;", "struct "+tag, CName(arm.Binder), tag))
		out = append(out, p.line("ASL_exception.tag = ASL_no_exception;"))

		armBody, err := p.Stmts(arm.Body)
		if err != nil {
			return nil, err
		}

		out = append(out, armBody...)
		p.indent--
		out = append(out, p.line("}"))
	}

	if len(n.Default) > 0 {
		out = append(out, p.line("else {"))
		p.indent++

		def, err := p.Stmts(n.Default)
		if err != nil {
			return nil, err
		}

		out = append(out, def...)
		p.indent--
		out = append(out, p.line("}"))
	} else if outer != "" {
		out = append(out, p.line("else if (ASL_exception.tag != ASL_no_exception) { goto %s; }", outer))
	}

	p.indent--
	out = append(out, fmt.Sprintf("%s_done:;", label))

	return out, nil
}

func exceptionTagOfType(t ast.Type) string {
	nt, ok := t.(*ast.NamedType)
	if !ok {
		return "unknown"
	}

	return CName(nt.Name)
}

func (p *Printer) nextLabel() uint64 {
	p.labelCounter++
	return p.labelCounter
}

package parser

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/lexer"
)

// binOpPrecedence gives each binary operator its precedence level; higher
// binds tighter.  Grouped per ASL's usual arithmetic-then-comparison-then-
// logic layering.
var binOpPrecedence = map[string]int{
	"||": 1, "OR": 1, "XOR": 1,
	"&&": 2, "AND": 2,
	"==": 3, "!=": 3, "<": 3, ">": 3, "<=": 3, ">=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "DIV": 5, "MOD": 5, "DIVRM": 5, "QUOT": 5, "REM": 5,
	"<<": 6, ">>": 6,
}

func binOpText(t lexer.Token) (string, bool) {
	switch t.Kind {
	case lexer.KindAND:
		return "AND", true
	case lexer.KindOR:
		return "OR", true
	case lexer.KindXOR:
		return "XOR", true
	case lexer.KindDIV:
		return "DIV", true
	case lexer.KindMOD:
		return "MOD", true
	case lexer.KindDIVRM:
		return "DIVRM", true
	case lexer.KindQUOT:
		return "QUOT", true
	case lexer.KindREM:
		return "REM", true
	case lexer.KindPunct:
		if _, ok := binOpPrecedence[t.Text]; ok {
			return t.Text, true
		}
	}

	return "", false
}

// parseExpr parses a full expression using precedence climbing.
func (p *Parser) parseExpr() (ast.Expr, *SyntaxError) {
	return p.parseBinExpr(0)
}

func (p *Parser) parseBinExpr(minPrec int) (ast.Expr, *SyntaxError) {
	left, err := p.parseUnaryOrAs()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binOpText(p.peek())
		if !ok {
			return left, nil
		}

		prec, ok := binOpPrecedence[op]
		if !ok || prec < minPrec {
			return left, nil
		}

		start := p.peek().Span
		p.advance()

		right, err := p.parseBinExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
		_ = start
	}
}

func (p *Parser) parseUnaryOrAs() (ast.Expr, *SyntaxError) {
	if p.check(lexer.KindNOT) || p.checkPunct("-") || p.checkPunct("!") {
		start := p.peek().Span
		op := p.peek().Text
		if p.check(lexer.KindNOT) {
			op = "NOT"
		}

		p.advance()

		arg, err := p.parseUnaryOrAs()
		if err != nil {
			return nil, err
		}

		_ = start

		return &ast.UnaryOp{Op: op, Arg: arg}, nil
	}

	e, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	for p.check(lexer.KindAs) {
		p.advance()
		e, err = p.parseAsTail(e)

		if err != nil {
			return nil, err
		}
	}

	if p.check(lexer.KindIN) {
		p.advance()

		pat, perr := p.parsePattern()
		if perr != nil {
			return nil, perr
		}

		e = &ast.PatternIn{Target: e, Pattern: pat}
	}

	return e, nil
}

func (p *Parser) parseAsTail(target ast.Expr) (ast.Expr, *SyntaxError) {
	if p.acceptPunct("{") {
		var ranges []ast.ConstraintRange

		for {
			r, err := p.parseConstraintRange()
			if err != nil {
				return nil, err
			}

			ranges = append(ranges, r)

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}

		return &ast.AsConstraint{Target: target, Constraints: ranges}, nil
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	return &ast.AsType{Target: target, AsT: ty}, nil
}

func (p *Parser) parseConstraintRange() (ast.ConstraintRange, *SyntaxError) {
	lo, err := p.parseExpr()
	if err != nil {
		return ast.ConstraintRange{}, err
	}

	if p.acceptPunct("..") {
		hi, err := p.parseExpr()
		if err != nil {
			return ast.ConstraintRange{}, err
		}

		return ast.ConstraintRange{Lo: lo, Hi: hi}, nil
	}

	return ast.ConstraintRange{Single: lo}, nil
}

// parsePostfix parses a primary expression followed by any number of
// postfix operators: field access, multi-field selection, subscript,
// bitslice, with-expressions.
func (p *Parser) parsePostfix() (ast.Expr, *SyntaxError) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(lexer.KindWith):
			p.advance()
			e, err = p.parseWithTail(e)

			if err != nil {
				return nil, err
			}
		case p.acceptPunct("."):
			if p.acceptPunct("[") {
				var names []ident.Ident
				for {
					n, nerr := p.expect(lexer.KindIdent, "field name")
					if nerr != nil {
						return nil, nerr
					}

					names = append(names, ident.New(n.Text))

					if !p.acceptPunct(",") {
						break
					}
				}

				if perr := p.expectPunct("]"); perr != nil {
					return nil, perr
				}

				e = &ast.MultiField{Record: e, Names: names}

				continue
			}

			name, nerr := p.expect(lexer.KindIdent, "field name")
			if nerr != nil {
				return nil, nerr
			}

			e = &ast.Field{Record: e, Name: ident.New(name.Text)}
		case p.acceptPunct("["):
			e, err = p.parseSliceOrIndexTail(e)

			if err != nil {
				return nil, err
			}
		default:
			return e, nil
		}
	}
}

// parseSliceOrIndexTail parses the body of `e[...]` after the opening
// bracket has been consumed, producing an Index or one of the four Slice
// forms from spec.md §4.4.
func (p *Parser) parseSliceOrIndexTail(target ast.Expr) (ast.Expr, *SyntaxError) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch {
	case p.acceptPunct(":"):
		hi := first

		lo, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		return &ast.Slice{Kind: ast.SliceHighLow, Target: target, Index: lo, Width: hi}, nil
	case p.acceptPunct("+:"):
		width, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		return &ast.Slice{Kind: ast.SliceLowWidth, Target: target, Index: first, Width: width}, nil
	case p.acceptPunct("-:"):
		width, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		return &ast.Slice{Kind: ast.SliceHighWidth, Target: target, Index: first, Width: width}, nil
	case p.acceptPunct("*:"):
		width, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		return &ast.Slice{Kind: ast.SliceElement, Target: target, Index: first, Width: width}, nil
	default:
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		// Ambiguous between a single-bit slice and an array index; the
		// typechecker disambiguates using the target's type (bits vs
		// array), per spec.md §4.6.  We record it as Index here and let
		// typecheck rewrite to Slice when appropriate.
		return &ast.Index{Array: target, Key: first}, nil
	}
}

func (p *Parser) parseWithTail(target ast.Expr) (ast.Expr, *SyntaxError) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var changes []ast.Change

	for !p.checkPunct("}") {
		c, err := p.parseChange()
		if err != nil {
			return nil, err
		}

		changes = append(changes, c)

		if !p.acceptPunct(",") {
			break
		}
	}

	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return &ast.With{Target: target, Changes: changes}, nil
}

func (p *Parser) parseChange() (ast.Change, *SyntaxError) {
	name, err := p.expect(lexer.KindIdent, "field name in with-change")
	if err != nil {
		return ast.Change{}, err
	}

	if err := p.expectPunct("="); err != nil {
		return ast.Change{}, err
	}

	v, verr := p.parseExpr()
	if verr != nil {
		return ast.Change{}, verr
	}

	return ast.Change{Kind: ast.ChangeField, Field: ident.New(name.Text), Value: v}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *SyntaxError) {
	tok := p.peek()

	switch tok.Kind {
	case lexer.KindIntLit:
		p.advance()
		return &ast.LitInt{Value: bigFromBase(tok.IntValue, tok.BitsBase)}, nil
	case lexer.KindSizedIntLit:
		p.advance()
		return &ast.LitBits{Value: bigFromBase(tok.IntValue, tok.BitsBase), Width: tok.BitsWidth}, nil
	case lexer.KindBitsLit:
		p.advance()
		return &ast.LitBits{Value: bigFromBase(tok.IntValue, tok.BitsBase), Width: tok.BitsWidth}, nil
	case lexer.KindMaskLit:
		p.advance()
		return &ast.LitMask{
			Bits: bigFromBase(tok.MaskBits, 2), Care: bigFromBase(tok.MaskCare, 2), Width: tok.BitsWidth,
		}, nil
	case lexer.KindStringLit:
		p.advance()
		return &ast.LitString{Value: tok.Text}, nil
	case lexer.KindTrue:
		p.advance()
		return &ast.LitBool{Value: true}, nil
	case lexer.KindFalse:
		p.advance()
		return &ast.LitBool{Value: false}, nil
	case lexer.KindUNKNOWN:
		p.advance()

		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}

		ty, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}

		return &ast.UnknownOfType{T: ty}, nil
	case lexer.KindLet:
		return p.parseLetExpr()
	case lexer.KindIf:
		return p.parseCondExpr()
	case lexer.KindPunct:
		if tok.Text == "(" {
			return p.parseParenOrTuple()
		}
	case lexer.KindIdent:
		return p.parseIdentExpr()
	}

	return nil, p.errorf("unexpected token %q while parsing expression", tok.Text)
}

func (p *Parser) parseLetExpr() (ast.Expr, *SyntaxError) {
	p.advance()

	name, err := p.expect(lexer.KindIdent, "let-bound name")
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct("="); err != nil {
		return nil, err
	}

	bound, berr := p.parseExpr()
	if berr != nil {
		return nil, berr
	}

	if _, ok := p.accept(lexer.KindIN); !ok {
		return nil, p.errorf("expected 'IN' after let-binding")
	}

	body, bodyErr := p.parseExpr()
	if bodyErr != nil {
		return nil, bodyErr
	}

	return &ast.Let{Name: ident.New(name.Text), Bound: bound, Body: body}, nil
}

func (p *Parser) parseCondExpr() (ast.Expr, *SyntaxError) {
	var arms []ast.CondArm

	for {
		if _, ok := p.accept(lexer.KindIf); !ok {
			if _, ok := p.accept(lexer.KindElsif); !ok {
				break
			}
		}

		cond, cerr := p.parseExpr()
		if cerr != nil {
			return nil, cerr
		}

		if _, ok := p.accept(lexer.KindThen); !ok {
			return nil, p.errorf("expected 'then'")
		}

		then, terr := p.parseExpr()
		if terr != nil {
			return nil, terr
		}

		arms = append(arms, ast.CondArm{Cond: cond, Then: then})

		if !p.check(lexer.KindElsif) {
			break
		}
	}

	if _, ok := p.accept(lexer.KindElse); !ok {
		return nil, p.errorf("expected 'else' to close conditional expression")
	}

	elseExpr, eerr := p.parseExpr()
	if eerr != nil {
		return nil, eerr
	}

	return &ast.Cond{Arms: arms, Else: elseExpr}, nil
}

func (p *Parser) parseParenOrTuple() (ast.Expr, *SyntaxError) {
	p.advance()

	var elems []ast.Expr

	for !p.checkPunct(")") {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if !p.acceptPunct(",") {
			break
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	if len(elems) == 1 {
		return elems[0], nil
	}

	return &ast.TupleExpr{Elems: elems}, nil
}

// parseIdentExpr parses a bare identifier, which may turn out to be a
// variable reference or (if followed by '(') a call with named/positional
// arguments and an optional exception marker (spec.md §4.4).
func (p *Parser) parseIdentExpr() (ast.Expr, *SyntaxError) {
	name, _ := p.accept(lexer.KindIdent)

	throws := ast.NoThrow

	if p.checkPunct("?") {
		p.advance()
		throws = ast.MayThrow
	} else if p.checkPunct("!") {
		p.advance()
		throws = ast.AlwaysThrow
	}

	if !p.checkPunct("(") {
		if throws != ast.NoThrow {
			return nil, p.errorf("exception marker requires a call")
		}

		return &ast.Var{Name: ident.New(name.Text)}, nil
	}

	p.advance()

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	return &ast.UntypedCall{Callee: ident.New(name.Text), Args: args, Throws: throws}, nil
}

// parseArgList parses a call's argument list after the opening '(' has been
// consumed, capturing (Option<Ident>, Expr) pairs for named/positional
// arguments (spec.md §4.4).  The parser itself does not enforce that named
// arguments come after positional ones; pkg/typecheck does, per spec.md
// §4.6.
func (p *Parser) parseArgList() ([]ast.NamedArg, *SyntaxError) {
	var args []ast.NamedArg

	for !p.checkPunct(")") {
		if p.check(lexer.KindIdent) && p.peekAt(1).Kind == lexer.KindPunct && p.peekAt(1).Text == "=" {
			name := p.advance()
			p.advance() // '='

			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, ast.NamedArg{Name: ident.New(name.Text), Expr: v})
		} else {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, ast.NamedArg{Expr: v})
		}

		if !p.acceptPunct(",") {
			break
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return args, nil
}

package parser

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/lexer"
)

// parseStmts parses a sequence of statements terminated by one of the given
// keyword kinds (without consuming the terminator).
func (p *Parser) parseStmts(terminators ...lexer.Kind) ([]ast.Stmt, *SyntaxError) {
	var stmts []ast.Stmt

	for {
		for _, t := range terminators {
			if p.check(t) {
				return stmts, nil
			}
		}

		if p.atEOF() {
			return stmts, p.errorf("unexpected end of file inside statement block")
		}

		s, err := p.parseStmt()
		if err != nil {
			return stmts, err
		}

		stmts = append(stmts, s)
	}
}

func (p *Parser) parseStmt() (ast.Stmt, *SyntaxError) {
	switch p.peek().Kind {
	case lexer.KindVar, lexer.KindLet, lexer.KindConstant:
		return p.parseVarDeclStmt()
	case lexer.KindReturn:
		p.advance()

		if p.checkPunct(";") {
			p.advance()
			return &ast.Return{}, nil
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		p.acceptPunct(";")

		return &ast.Return{Value: e}, nil
	case lexer.KindThrow:
		p.advance()

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		p.acceptPunct(";")

		return &ast.Throw{Exception: e}, nil
	case lexer.KindIf:
		return p.parseIfStmt()
	case lexer.KindCase:
		return p.parseCaseStmt()
	case lexer.KindFor:
		return p.parseForStmt()
	case lexer.KindWhile:
		return p.parseWhileStmt()
	case lexer.KindRepeat:
		return p.parseRepeatStmt()
	case lexer.KindTry:
		return p.parseTryStmt()
	default:
		return p.parseAssignOrCallStmt()
	}
}

func (p *Parser) parseVarDeclStmt() (ast.Stmt, *SyntaxError) {
	mutable := !p.check(lexer.KindConstant)
	p.advance()

	decl := &ast.VarDecl{Mutable: mutable}

	if p.acceptPunct("(") {
		decl.Shape = ast.ShapeTuple

		for !p.checkPunct(")") {
			n, err := p.expect(lexer.KindIdent, "variable name")
			if err != nil {
				return nil, err
			}

			decl.Names = append(decl.Names, ident.New(n.Text))

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
	} else {
		n, err := p.expect(lexer.KindIdent, "variable name")
		if err != nil {
			return nil, err
		}

		decl.Names = []ident.Ident{ident.New(n.Text)}
	}

	if p.acceptPunct(":") {
		ty, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}

		decl.Type = ty
	}

	if p.acceptPunct("=") {
		e, eerr := p.parseExpr()
		if eerr != nil {
			return nil, eerr
		}

		decl.Init = e
	}

	p.acceptPunct(";")

	return decl, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, *SyntaxError) {
	var arms []ast.IfArm

	p.advance()

	for {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, ok := p.accept(lexer.KindThen); !ok {
			return nil, p.errorf("expected 'then'")
		}

		body, berr := p.parseStmts(lexer.KindElsif, lexer.KindElse, lexer.KindEnd)
		if berr != nil {
			return nil, berr
		}

		arms = append(arms, ast.IfArm{Cond: cond, Body: body})

		if _, ok := p.accept(lexer.KindElsif); ok {
			continue
		}

		break
	}

	var elseBody []ast.Stmt

	if _, ok := p.accept(lexer.KindElse); ok {
		b, berr := p.parseStmts(lexer.KindEnd)
		if berr != nil {
			return nil, berr
		}

		elseBody = b
	}

	if _, ok := p.accept(lexer.KindEnd); !ok {
		return nil, p.errorf("expected 'end' to close if-statement")
	}

	p.acceptPunct(";")

	return &ast.If{Arms: arms, Else: elseBody}, nil
}

func (p *Parser) parseCaseStmt() (ast.Stmt, *SyntaxError) {
	p.advance()

	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, ok := p.accept(lexer.KindOf); !ok {
		return nil, p.errorf("expected 'of' in case statement")
	}

	c := &ast.Case{Scrutinee: scrutinee}

	for p.check(lexer.KindWhen) {
		p.advance()

		pat, perr := p.parsePattern()
		if perr != nil {
			return nil, perr
		}

		if err := p.expectPunct("=>"); err != nil {
			return nil, err
		}

		body, berr := p.parseStmts(lexer.KindWhen, lexer.KindOtherwise, lexer.KindEnd)
		if berr != nil {
			return nil, berr
		}

		c.Alts = append(c.Alts, ast.CaseAlt{Pattern: pat, Body: body})
	}

	if _, ok := p.accept(lexer.KindOtherwise); ok {
		if err := p.expectPunct("=>"); err != nil {
			return nil, err
		}

		body, berr := p.parseStmts(lexer.KindEnd)
		if berr != nil {
			return nil, berr
		}

		c.Default = body
	}

	if _, ok := p.accept(lexer.KindEnd); !ok {
		return nil, p.errorf("expected 'end' to close case statement")
	}

	p.acceptPunct(";")

	return c, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, *SyntaxError) {
	p.advance()

	v, verr := p.expect(lexer.KindIdent, "loop variable")
	if verr != nil {
		return nil, verr
	}

	if err := p.expectPunct("="); err != nil {
		return nil, err
	}

	lo, lerr := p.parseExpr()
	if lerr != nil {
		return nil, lerr
	}

	dir := ast.ForTo

	if p.check(lexer.KindDownto) {
		dir = ast.ForDownTo
		p.advance()
	} else if _, ok := p.accept(lexer.KindTo); !ok {
		return nil, p.errorf("expected 'to' or 'downto'")
	}

	hi, herr := p.parseExpr()
	if herr != nil {
		return nil, herr
	}

	if _, ok := p.accept(lexer.KindDo); !ok {
		return nil, p.errorf("expected 'do'")
	}

	body, berr := p.parseStmts(lexer.KindEnd)
	if berr != nil {
		return nil, berr
	}

	if _, ok := p.accept(lexer.KindEnd); !ok {
		return nil, p.errorf("expected 'end' to close for-loop")
	}

	p.acceptPunct(";")

	return &ast.For{Var: ident.New(v.Text), Lo: lo, Hi: hi, Direction: dir, Body: body}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, *SyntaxError) {
	p.advance()

	cond, cerr := p.parseExpr()
	if cerr != nil {
		return nil, cerr
	}

	if _, ok := p.accept(lexer.KindDo); !ok {
		return nil, p.errorf("expected 'do'")
	}

	body, berr := p.parseStmts(lexer.KindEnd)
	if berr != nil {
		return nil, berr
	}

	if _, ok := p.accept(lexer.KindEnd); !ok {
		return nil, p.errorf("expected 'end' to close while-loop")
	}

	p.acceptPunct(";")

	return &ast.While{Cond: cond, Body: body}, nil
}

func (p *Parser) parseRepeatStmt() (ast.Stmt, *SyntaxError) {
	p.advance()

	body, berr := p.parseStmts(lexer.KindUntil)
	if berr != nil {
		return nil, berr
	}

	if _, ok := p.accept(lexer.KindUntil); !ok {
		return nil, p.errorf("expected 'until'")
	}

	cond, cerr := p.parseExpr()
	if cerr != nil {
		return nil, cerr
	}

	p.acceptPunct(";")

	return &ast.Repeat{Body: body, Cond: cond}, nil
}

func (p *Parser) parseTryStmt() (ast.Stmt, *SyntaxError) {
	p.advance()

	body, berr := p.parseStmts(lexer.KindCatch, lexer.KindEnd)
	if berr != nil {
		return nil, berr
	}

	t := &ast.Try{Body: body}

	for p.check(lexer.KindCatch) {
		p.advance()

		var binder ident.Ident

		if p.check(lexer.KindIdent) && p.peekAt(1).Kind == lexer.KindPunct && p.peekAt(1).Text == ":" {
			b := p.advance()
			binder = ident.New(b.Text)
			p.advance() // ':'
		}

		ty, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}

		if err := p.expectPunct("=>"); err != nil {
			return nil, err
		}

		armBody, aerr := p.parseStmts(lexer.KindCatch, lexer.KindOtherwise, lexer.KindEnd)
		if aerr != nil {
			return nil, aerr
		}

		t.Arms = append(t.Arms, ast.CatchArm{ExceptionType: ty, Binder: binder, Body: armBody})
	}

	if _, ok := p.accept(lexer.KindOtherwise); ok {
		if err := p.expectPunct("=>"); err != nil {
			return nil, err
		}

		def, derr := p.parseStmts(lexer.KindEnd)
		if derr != nil {
			return nil, derr
		}

		t.Default = def
	}

	if _, ok := p.accept(lexer.KindEnd); !ok {
		return nil, p.errorf("expected 'end' to close try-statement")
	}

	p.acceptPunct(";")

	return t, nil
}

// parseAssignOrCallStmt parses either `lval = expr;` or a bare call used as
// a procedure statement.  Both start with an identifier-led expression, so
// we parse an expression first and classify it afterward.
func (p *Parser) parseAssignOrCallStmt() (ast.Stmt, *SyntaxError) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.acceptPunct("=") {
		lval, lerr := exprToLVal(e)
		if lerr != nil {
			return nil, &SyntaxError{Span: p.peek().Span, Message: lerr.Error()}
		}

		rhs, rerr := p.parseExpr()
		if rerr != nil {
			return nil, rerr
		}

		p.acceptPunct(";")

		return &ast.Assign{LHS: lval, RHS: rhs}, nil
	}

	p.acceptPunct(";")

	if call, ok := e.(*ast.UntypedCall); ok {
		return &ast.ExprStmt{Untyped: call}, nil
	}

	return nil, p.errorf("expected an assignment or procedure call statement")
}

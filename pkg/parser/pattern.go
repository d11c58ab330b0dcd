package parser

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/lexer"
)

// parsePattern parses the right-hand side of an `IN` expression or a
// `case`/`when` alternative's pattern (spec.md §4.3).
func (p *Parser) parsePattern() (ast.Pattern, *SyntaxError) {
	switch {
	case p.checkPunct("-"):
		return p.parseWildcardOrSingle()
	case p.checkPunct("{"):
		return p.parseSetPattern()
	case p.check(lexer.KindIntLit), p.check(lexer.KindBitsLit), p.check(lexer.KindSizedIntLit):
		return p.parseLitOrRangePattern()
	case p.check(lexer.KindMaskLit):
		tok := p.advance()

		return &ast.PatMask{Bits: bigFromBase(tok.MaskBits, 2), Care: bigFromBase(tok.MaskCare, 2), Width: tok.BitsWidth}, nil
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &ast.PatSingle{Expr: e}, nil
	}
}

func (p *Parser) parseWildcardOrSingle() (ast.Pattern, *SyntaxError) {
	p.advance()
	return &ast.PatWildcard{}, nil
}

func (p *Parser) parseSetPattern() (ast.Pattern, *SyntaxError) {
	p.advance()

	var elems []ast.Pattern

	for !p.checkPunct("}") {
		e, err := p.parsePattern()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if !p.acceptPunct(",") {
			break
		}
	}

	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return &ast.PatSet{Elems: elems}, nil
}

func (p *Parser) parseLitOrRangePattern() (ast.Pattern, *SyntaxError) {
	lo, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.acceptPunct("..") {
		hi, herr := p.parseExpr()
		if herr != nil {
			return nil, herr
		}

		return &ast.PatRange{Lo: lo, Hi: hi}, nil
	}

	return &ast.PatSingle{Expr: lo}, nil
}

package parser

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/lexer"
)

// parseType parses a type expression (spec.md §3/§4.4).
func (p *Parser) parseType() (ast.Type, *SyntaxError) {
	switch {
	case p.check(lexer.KindTypeof):
		p.advance()

		if err := p.expectPunct("("); err != nil {
			return nil, err
		}

		e, eerr := p.parseExpr()
		if eerr != nil {
			return nil, eerr
		}

		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}

		return &ast.TypeOfType{Expr: e}, nil
	case p.check(lexer.KindArray):
		p.advance()

		if err := p.expectPunct("["); err != nil {
			return nil, err
		}

		var idxSize ast.Expr

		var idxEnum ident.Ident

		if p.check(lexer.KindIdent) && p.peekAt(1).Kind == lexer.KindPunct && p.peekAt(1).Text == "]" {
			name := p.advance()
			idxEnum = ident.New(name.Text)
		} else {
			e, eerr := p.parseExpr()
			if eerr != nil {
				return nil, eerr
			}

			idxSize = e
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		if _, ok := p.accept(lexer.KindOf); !ok {
			return nil, p.errorf("expected 'of' in array type")
		}

		elem, eerr := p.parseType()
		if eerr != nil {
			return nil, eerr
		}

		return &ast.ArrayType{IndexEnum: idxEnum, IndexSize: idxSize, Elem: elem}, nil
	case p.check(lexer.KindIdent):
		name := p.advance()

		if name.Text == "integer" {
			return p.parseIntegerTypeTail()
		}

		if name.Text == "bits" {
			return p.parseBitsTypeTail()
		}

		if p.checkPunct("(") {
			p.advance()

			var args []ast.Expr

			for !p.checkPunct(")") {
				a, aerr := p.parseExpr()
				if aerr != nil {
					return nil, aerr
				}

				args = append(args, a)

				if !p.acceptPunct(",") {
					break
				}
			}

			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}

			return &ast.NamedType{Name: ident.New(name.Text), Args: args}, nil
		}

		return &ast.NamedType{Name: ident.New(name.Text)}, nil
	case p.acceptPunct("("):
		var elems []ast.Type

		for !p.checkPunct(")") {
			el, eerr := p.parseType()
			if eerr != nil {
				return nil, eerr
			}

			elems = append(elems, el)
			if !p.acceptPunct(",") {
				break
			}
		}

		return &ast.TupleType{Elems: elems}, p.expectPunct(")")
	}

	return nil, p.errorf("expected a type, found %q", p.peek().Text)
}

func (p *Parser) parseIntegerTypeTail() (ast.Type, *SyntaxError) {
	if !p.acceptPunct("{") {
		return &ast.IntegerType{}, nil
	}

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

	return &ast.IntegerType{Constraints: ranges}, nil
}

func (p *Parser) parseBitsTypeTail() (ast.Type, *SyntaxError) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	width, werr := p.parseExpr()
	if werr != nil {
		return nil, werr
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	bt := &ast.BitsType{Width: width}

	if p.acceptPunct("{") {
		for !p.checkPunct("}") {
			field, ferr := p.parseRegisterField()
			if ferr != nil {
				return nil, ferr
			}

			bt.Fields = append(bt.Fields, field)

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
	}

	return bt, nil
}

func (p *Parser) parseRegisterField() (ast.RegisterField, *SyntaxError) {
	var slices []ast.Expr

	for {
		e, err := p.parseExpr()
		if err != nil {
			return ast.RegisterField{}, err
		}

		slices = append(slices, e)

		if !p.acceptPunct(",") || p.checkPunct("}") {
			break
		}
	}

	name, nerr := p.expect(lexer.KindIdent, "register field name")
	if nerr != nil {
		return ast.RegisterField{}, nerr
	}

	return ast.RegisterField{Name: ident.New(name.Text), Slices: slices}, nil
}

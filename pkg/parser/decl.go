package parser

import (
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/lexer"
)

func (p *Parser) parseDecl() (ast.Decl, *SyntaxError) {
	switch p.peek().Kind {
	case lexer.KindFunc, lexer.KindGetter, lexer.KindSetter:
		return p.parseFuncLikeDecl()
	case lexer.KindRecord:
		return p.parseRecordDecl()
	case lexer.KindException:
		return p.parseExceptionDecl()
	case lexer.KindEnumeration:
		return p.parseEnumDecl()
	case lexer.KindType:
		return p.parseTypeDecl()
	case lexer.KindConstant:
		return p.parseConstDecl(false)
	case lexer.KindConfig:
		return p.parseConstDecl(true)
	case lexer.KindVar:
		return p.parseGlobalVarDecl()
	default:
		return nil, p.errorf("expected a top-level declaration, found %q", p.peek().Text)
	}
}

func (p *Parser) parseFuncLikeDecl() (ast.Decl, *SyntaxError) {
	kind := ast.FuncOrdinary

	switch p.peek().Kind {
	case lexer.KindGetter:
		kind = ast.FuncGetter
	case lexer.KindSetter:
		kind = ast.FuncSetter
	}

	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "function name")
	if nerr != nil {
		return nil, nerr
	}

	var widthArgs []ident.Ident

	if p.acceptPunct("{") {
		for !p.checkPunct("}") {
			w, werr := p.expect(lexer.KindIdent, "width parameter")
			if werr != nil {
				return nil, werr
			}

			widthArgs = append(widthArgs, ident.New(w.Text))

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
	}

	var indexArgs []ast.Param

	if kind != ast.FuncOrdinary && p.acceptPunct("[") {
		for !p.checkPunct("]") {
			param, perr := p.parseParam()
			if perr != nil {
				return nil, perr
			}

			indexArgs = append(indexArgs, param)

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
	}

	var params []ast.Param

	if p.acceptPunct("(") {
		for !p.checkPunct(")") {
			param, perr := p.parseParam()
			if perr != nil {
				return nil, perr
			}

			params = append(params, param)

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
	}

	params = append(indexArgs, params...)

	if kind == ast.FuncSetter && p.acceptPunct("=") {
		rhs, rerr := p.parseParam()
		if rerr != nil {
			return nil, rerr
		}

		params = append(params, rhs)
	}

	throws := ast.NoThrow

	if p.checkPunct("?") {
		p.advance()
		throws = ast.MayThrow
	} else if p.checkPunct("!") {
		p.advance()
		throws = ast.AlwaysThrow
	}

	var retType ast.Type

	if p.acceptPunct("=>") {
		ty, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}

		retType = ty
	}

	if p.acceptPunct(";") {
		return &ast.FuncTypeDecl{
			Name: ident.New(name.Text), Kind: kind, WidthArgs: widthArgs,
			Params: params, ReturnType: retType, Throws: throws,
		}, nil
	}

	if _, ok := p.accept(lexer.KindBegin); !ok {
		return nil, p.errorf("expected 'begin' or ';' after function prototype")
	}

	body, berr := p.parseStmts(lexer.KindEnd)
	if berr != nil {
		return nil, berr
	}

	if _, ok := p.accept(lexer.KindEnd); !ok {
		return nil, p.errorf("expected 'end' to close function body")
	}

	p.acceptPunct(";")

	return &ast.FuncDef{
		Name: ident.New(name.Text), Kind: kind, WidthArgs: widthArgs,
		Params: params, ReturnType: retType, Throws: throws, Body: body,
	}, nil
}

func (p *Parser) parseParam() (ast.Param, *SyntaxError) {
	name, nerr := p.expect(lexer.KindIdent, "parameter name")
	if nerr != nil {
		return ast.Param{}, nerr
	}

	if err := p.expectPunct(":"); err != nil {
		return ast.Param{}, err
	}

	ty, terr := p.parseType()
	if terr != nil {
		return ast.Param{}, terr
	}

	param := ast.Param{Name: ident.New(name.Text), Type: ty}

	if p.acceptPunct("=") {
		def, derr := p.parseExpr()
		if derr != nil {
			return ast.Param{}, derr
		}

		param.Default = def
	}

	return param, nil
}

func (p *Parser) parseRecordDecl() (ast.Decl, *SyntaxError) {
	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "record name")
	if nerr != nil {
		return nil, nerr
	}

	var params []ident.Ident

	if p.acceptPunct("(") {
		for !p.checkPunct(")") {
			pn, perr := p.expect(lexer.KindIdent, "record parameter")
			if perr != nil {
				return nil, perr
			}

			params = append(params, ident.New(pn.Text))

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
	}

	if !p.checkPunct("{") {
		p.acceptPunct(";")
		return &ast.ForwardTypeDecl{Name: ident.New(name.Text)}, nil
	}

	fields, ferr := p.parseRecordFields()
	if ferr != nil {
		return nil, ferr
	}

	p.acceptPunct(";")

	return &ast.RecordDecl{Name: ident.New(name.Text), Parameters: params, Fields: fields}, nil
}

func (p *Parser) parseRecordFields() ([]ast.RecordField, *SyntaxError) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var fields []ast.RecordField

	for !p.checkPunct("}") {
		name, nerr := p.expect(lexer.KindIdent, "field name")
		if nerr != nil {
			return nil, nerr
		}

		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}

		ty, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}

		fields = append(fields, ast.RecordField{Name: ident.New(name.Text), Type: ty})

		if !p.acceptPunct(",") {
			break
		}
	}

	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	return fields, nil
}

func (p *Parser) parseExceptionDecl() (ast.Decl, *SyntaxError) {
	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "exception name")
	if nerr != nil {
		return nil, nerr
	}

	var fields []ast.RecordField

	if p.checkPunct("{") {
		f, ferr := p.parseRecordFields()
		if ferr != nil {
			return nil, ferr
		}

		fields = f
	}

	p.acceptPunct(";")

	return &ast.ExceptionDecl{Name: ident.New(name.Text), Fields: fields}, nil
}

func (p *Parser) parseEnumDecl() (ast.Decl, *SyntaxError) {
	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "enumeration name")
	if nerr != nil {
		return nil, nerr
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var members []ident.Ident

	for !p.checkPunct("}") {
		m, merr := p.expect(lexer.KindIdent, "enumeration member")
		if merr != nil {
			return nil, merr
		}

		members = append(members, ident.New(m.Text))

		if !p.acceptPunct(",") {
			break
		}
	}

	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	p.acceptPunct(";")

	return &ast.EnumDecl{Name: ident.New(name.Text), Members: members}, nil
}

func (p *Parser) parseTypeDecl() (ast.Decl, *SyntaxError) {
	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "type name")
	if nerr != nil {
		return nil, nerr
	}

	var params []ident.Ident

	if p.acceptPunct("(") {
		for !p.checkPunct(")") {
			pn, perr := p.expect(lexer.KindIdent, "type parameter")
			if perr != nil {
				return nil, perr
			}

			params = append(params, ident.New(pn.Text))

			if !p.acceptPunct(",") {
				break
			}
		}

		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
	}

	if !p.acceptPunct("=") {
		p.acceptPunct(";")
		return &ast.ForwardTypeDecl{Name: ident.New(name.Text)}, nil
	}

	underlying, uerr := p.parseType()
	if uerr != nil {
		return nil, uerr
	}

	p.acceptPunct(";")

	return &ast.TypeAbbrevDecl{Name: ident.New(name.Text), Parameters: params, Underlying: underlying}, nil
}

func (p *Parser) parseConstDecl(isConfig bool) (ast.Decl, *SyntaxError) {
	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "constant name")
	if nerr != nil {
		return nil, nerr
	}

	var ty ast.Type

	if p.acceptPunct(":") {
		t, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}

		ty = t
	}

	var value ast.Expr

	if p.acceptPunct("=") {
		v, verr := p.parseExpr()
		if verr != nil {
			return nil, verr
		}

		value = v
	}

	p.acceptPunct(";")

	if isConfig {
		return &ast.ConfigConstDecl{Name: ident.New(name.Text), Type: ty, Default: value}, nil
	}

	return &ast.ConstDecl{Name: ident.New(name.Text), Type: ty, Value: value}, nil
}

func (p *Parser) parseGlobalVarDecl() (ast.Decl, *SyntaxError) {
	p.advance()

	name, nerr := p.expect(lexer.KindIdent, "variable name")
	if nerr != nil {
		return nil, nerr
	}

	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}

	ty, terr := p.parseType()
	if terr != nil {
		return nil, terr
	}

	var init ast.Expr

	if p.acceptPunct("=") {
		v, verr := p.parseExpr()
		if verr != nil {
			return nil, verr
		}

		init = v
	}

	p.acceptPunct(";")

	return &ast.VarDeclGlobal{Name: ident.New(name.Text), Type: ty, Init: init}, nil
}

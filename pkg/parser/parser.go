package parser

import (
	"fmt"
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/lexer"
)

// Parser holds the token stream for one source file, the current position
// in it, and the syntax errors recorded so far.
type Parser struct {
	file   string
	toks   []lexer.Token
	index  int
	Errors []*SyntaxError
}

// Parse tokenises and parses a complete ASL source file into a slice of
// top-level declarations, continuing past individual declaration errors
// (structural error recovery, spec.md §4.4) and returning every error
// accumulated along the way.
func Parse(file, contents string) ([]ast.Decl, []*SyntaxError) {
	lx := lexer.New(file, contents)

	toks, err := lx.Collect()
	if err != nil {
		return nil, []*SyntaxError{{Span: errSpan(err), Message: err.Error()}}
	}

	p := &Parser{file: file, toks: toks}

	return p.parseCircuit(), p.Errors
}

func errSpan(err error) lexer.Span {
	if le, ok := err.(*lexer.Error); ok {
		return le.Span
	}

	return lexer.Span{}
}

func (p *Parser) parseCircuit() []ast.Decl {
	var decls []ast.Decl

	for !p.atEOF() {
		d, err := p.parseDecl()
		if err != nil {
			p.Errors = append(p.Errors, err)
			p.recover()

			continue
		}

		if d != nil {
			decls = append(decls, d)
		}
	}

	return decls
}

// recover skips tokens until a position likely to start a new top-level
// declaration, so one malformed declaration doesn't abort the whole file.
func (p *Parser) recover() {
	for !p.atEOF() {
		switch p.peek().Kind {
		case lexer.KindFunc, lexer.KindGetter, lexer.KindSetter, lexer.KindRecord,
			lexer.KindEnumeration, lexer.KindException, lexer.KindType,
			lexer.KindConstant, lexer.KindConfig, lexer.KindVar:
			return
		}

		p.advance()
	}
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.index]
}

func (p *Parser) peekAt(off int) lexer.Token {
	i := p.index + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[i]
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == lexer.KindEOF
}

func (p *Parser) advance() lexer.Token {
	t := p.peek()
	if t.Kind != lexer.KindEOF {
		p.index++
	}

	return t
}

func (p *Parser) check(k lexer.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) checkPunct(s string) bool {
	return p.peek().Kind == lexer.KindPunct && p.peek().Text == s
}

func (p *Parser) accept(k lexer.Kind) (lexer.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}

	return lexer.Token{}, false
}

func (p *Parser) acceptPunct(s string) bool {
	if p.checkPunct(s) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, *SyntaxError) {
	if p.check(k) {
		return p.advance(), nil
	}

	return lexer.Token{}, p.errorf("expected %s, found %q", what, p.peek().Text)
}

func (p *Parser) expectPunct(s string) *SyntaxError {
	if p.acceptPunct(s) {
		return nil
	}

	return p.errorf("expected %q, found %q", s, p.peek().Text)
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Span: p.peek().Span, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) loc(start lexer.Span) ident.Location {
	return ident.NewLocation(p.file,
		ident.Position{Line: start.Line, Column: start.Column},
		ident.Position{Line: p.toks[max(0, p.index-1)].Span.Line, Column: p.toks[max(0, p.index-1)].Span.Column})
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func bigFromDecimal(s string) *big.Int {
	v := new(big.Int)
	v.SetString(s, 10)

	return v
}

func bigFromBase(s string, base int) *big.Int {
	v := new(big.Int)
	v.SetString(s, base)

	return v
}

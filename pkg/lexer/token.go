// Package lexer tokenises ASL source text.  The Token/Span shape here is
// grounded directly on the teacher's pkg/util/source Lexer[T]/Scanner[T]
// framework (Token{Kind, Span}, a Lexer wrapping a Scanner), specialised
// from scanning runes into s-expression punctuation to scanning runes into
// ASL's keyword/punctuation/literal alphabet (spec.md §4.4).
package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds.  Keywords get their own Kind so the parser never has to
// string-compare a generic Ident token against a keyword list.
const (
	KindEOF Kind = iota
	KindIdent
	KindIntLit
	KindSizedIntLit // i<N>'b.../'d.../'x...
	KindBitsLit     // '1010 1100', <N>'b.../'d.../'x...
	KindMaskLit     // '10xx'
	KindRealLit
	KindStringLit
	KindPunct
	firstKeyword
	KindAND
	KindOR
	KindXOR
	KindNOT
	KindDIV
	KindMOD
	KindDIVRM
	KindQUOT
	KindREM
	KindIN
	KindUNKNOWN
	KindIf
	KindElsif
	KindThen
	KindElse
	KindEnd
	KindCase
	KindWhen
	KindOf
	KindOtherwise
	KindWhere
	KindTry
	KindCatch
	KindRepeat
	KindUntil
	KindWhile
	KindFor
	KindTo
	KindDownto
	KindDo
	KindReturn
	KindThrow
	KindLet
	KindVar
	KindConstant
	KindConfig
	KindType
	KindRecord
	KindEnumeration
	KindException
	KindFunc
	KindGetter
	KindSetter
	KindBegin
	KindWith
	KindAs
	KindTypeof
	KindArray
	KindTrue
	KindFalse
	lastKeyword
)

var keywords = map[string]Kind{
	"AND": KindAND, "OR": KindOR, "XOR": KindXOR, "NOT": KindNOT,
	"DIV": KindDIV, "MOD": KindMOD, "DIVRM": KindDIVRM, "QUOT": KindQUOT,
	"REM": KindREM, "IN": KindIN, "UNKNOWN": KindUNKNOWN,
	"if": KindIf, "elsif": KindElsif, "then": KindThen, "else": KindElse,
	"end": KindEnd, "case": KindCase, "when": KindWhen, "of": KindOf,
	"otherwise": KindOtherwise, "where": KindWhere, "try": KindTry,
	"catch": KindCatch, "repeat": KindRepeat, "until": KindUntil,
	"while": KindWhile, "for": KindFor, "to": KindTo, "downto": KindDownto,
	"do": KindDo, "return": KindReturn, "throw": KindThrow, "let": KindLet,
	"var": KindVar, "constant": KindConstant, "config": KindConfig,
	"type": KindType, "record": KindRecord, "enumeration": KindEnumeration,
	"exception": KindException, "func": KindFunc, "getter": KindGetter,
	"setter": KindSetter, "begin": KindBegin, "with": KindWith, "as": KindAs,
	"typeof": KindTypeof, "array": KindArray,
	"TRUE": KindTrue, "FALSE": KindFalse,
}

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	for name, kind := range keywords {
		if kind == k {
			return name
		}
	}

	switch k {
	case KindEOF:
		return "<eof>"
	case KindIdent:
		return "<ident>"
	case KindIntLit:
		return "<int-literal>"
	case KindSizedIntLit:
		return "<sized-int-literal>"
	case KindBitsLit:
		return "<bits-literal>"
	case KindMaskLit:
		return "<mask-literal>"
	case KindRealLit:
		return "<real-literal>"
	case KindStringLit:
		return "<string-literal>"
	case KindPunct:
		return "<punct>"
	default:
		return fmt.Sprintf("<kind-%d>", k)
	}
}

// Span is a half-open byte range [Start, End) into the original source
// text, plus the line/column of its start for diagnostics.
type Span struct {
	Start, End   int
	Line, Column int
}

// Token pairs a Kind with the Span of text it covers and the literal text
// itself (already unescaped/normalised where applicable, e.g. string
// escapes are resolved during scanning).
type Token struct {
	Kind Kind
	Span Span
	Text string

	// Populated only for literal kinds; see the scan* functions in
	// lexer.go for which fields are meaningful for which Kind.
	IntValue   string // digits (in base BitsBase) of an IntLit/SizedIntLit/BitsLit value; decimal text of a RealLit
	BitsWidth  uint
	BitsBase   int // 2, 10 or 16, for IntLit/SizedIntLit/BitsLit
	MaskBits   string
	MaskCare   string
}

// IsKeyword reports whether k denotes one of ASL's reserved words.
func IsKeyword(k Kind) bool {
	return k > firstKeyword && k < lastKeyword
}

package lexer

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()

	l := New("t.asl", src)

	toks, err := l.Collect()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	return toks
}

func TestIntegerLiteralsWithUnderscoresAndHex(t *testing.T) {
	toks := collect(t, "1_000_000 0xFFFF_0000")

	if len(toks) != 3 { // two literals + EOF
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}

	if toks[0].Kind != KindIntLit || toks[0].IntValue != "1000000" {
		t.Errorf("got %+v", toks[0])
	}

	if toks[1].Kind != KindIntLit || toks[1].BitsBase != 16 || toks[1].IntValue != "FFFF0000" {
		t.Errorf("got %+v", toks[1])
	}
}

func TestSizedIntegerLiteral(t *testing.T) {
	toks := collect(t, "i8'd12 i4'b1010 i16'xFF")

	want := []struct {
		base  int
		width uint
		value string
	}{
		{10, 8, "12"},
		{2, 4, "1010"},
		{16, 16, "FF"},
	}

	for i, w := range want {
		if toks[i].Kind != KindSizedIntLit || toks[i].BitsBase != w.base || toks[i].BitsWidth != w.width || toks[i].IntValue != w.value {
			t.Errorf("token %d: got %+v, want %+v", i, toks[i], w)
		}
	}
}

func TestBitvectorLiterals(t *testing.T) {
	toks := collect(t, "'1010 1100' 4'b1010 8'xFF")

	if toks[0].Kind != KindBitsLit || toks[0].IntValue != "10101100" || toks[0].BitsWidth != 8 {
		t.Errorf("got %+v", toks[0])
	}

	if toks[1].Kind != KindBitsLit || toks[1].BitsWidth != 4 || toks[1].IntValue != "1010" {
		t.Errorf("got %+v", toks[1])
	}

	if toks[2].Kind != KindBitsLit || toks[2].BitsBase != 16 {
		t.Errorf("got %+v", toks[2])
	}
}

func TestMaskLiteral(t *testing.T) {
	toks := collect(t, "'10xx'")

	if toks[0].Kind != KindMaskLit || toks[0].MaskBits != "1000" || toks[0].MaskCare != "1100" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestStringEscapes(t *testing.T) {
	toks := collect(t, `"hello\nworld"`)

	if toks[0].Kind != KindStringLit || toks[0].Text != "hello\nworld" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestKeywordsAndPunctuation(t *testing.T) {
	toks := collect(t, "if x +: 3 elsif")

	wantKinds := []Kind{KindIf, KindIdent, KindPunct, KindIntLit, KindElsif, KindEOF}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got kind %v want %v", i, toks[i].Kind, k)
		}
	}

	if toks[2].Text != "+:" {
		t.Errorf("expected '+:' punctuation, got %q", toks[2].Text)
	}
}

func TestElseIfWarning(t *testing.T) {
	l := New("t.asl", "else if")

	if _, err := l.Collect(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(l.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(l.Warnings), l.Warnings)
	}
}

func TestNestedBlockComment(t *testing.T) {
	toks := collect(t, "/* outer /* inner */ still-comment */ 42")

	if toks[0].Kind != KindIntLit || toks[0].IntValue != "42" {
		t.Errorf("expected nested comment to be skipped entirely, got %+v", toks[0])
	}
}

func TestFencedBlockTreatedAsComment(t *testing.T) {
	src := "```\nsome prose that is not ASL\n```\n7"
	toks := collect(t, src)

	if toks[0].Kind != KindIntLit || toks[0].IntValue != "7" {
		t.Errorf("expected fenced block skipped, got %+v", toks[0])
	}
}

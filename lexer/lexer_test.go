package lexer

import (
	"math/big"
	"testing"

	"nilan/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func equalKinds(t *testing.T, got []token.Kind, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kind count = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	l := New("def foo return")
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{
		token.DEF, token.SPACE, token.IDENT, token.SPACE, token.RETURN, token.EOF,
	})
	if toks[2].Lexeme != "foo" {
		t.Errorf("identifier lexeme = %q, want %q", toks[2].Lexeme, "foo")
	}
}

func TestScanDecimalInt(t *testing.T) {
	l := New("42")
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{token.NUMBER, token.EOF})
	got, ok := toks[0].Literal.(*big.Int)
	if !ok {
		t.Fatalf("literal type = %T, want *big.Int", toks[0].Literal)
	}
	if got.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("literal = %v, want 42", got)
	}
}

func TestScanHexBinaryOctal(t *testing.T) {
	tests := []struct {
		src  string
		want int64
		sub  token.SubKind
	}{
		{"0x1F", 31, token.SubHex},
		{"0b101", 5, token.SubBinary},
		{"0o17", 15, token.SubOctal},
	}
	for _, tt := range tests {
		l := New(tt.src)
		toks, err := l.Scan()
		if err != nil {
			t.Fatalf("Scan(%q) returned error: %v", tt.src, err)
		}
		got, ok := toks[0].Literal.(*big.Int)
		if !ok {
			t.Fatalf("Scan(%q) literal type = %T, want *big.Int", tt.src, toks[0].Literal)
		}
		if got.Cmp(big.NewInt(tt.want)) != 0 {
			t.Errorf("Scan(%q) literal = %v, want %d", tt.src, got, tt.want)
		}
		if toks[0].SubKind != tt.sub {
			t.Errorf("Scan(%q) subkind = %v, want %v", tt.src, toks[0].SubKind, tt.sub)
		}
	}
}

func TestScanFloatAndComplex(t *testing.T) {
	l := New("3.14 2j")
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{token.NUMBER, token.SPACE, token.NUMBER, token.EOF})
	if v, ok := toks[0].Literal.(float64); !ok || v != 3.14 {
		t.Errorf("float literal = %v (%T), want 3.14", toks[0].Literal, toks[0].Literal)
	}
	if v, ok := toks[2].Literal.(complex128); !ok || v != complex(0, 2) {
		t.Errorf("complex literal = %v (%T), want 2i", toks[2].Literal, toks[2].Literal)
	}
}

func TestScanStringPlainAndRaw(t *testing.T) {
	l := New(`"a\nb" r"a\nb"`)
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{token.STRING, token.SPACE, token.STRING, token.EOF})
	if toks[0].Literal != "a\nb" {
		t.Errorf("plain string literal = %q, want %q", toks[0].Literal, "a\nb")
	}
	if toks[2].Literal != `a\nb` {
		t.Errorf("raw string literal = %q, want %q", toks[2].Literal, `a\nb`)
	}
}

func TestScanBytesLiteral(t *testing.T) {
	l := New(`b"ab"`)
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{token.STRING, token.EOF})
	got, ok := toks[0].Literal.([]byte)
	if !ok {
		t.Fatalf("bytes literal type = %T, want []byte", toks[0].Literal)
	}
	if string(got) != "ab" {
		t.Errorf("bytes literal = %q, want %q", got, "ab")
	}
}

func TestScanTripleQuotedStringSpansNewlines(t *testing.T) {
	l := New("\"\"\"a\nb\"\"\"")
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{token.STRING, token.EOF})
	if toks[0].Literal != "a\nb" {
		t.Errorf("triple-quoted literal = %q, want %q", toks[0].Literal, "a\nb")
	}
}

func TestScanOperatorsLongestFirst(t *testing.T) {
	l := New("** // <<= != -> == <=")
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	want := []token.Kind{
		token.DOUBLESTAR, token.SPACE,
		token.DOUBLESLASH, token.SPACE,
		token.LSHIFTEQ, token.SPACE,
		token.NOTEQ, token.SPACE,
		token.ARROW, token.SPACE,
		token.EQ, token.SPACE,
		token.LESSEQ, token.EOF,
	}
	equalKinds(t, kinds(toks), want)
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	l := New(`"abc`)
	_, err := l.Scan()
	if err == nil {
		t.Fatal("expected error for unterminated string, got nil")
	}
}

func TestScanIllegalCharacterIsTotal(t *testing.T) {
	l := New("x $ y")
	toks, err := l.Scan()
	if err == nil {
		t.Fatal("expected error for illegal character, got nil")
	}
	var sawIllegal bool
	for _, tok := range toks {
		if tok.Kind == token.ILLEGAL {
			sawIllegal = true
		}
	}
	if !sawIllegal {
		t.Errorf("expected an ILLEGAL token in stream, got %v", kinds(toks))
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Errorf("last token = %v, want EOF (scan must still terminate)", toks[len(toks)-1].Kind)
	}
}

func TestScanWhitespaceTokensPreserveIndentation(t *testing.T) {
	l := New("  \tx")
	toks, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	equalKinds(t, kinds(toks), []token.Kind{
		token.SPACE, token.SPACE, token.TAB, token.IDENT, token.EOF,
	})
}

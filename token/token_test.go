package token

import "testing"

func TestLookupIdentKeyword(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Kind
	}{
		{"def", DEF},
		{"return", RETURN},
		{"True", TRUE},
		{"False", FALSE},
		{"None", NONE},
		{"notakeyword", IDENT},
		{"x", IDENT},
	}

	for _, tt := range tests {
		got := LookupIdent(tt.lexeme)
		if got != tt.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.lexeme, got, tt.want)
		}
	}
}

func TestNewUsesCanonicalLexeme(t *testing.T) {
	tok := New(PLUS, 1, 2)
	if tok.Lexeme != "+" {
		t.Errorf("New(PLUS).Lexeme = %q, want %q", tok.Lexeme, "+")
	}
	if tok.Line != 1 || tok.Column != 2 {
		t.Errorf("New(PLUS) position = (%d,%d), want (1,2)", tok.Line, tok.Column)
	}
}

func TestNewLiteralCarriesPayload(t *testing.T) {
	tok := NewLiteral(NUMBER, "42", int64(42), SubInt, 3, 0)
	if tok.Literal != int64(42) {
		t.Errorf("NewLiteral literal = %v, want 42", tok.Literal)
	}
	if tok.SubKind != SubInt {
		t.Errorf("NewLiteral subkind = %v, want SubInt", tok.SubKind)
	}
}

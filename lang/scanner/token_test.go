package scanner

import "testing"

func TestTokenKindNames(t *testing.T) {
	seen := make(map[string]TokenKind)
	for k := TokenKind(0); k < tokenKindCount; k++ {
		name := k.String()
		if name == "" || name == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
		if other, ok := seen[name]; ok {
			t.Errorf("kinds %d and %d share the name %q", other, k, name)
		}
		seen[name] = k
	}
	if got := tokenKindCount.String(); got != "unknown" {
		t.Errorf("got %q for out of range kind", got)
	}
}

func TestTokenKindClasses(t *testing.T) {
	for k := TokenKind(0); k < tokenKindCount; k++ {
		classes := 0
		if k.IsKeyword() {
			classes++
			if _, ok := keywords[k.String()]; !ok {
				t.Errorf("%v is a keyword kind but not a reserved word", k)
			}
		}
		if k.IsComment() {
			classes++
		}
		if k.IsLexicalError() {
			classes++
			if LexicalError(Token{Kind: k}) == "" {
				t.Errorf("%v has no lexical error description", k)
			}
		}
		if classes > 1 {
			t.Errorf("%v belongs to %d classes", k, classes)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		kind TokenKind
	}{
		{"if", TokenIf},
		{"IF", TokenInvalidReservedWord},
		{"If", TokenInvalidReservedWord},
		{"Main", TokenInvalidReservedWord},
		{"inherits", TokenInherits},
		{"iff", TokenID},
		{"x", TokenID},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := LookupKeyword(tt.word); got != tt.kind {
				t.Errorf("got %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Kind: TokenID, Lexeme: "abc", Line: 3}, "[id, abc, 3]"},
		{Token{Kind: TokenOpenPar, Lexeme: "(", Line: 1}, "[openpar, (, 1]"},
		{Token{Kind: TokenBlockCmt, Lexeme: "/* a\nb */", Line: 2}, `[blockcmt, /* a\nb */, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLexicalError(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Kind: TokenInvalidNum, Lexeme: "02"}, "invalid number '02'"},
		{Token{Kind: TokenInvalidChar, Lexeme: "@"}, "invalid character '@'"},
		{Token{Kind: TokenInvalidID, Lexeme: "abc$"}, "invalid identifier 'abc$'"},
		{Token{Kind: TokenInvalidReservedWord, Lexeme: "IF"}, "invalid reserved word 'IF'"},
		{Token{Kind: TokenInvalidCmt, Lexeme: "/* a\nb"}, `unterminated comment '/* a\nb'`},
		{Token{Kind: TokenID, Lexeme: "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.tok.Kind.String(), func(t *testing.T) {
			if got := LexicalError(tt.tok); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	words := Keywords()
	if len(words) != 21 {
		t.Fatalf("got %d keywords", len(words))
	}
	for _, w := range words {
		if kind := LookupKeyword(w); !kind.IsKeyword() || kind.String() != w {
			t.Errorf("%s: looked up as %s", w, kind)
		}
	}
}

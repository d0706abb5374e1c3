package ll1

import (
	"testing"

	"github.com/dhamidi/llfront/lang/scanner"
)

func TestTerminalFor(t *testing.T) {
	tests := []struct {
		kind scanner.TokenKind
		want Terminal
	}{
		{scanner.TokenEOF, "$"},
		{scanner.TokenOpenPar, "lpar"},
		{scanner.TokenClosePar, "rpar"},
		{scanner.TokenOpenCuBr, "lcurbr"},
		{scanner.TokenCloseCuBr, "rcurbr"},
		{scanner.TokenOpenSqBr, "lsqbr"},
		{scanner.TokenCloseSqBr, "rsqbr"},
		{scanner.TokenAssign, "equal"},
		{scanner.TokenNotEq, "neq"},
		{scanner.TokenColonColon, "sr"},
		{scanner.TokenEq, "eq"},
		{scanner.TokenID, "id"},
		{scanner.TokenFloatNum, "floatnum"},
		{scanner.TokenInherits, "inherits"},
		{scanner.TokenSemi, "semi"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := TerminalFor(tt.kind)
			if !ok || got != tt.want {
				t.Errorf("got %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestTerminalForEveryKind(t *testing.T) {
	seen := make(map[Terminal]scanner.TokenKind)
	for kind := scanner.TokenEOF; kind <= scanner.TokenInvalidCmt; kind++ {
		term, ok := TerminalFor(kind)
		if kind.IsLexicalError() {
			if ok {
				t.Errorf("%s: lexical error mapped to %q", kind, term)
			}
			continue
		}
		if !ok || term == "" {
			t.Errorf("%s: no terminal", kind)
			continue
		}
		if prev, dup := seen[term]; dup {
			t.Errorf("%s and %s both map to %q", prev, kind, term)
		}
		seen[term] = kind
	}
}

type tokenSlice []scanner.Token

func (s *tokenSlice) NextToken() scanner.Token {
	if len(*s) == 0 {
		return scanner.Token{Kind: scanner.TokenEOF, Line: 9}
	}
	tok := (*s)[0]
	*s = (*s)[1:]
	return tok
}

func TestTerminalStream(t *testing.T) {
	src := &tokenSlice{
		{Kind: scanner.TokenBlockCmt, Lexeme: "/* a */", Line: 1},
		{Kind: scanner.TokenInlineCmt, Lexeme: "// b", Line: 1},
		{Kind: scanner.TokenOpenPar, Lexeme: "(", Line: 2},
		{Kind: scanner.TokenInvalidNum, Lexeme: "02", Line: 2},
		{Kind: scanner.TokenInlineCmt, Lexeme: "// c", Line: 3},
	}
	stream := NewTerminalStream(src)

	want := []Lookahead{
		{Terminal: "lpar", Token: scanner.Token{Kind: scanner.TokenOpenPar, Lexeme: "(", Line: 2}},
		{Token: scanner.Token{Kind: scanner.TokenInvalidNum, Lexeme: "02", Line: 2}, Invalid: true},
		{Terminal: "$", Token: scanner.Token{Kind: scanner.TokenEOF, Line: 9}},
		{Terminal: "$", Token: scanner.Token{Kind: scanner.TokenEOF, Line: 9}},
	}
	for i, w := range want {
		if got := stream.Next(); got != w {
			t.Errorf("lookahead %d: got %+v, want %+v", i, got, w)
		}
	}
}

package ll1

import "github.com/dhamidi/llfront/lang/scanner"

// TokenSource produces tokens on demand. *scanner.Lexer implements it.
type TokenSource interface {
	NextToken() scanner.Token
}

// terminalNames holds the token kinds whose grammar name differs from the
// scanner's name for them.
var terminalNames = map[scanner.TokenKind]Terminal{
	scanner.TokenEOF:        EndOfInput,
	scanner.TokenOpenPar:    "lpar",
	scanner.TokenClosePar:   "rpar",
	scanner.TokenOpenCuBr:   "lcurbr",
	scanner.TokenCloseCuBr:  "rcurbr",
	scanner.TokenOpenSqBr:   "lsqbr",
	scanner.TokenCloseSqBr:  "rsqbr",
	scanner.TokenAssign:     "equal",
	scanner.TokenNotEq:      "neq",
	scanner.TokenColonColon: "sr",
}

// TerminalFor maps a token kind to its grammar terminal. It reports false
// for lexical error kinds, which have no terminal.
func TerminalFor(kind scanner.TokenKind) (Terminal, bool) {
	if kind.IsLexicalError() {
		return "", false
	}
	if name, ok := terminalNames[kind]; ok {
		return name, true
	}
	return Terminal(kind.String()), true
}

// Lookahead is the next terminal together with the token it came from.
// Invalid is set for lexical error tokens; Terminal is empty then.
type Lookahead struct {
	Terminal Terminal
	Token    scanner.Token
	Invalid  bool
}

// TerminalStream adapts a TokenSource to the parser: it drops comments and
// translates token kinds to terminals.
type TerminalStream struct {
	src TokenSource
}

func NewTerminalStream(src TokenSource) *TerminalStream {
	return &TerminalStream{src: src}
}

// Next returns the next non-comment terminal. At the end of input it keeps
// returning EndOfInput.
func (s *TerminalStream) Next() Lookahead {
	tok := s.src.NextToken()
	for tok.Kind.IsComment() {
		tok = s.src.NextToken()
	}
	term, ok := TerminalFor(tok.Kind)
	return Lookahead{
		Terminal: term,
		Token:    tok,
		Invalid:  !ok,
	}
}

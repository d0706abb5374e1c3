// Package scanner turns source text of the class language into tokens.
//
// The Lexer is pull based: every call to NextToken scans exactly one lexeme.
// Comments are returned as tokens and malformed lexemes are returned as
// lexical error tokens, so a caller always gets a complete classification of
// the input and decides itself what to skip and what to report.
package scanner

import (
	"strings"
	"unicode/utf8"
)

// Position is a byte offset into the input and its 1-based line.
type Position struct {
	Offset int
	Line   int
}

// Lexer scans an in-memory source buffer. A Lexer is not safe for
// concurrent use.
type Lexer struct {
	input []byte
	pos   int
	line  int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		pos:   0,
		line:  1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
	}
}

// Offset returns the byte offset of the next unscanned byte.
func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.peek()) {
		l.advance()
	}
}

// NextToken scans the next lexeme. Once the input is exhausted it returns a
// TokenEOF token on every call; every other token spans at least one byte.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.Position()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Line: start.Line}
	}

	ch := l.peek()

	if isLetter(ch) {
		return l.scanWord(start)
	}
	if isDigit(ch) {
		return l.scanNumber(start)
	}
	if ch == '/' && l.peekN(1) == '/' {
		return l.scanInlineComment(start)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) scanWord(start Position) Token {
	for isWordChar(l.peek()) {
		l.advance()
	}

	// A word must end at whitespace, end of input, or the start of an
	// operator. Anything else makes the whole run up to the next whitespace
	// a single malformed identifier.
	if !l.atEnd() && !isWhitespace(l.peek()) && !canFollowWord(l.peek()) {
		for !l.atEnd() && !isWhitespace(l.peek()) {
			l.advance()
		}
		return l.token(TokenInvalidID, start)
	}

	lexeme := string(l.input[start.Offset:l.pos])
	return Token{
		Kind:   LookupKeyword(lexeme),
		Lexeme: lexeme,
		Line:   start.Line,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advanceN(2)
		for isDigit(l.peek()) {
			l.advance()
		}

		if l.peek() == 'e' && (isDigit(l.peekN(1)) || (isSign(l.peekN(1)) && isDigit(l.peekN(2)))) {
			l.advanceN(2)
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	// Letters glued to a numeral belong to it: "12abc" is one bad number,
	// not a number followed by an identifier.
	for isWordChar(l.peek()) {
		l.advance()
	}

	lexeme := string(l.input[start.Offset:l.pos])
	return Token{
		Kind:   classifyNumber(lexeme),
		Lexeme: lexeme,
		Line:   start.Line,
	}
}

// classifyNumber validates a scanned numeral against
//
//	integer  = nonzero {digit} | "0"
//	fraction = "." {digit} nonzero | ".0"
//	float    = integer fraction [ "e" [ "+" | "-" ] integer ]
func classifyNumber(lexeme string) TokenKind {
	mantissa, exponent, hasExponent := strings.Cut(lexeme, "e")
	whole, fraction, hasFraction := strings.Cut(mantissa, ".")

	switch {
	case !hasFraction && !hasExponent && validInteger(whole):
		return TokenIntNum
	case hasFraction && validInteger(whole) && validFraction(fraction) &&
		(!hasExponent || validExponent(exponent)):
		return TokenFloatNum
	}
	return TokenInvalidNum
}

func validInteger(s string) bool {
	if s == "0" {
		return true
	}
	if s == "" || s[0] == '0' {
		return false
	}
	return allDigits(s)
}

func validFraction(s string) bool {
	if s == "0" {
		return true
	}
	return s != "" && allDigits(s) && s[len(s)-1] != '0'
}

func validExponent(s string) bool {
	if s != "" && isSign(s[0]) {
		s = s[1:]
	}
	return validInteger(s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func (l *Lexer) scanInlineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenInlineCmt, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for {
		if l.atEnd() {
			return l.token(TokenInvalidCmt, start)
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenBlockCmt, start)
		}
		l.advance()
	}
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '-':
		l.advance()
		return l.token(TokenMinus, start)
	case '*':
		l.advance()
		return l.token(TokenMult, start)
	case '/':
		l.advance()
		return l.token(TokenDiv, start)
	case '(':
		l.advance()
		return l.token(TokenOpenPar, start)
	case ')':
		l.advance()
		return l.token(TokenClosePar, start)
	case '{':
		l.advance()
		return l.token(TokenOpenCuBr, start)
	case '}':
		l.advance()
		return l.token(TokenCloseCuBr, start)
	case '[':
		l.advance()
		return l.token(TokenOpenSqBr, start)
	case ']':
		l.advance()
		return l.token(TokenCloseSqBr, start)
	case ';':
		l.advance()
		return l.token(TokenSemi, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)

	case ':':
		if l.peekN(1) == ':' {
			l.advanceN(2)
			return l.token(TokenColonColon, start)
		}
		l.advance()
		return l.token(TokenColon, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEq, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '<':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLEq, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenNotEq, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGEq, start)
		}
		l.advance()
		return l.token(TokenGT, start)
	}

	// One whole character, so a multi-byte rune is reported as itself.
	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.token(TokenInvalidChar, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:   kind,
		Lexeme: string(l.input[start.Offset:l.pos]),
		Line:   start.Line,
	}
}

// Tokenize scans all of input. The result always ends with the TokenEOF
// token.
func Tokenize(input []byte) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isSign(ch byte) bool {
	return ch == '+' || ch == '-'
}

// canFollowWord reports whether ch may directly follow an identifier or
// keyword without separating whitespace.
func canFollowWord(ch byte) bool {
	return strings.IndexByte("=<>+-*/(){}[];,.:", ch) >= 0
}

// Replay serves tokens scanned earlier, e.g. by Tokenize. Once the tokens
// are used up it keeps returning the last EOF token.
type Replay struct {
	tokens []Token
	pos    int
	eof    Token
}

func NewReplay(tokens []Token) *Replay {
	r := &Replay{tokens: tokens, eof: Token{Kind: TokenEOF, Line: 1}}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokenEOF {
		r.eof = tokens[n-1]
	}
	return r
}

func (r *Replay) NextToken() Token {
	if r.pos >= len(r.tokens) {
		return r.eof
	}
	tok := r.tokens[r.pos]
	r.pos++
	return tok
}

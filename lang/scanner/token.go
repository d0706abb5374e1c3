package scanner

import (
	"fmt"
	"strings"
)

type TokenKind int

const (
	TokenEOF TokenKind = iota

	TokenID
	TokenIntNum
	TokenFloatNum

	// Operators
	TokenEq
	TokenNotEq
	TokenLT
	TokenGT
	TokenLEq
	TokenGEq
	TokenAssign
	TokenPlus
	TokenMinus
	TokenMult
	TokenDiv

	// Punctuation
	TokenOpenPar
	TokenClosePar
	TokenOpenCuBr
	TokenCloseCuBr
	TokenOpenSqBr
	TokenCloseSqBr
	TokenSemi
	TokenComma
	TokenDot
	TokenColon
	TokenColonColon

	// Keywords
	TokenIf
	TokenThen
	TokenElse
	TokenWhile
	TokenClass
	TokenInteger
	TokenFloat
	TokenDo
	TokenEnd
	TokenPublic
	TokenPrivate
	TokenOr
	TokenAnd
	TokenNot
	TokenRead
	TokenWrite
	TokenReturn
	TokenInherits
	TokenLocal
	TokenVoid
	TokenMain

	// Comments
	TokenBlockCmt
	TokenInlineCmt

	// Lexical errors
	TokenInvalidChar
	TokenInvalidNum
	TokenInvalidID
	TokenInvalidReservedWord
	TokenInvalidCmt

	tokenKindCount
)

var tokenKindNames = [tokenKindCount]string{
	TokenEOF:                 "eof",
	TokenID:                  "id",
	TokenIntNum:              "intnum",
	TokenFloatNum:            "floatnum",
	TokenEq:                  "eq",
	TokenNotEq:               "noteq",
	TokenLT:                  "lt",
	TokenGT:                  "gt",
	TokenLEq:                 "leq",
	TokenGEq:                 "geq",
	TokenAssign:              "assign",
	TokenPlus:                "plus",
	TokenMinus:               "minus",
	TokenMult:                "mult",
	TokenDiv:                 "div",
	TokenOpenPar:             "openpar",
	TokenClosePar:            "closepar",
	TokenOpenCuBr:            "opencubr",
	TokenCloseCuBr:           "closecubr",
	TokenOpenSqBr:            "opensqbr",
	TokenCloseSqBr:           "closesqbr",
	TokenSemi:                "semi",
	TokenComma:               "comma",
	TokenDot:                 "dot",
	TokenColon:               "colon",
	TokenColonColon:          "coloncolon",
	TokenIf:                  "if",
	TokenThen:                "then",
	TokenElse:                "else",
	TokenWhile:               "while",
	TokenClass:               "class",
	TokenInteger:             "integer",
	TokenFloat:               "float",
	TokenDo:                  "do",
	TokenEnd:                 "end",
	TokenPublic:              "public",
	TokenPrivate:             "private",
	TokenOr:                  "or",
	TokenAnd:                 "and",
	TokenNot:                 "not",
	TokenRead:                "read",
	TokenWrite:               "write",
	TokenReturn:              "return",
	TokenInherits:            "inherits",
	TokenLocal:               "local",
	TokenVoid:                "void",
	TokenMain:                "main",
	TokenBlockCmt:            "blockcmt",
	TokenInlineCmt:           "inlinecmt",
	TokenInvalidChar:         "invalidchar",
	TokenInvalidNum:          "invalidnum",
	TokenInvalidID:           "invalidid",
	TokenInvalidReservedWord: "invalidreservedword",
	TokenInvalidCmt:          "invalidcmt",
}

func (k TokenKind) String() string {
	if k >= 0 && k < tokenKindCount {
		return tokenKindNames[k]
	}
	return "unknown"
}

// IsKeyword reports whether k is one of the reserved words.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenIf && k <= TokenMain
}

func (k TokenKind) IsComment() bool {
	switch k {
	case TokenBlockCmt, TokenInlineCmt:
		return true
	}
	return false
}

// IsLexicalError reports whether k marks a lexeme the scanner could not
// accept.
func (k TokenKind) IsLexicalError() bool {
	switch k {
	case TokenInvalidChar, TokenInvalidNum, TokenInvalidID, TokenInvalidReservedWord, TokenInvalidCmt:
		return true
	}
	return false
}

// Token is a single scanned lexeme. Line is 1-based and refers to the first
// byte of the lexeme.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}

var lexemeEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)

// String renders the token as "[kind, lexeme, line]".
func (t Token) String() string {
	return fmt.Sprintf("[%s, %s, %d]", t.Kind, lexemeEscaper.Replace(t.Lexeme), t.Line)
}

var lexicalErrorNames = map[TokenKind]string{
	TokenInvalidChar:         "invalid character",
	TokenInvalidNum:          "invalid number",
	TokenInvalidID:           "invalid identifier",
	TokenInvalidReservedWord: "invalid reserved word",
	TokenInvalidCmt:          "unterminated comment",
}

// LexicalError describes why tok was rejected, e.g. "invalid number '02'".
// It returns "" for tokens that are not lexical errors.
func LexicalError(tok Token) string {
	name, ok := lexicalErrorNames[tok.Kind]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s '%s'", name, lexemeEscaper.Replace(tok.Lexeme))
}

var keywords = map[string]TokenKind{
	"if":       TokenIf,
	"then":     TokenThen,
	"else":     TokenElse,
	"while":    TokenWhile,
	"class":    TokenClass,
	"integer":  TokenInteger,
	"float":    TokenFloat,
	"do":       TokenDo,
	"end":      TokenEnd,
	"public":   TokenPublic,
	"private":  TokenPrivate,
	"or":       TokenOr,
	"and":      TokenAnd,
	"not":      TokenNot,
	"read":     TokenRead,
	"write":    TokenWrite,
	"return":   TokenReturn,
	"inherits": TokenInherits,
	"local":    TokenLocal,
	"void":     TokenVoid,
	"main":     TokenMain,
}

// LookupKeyword classifies a well-formed word. Reserved words are case
// sensitive: a word that only matches one after lowercasing is an invalid
// reserved word rather than an identifier.
func LookupKeyword(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	if _, ok := keywords[strings.ToLower(word)]; ok {
		return TokenInvalidReservedWord
	}
	return TokenID
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	words := make([]string, 0, TokenMain-TokenIf+1)
	for k := TokenIf; k <= TokenMain; k++ {
		words = append(words, k.String())
	}
	return words
}

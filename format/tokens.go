package format

import (
	"io"
	"strings"

	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/dhamidi/llfront/lang/scanner"
)

// TokenEncoder writes a token dump with the tokens of one source line per
// output line, separated by spaces. The EOF token is omitted.
type TokenEncoder struct {
	w      io.Writer
	tokens []scanner.Token
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []scanner.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	line := 0
	for _, tok := range e.tokens {
		if tok.Kind == scanner.TokenEOF {
			continue
		}
		switch {
		case line == 0:
		case tok.Line != line:
			sb.WriteByte('\n')
		default:
			sb.WriteByte(' ')
		}
		line = tok.Line
		sb.WriteString(tok.String())
	}
	if line != 0 {
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// LexErrorEncoder writes one line per lexical error token, worded like the
// parser's lexical diagnostics.
type LexErrorEncoder struct {
	w      io.Writer
	tokens []scanner.Token
}

func NewLexErrorEncoder(w io.Writer) *LexErrorEncoder {
	return &LexErrorEncoder{w: w}
}

func (e *LexErrorEncoder) Encode(tokens []scanner.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LexErrorEncoder) MarshalText() ([]byte, error) {
	var lines []string
	for _, tok := range e.tokens {
		if !tok.Kind.IsLexicalError() {
			continue
		}
		d := ll1.Diagnostic{
			Kind:   ll1.LexicalError,
			Line:   tok.Line,
			Token:  tok,
			Reason: scanner.LexicalError(tok),
		}
		lines = append(lines, d.String())
	}
	return joinLines(lines), nil
}

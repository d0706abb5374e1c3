package ll1

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// VerifyTable cross-checks a table against the grammar it was built from.
// Every non-terminal of the table must be a non-lexical production of g and
// every terminal other than EndOfInput a lexical one. All problems are
// returned joined together.
func VerifyTable(t *Table, g ebnf.Grammar) error {
	var errs []error

	for _, nt := range t.NonTerminals() {
		prod, ok := g[string(nt)]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("non-terminal %s: no grammar production", nt))
		case isLexical(prod.Name.String):
			errs = append(errs, fmt.Errorf("non-terminal %s: grammar defines it as a lexical production", nt))
		}
	}

	for _, term := range t.Terminals() {
		if term == EndOfInput {
			continue
		}
		prod, ok := g[string(term)]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("terminal %s: no grammar production", term))
		case !isLexical(prod.Name.String):
			errs = append(errs, fmt.Errorf("terminal %s: grammar defines it as a non-lexical production", term))
		}
	}

	return errors.Join(errs...)
}

// isLexical mirrors the ebnf package: a production is lexical unless its
// name starts with an upper-case letter.
func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

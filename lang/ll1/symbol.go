package ll1

import (
	"fmt"
	"strings"
)

// Symbol is a grammar symbol: either a Terminal or a NonTerminal.
type Symbol interface {
	fmt.Stringer
	isSymbol()
}

type Terminal string

func (t Terminal) String() string { return string(t) }
func (Terminal) isSymbol()        {}

type NonTerminal string

func (n NonTerminal) String() string { return string(n) }
func (NonTerminal) isSymbol()        {}

const (
	// EndOfInput is the lookahead after the last token and the bottom of
	// the parser stack.
	EndOfInput Terminal = "$"

	DefaultStart NonTerminal = "START"
)

// Production is the right-hand side of a grammar rule. An empty Production
// is an epsilon production.
type Production []Symbol

func (p Production) String() string {
	return SententialForm(p).String()
}

// SententialForm is one step of a derivation. It is treated as immutable:
// Replace returns a new form and never modifies the receiver.
type SententialForm []Symbol

const epsilon = "epsilon"

// Replace substitutes rhs for the leftmost occurrence of nt. The form is
// returned unchanged when nt does not occur in it.
func (f SententialForm) Replace(nt NonTerminal, rhs Production) SententialForm {
	for i, sym := range f {
		if sym != nt {
			continue
		}
		next := make(SententialForm, 0, len(f)-1+len(rhs))
		next = append(next, f[:i]...)
		next = append(next, rhs...)
		return append(next, f[i+1:]...)
	}
	return f
}

// String joins the symbols with spaces; the empty form is "epsilon".
func (f SententialForm) String() string {
	if len(f) == 0 {
		return epsilon
	}
	parts := make([]string, len(f))
	for i, sym := range f {
		parts[i] = sym.String()
	}
	return strings.Join(parts, " ")
}

package ll1

import (
	"fmt"

	"github.com/dhamidi/llfront/lang/scanner"
)

type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	TerminalMismatch
	NoProduction
	StepLimitExceeded
	LeftRecursion
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case TerminalMismatch:
		return "TerminalMismatch"
	case NoProduction:
		return "NoProduction"
	case StepLimitExceeded:
		return "StepLimitExceeded"
	case LeftRecursion:
		return "LeftRecursion"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single recovered error. Token is the lookahead at the time
// the error was detected and Line is its line.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int
	Token  scanner.Token
	Reason string
}

func (d Diagnostic) String() string {
	if d.Kind == LexicalError {
		return fmt.Sprintf("Lexical error: %s at line %d.", d.Reason, d.Line)
	}
	return fmt.Sprintf("Syntax error at line %d: %s.", d.Line, d.Reason)
}

// IncompleteDerivation terminates the derivation of a run that recorded
// diagnostics.
const IncompleteDerivation = "Incomplete derivation due to syntax errors."

// Result is the outcome of one parse. Errors holds the rendered Diagnostics
// in detection order; Derivation holds one rendered sentential form per
// expansion, starting with the start symbol.
type Result struct {
	Success     bool
	Errors      []string
	Derivation  []string
	Diagnostics []Diagnostic
}

// FinalForm returns the last sentential form of the derivation, ignoring the
// IncompleteDerivation marker.
func (r *Result) FinalForm() string {
	for i := len(r.Derivation) - 1; i >= 0; i-- {
		if r.Derivation[i] != IncompleteDerivation {
			return r.Derivation[i]
		}
	}
	return ""
}

func describeToken(tok scanner.Token) string {
	if tok.Kind == scanner.TokenEOF {
		return "end of file"
	}
	return fmt.Sprintf("'%s' (%s)", tok.Lexeme, tok.Kind)
}

package ll1

import (
	"fmt"
	"strings"

	"github.com/dhamidi/llfront/lang/scanner"
	"github.com/tliron/commonlog"
)

// DefaultStepLimit bounds the number of parser steps. Tables that would
// loop forever are stopped much earlier by the left recursion check; the
// limit only caps the work spent on very large inputs.
const DefaultStepLimit = 1 << 24

type Option func(*Parser)

// WithFile names the input in log messages.
func WithFile(name string) Option {
	return func(p *Parser) {
		p.file = name
	}
}

// WithStepLimit overrides DefaultStepLimit. A limit of zero or less disables
// the check.
func WithStepLimit(n int) Option {
	return func(p *Parser) {
		p.stepLimit = n
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser is a pushdown automaton driven by a Table. A Parser may be reused
// for several inputs but is not safe for concurrent use.
type Parser struct {
	table     *Table
	file      string
	stepLimit int
	log       commonlog.Logger

	input       *TerminalStream
	lookahead   Lookahead
	stack       []Symbol
	expansions  []expansion
	form        SententialForm
	derivation  []string
	diagnostics []Diagnostic
}

func New(table *Table, opts ...Option) *Parser {
	p := &Parser{
		table:     table,
		file:      "<input>",
		stepLimit: DefaultStepLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = commonlog.GetLogger("llfront.ll1")
	}
	return p
}

// ParseBytes scans and parses input in one call.
func ParseBytes(table *Table, input []byte, opts ...Option) *Result {
	return New(table, opts...).Parse(scanner.NewLexer(input))
}

// Parse consumes src up to the end of input and returns the outcome. It
// always terminates and never fails: every problem is a Diagnostic in the
// Result.
func (p *Parser) Parse(src TokenSource) *Result {
	start := p.table.Start()
	p.input = NewTerminalStream(src)
	p.stack = []Symbol{EndOfInput, start}
	p.expansions = p.expansions[:0]
	p.form = SententialForm{start}
	p.derivation = []string{p.form.String()}
	p.diagnostics = nil

	p.advance()
	steps := 0
	for p.top() != EndOfInput {
		steps++
		if p.stepLimit > 0 && steps > p.stepLimit {
			p.report(StepLimitExceeded, fmt.Sprintf("parsing abandoned after %d steps", p.stepLimit))
			return p.result()
		}
		if !p.step() {
			return p.result()
		}
	}
	p.drain()

	return p.result()
}

// step performs one move of the automaton. It returns false when the parse
// cannot make progress and has to be abandoned.
func (p *Parser) step() bool {
	la := p.lookahead

	if la.Invalid {
		p.report(LexicalError, scanner.LexicalError(la.Token))
		p.advance()
		return true
	}

	switch top := p.top().(type) {
	case Terminal:
		if top == la.Terminal {
			p.pop()
			p.advance()
			return true
		}
		p.report(TerminalMismatch, fmt.Sprintf("expected '%s' but found %s", top, describeToken(la.Token)))
		p.pop()

	case NonTerminal:
		if rhs, ok := p.table.Lookup(top, la.Terminal); ok {
			return p.expand(top, rhs)
		}
		p.report(NoProduction, fmt.Sprintf("unexpected %s while parsing %s; expected one of: %s",
			describeToken(la.Token), top, p.expected(top)))

		if la.Terminal == EndOfInput || p.table.Vanishes(top, la.Terminal) {
			p.log.Debugf("%s:%d: %s vanishes on %s", p.file, la.Token.Line, top, la.Terminal)
			p.pop()
			return true
		}
		p.log.Debugf("%s:%d: discarding %s while parsing %s", p.file, la.Token.Line, la.Terminal, top)
		p.advance()
	}
	return true
}

// drain reports input left over once the start symbol has been derived.
// Lexical errors are still reported one by one; the first leftover terminal
// is reported once and the rest is skipped.
func (p *Parser) drain() {
	reported := false
	for p.lookahead.Terminal != EndOfInput {
		switch {
		case p.lookahead.Invalid:
			p.report(LexicalError, scanner.LexicalError(p.lookahead.Token))
		case !reported:
			p.report(TerminalMismatch, fmt.Sprintf("expected end of file but found %s", describeToken(p.lookahead.Token)))
			reported = true
		}
		p.advance()
	}
}

// expansion records a non-terminal expanded since the last lookahead was
// read, together with the stack height it was expanded at.
type expansion struct {
	nt     NonTerminal
	height int
}

// expand replaces nt on top of the stack by rhs. It returns false when nt was
// already expanded on the same lookahead at the same or a lower height and
// the stack below has not been touched since: from then on the parser would
// repeat the same moves forever, so the table is left-recursive for this
// lookahead.
func (p *Parser) expand(nt NonTerminal, rhs Production) bool {
	height := len(p.stack)
	p.pop()
	for _, e := range p.expansions {
		if e.nt == nt {
			p.report(LeftRecursion, fmt.Sprintf("parsing abandoned: %s derives itself on %s without consuming input; the parse table is left-recursive",
				nt, describeToken(p.lookahead.Token)))
			return false
		}
	}
	p.expansions = append(p.expansions, expansion{nt: nt, height: height})

	for i := len(rhs) - 1; i >= 0; i-- {
		p.stack = append(p.stack, rhs[i])
	}
	p.form = p.form.Replace(nt, rhs)
	p.derivation = append(p.derivation, p.form.String())
	return true
}

func (p *Parser) expected(nt NonTerminal) string {
	lookaheads := p.table.Lookaheads(nt)
	if len(lookaheads) == 0 {
		return "<none>"
	}
	names := make([]string, len(lookaheads))
	for i, la := range lookaheads {
		names[i] = string(la)
	}
	return strings.Join(names, ", ")
}

func (p *Parser) top() Symbol {
	return p.stack[len(p.stack)-1]
}

// pop removes the top of the stack and forgets the expansions whose stack
// prefix it reached into.
func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
	for n := len(p.expansions); n > 0 && p.expansions[n-1].height > len(p.stack)+1; n-- {
		p.expansions = p.expansions[:n-1]
	}
}

func (p *Parser) advance() {
	p.lookahead = p.input.Next()
	p.expansions = p.expansions[:0]
}

func (p *Parser) report(kind DiagnosticKind, reason string) {
	tok := p.lookahead.Token
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Kind:   kind,
		Line:   tok.Line,
		Token:  tok,
		Reason: reason,
	})
}

func (p *Parser) result() *Result {
	res := &Result{
		Success:     len(p.diagnostics) == 0,
		Derivation:  p.derivation,
		Diagnostics: p.diagnostics,
	}
	for _, d := range p.diagnostics {
		res.Errors = append(res.Errors, d.String())
	}
	if !res.Success {
		res.Derivation = append(res.Derivation, IncompleteDerivation)
	}
	return res
}

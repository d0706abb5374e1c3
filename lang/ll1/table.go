package ll1

import (
	"errors"
	"fmt"
	"sort"
)

var ErrEmptyTable = errors.New("ll1: parse table has no productions")

// Table is a precomputed LL(1) parse table. It is read-only after
// construction and may be shared between parsers.
type Table struct {
	start NonTerminal
	rules map[NonTerminal]map[Terminal]Production
}

// NewTable builds a table from string-keyed rules: rules[A][a] is the
// right-hand side used to expand A on lookahead a. Every name on a
// right-hand side that is itself a key of rules becomes a NonTerminal; all
// other names become Terminals. An empty start defaults to DefaultStart.
func NewTable(start string, rules map[string]map[string][]string) (*Table, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyTable
	}
	if start == "" {
		start = string(DefaultStart)
	}
	if _, ok := rules[start]; !ok {
		return nil, fmt.Errorf("ll1: start symbol %s has no row in the parse table", start)
	}

	t := &Table{
		start: NonTerminal(start),
		rules: make(map[NonTerminal]map[Terminal]Production, len(rules)),
	}
	for nt, row := range rules {
		typed := make(map[Terminal]Production, len(row))
		for lookahead, rhs := range row {
			prod := make(Production, 0, len(rhs))
			for _, name := range rhs {
				if _, ok := rules[name]; ok {
					prod = append(prod, NonTerminal(name))
				} else {
					prod = append(prod, Terminal(name))
				}
			}
			typed[Terminal(lookahead)] = prod
		}
		t.rules[NonTerminal(nt)] = typed
	}
	return t, nil
}

func (t *Table) Start() NonTerminal {
	return t.start
}

// Lookup returns the production for expanding nt on lookahead. The boolean
// is false when the table has no entry; an entry may be an empty (epsilon)
// production.
func (t *Table) Lookup(nt NonTerminal, lookahead Terminal) (Production, bool) {
	prod, ok := t.rules[nt][lookahead]
	return prod, ok
}

// Vanishes reports whether nt derives epsilon on lookahead.
func (t *Table) Vanishes(nt NonTerminal, lookahead Terminal) bool {
	prod, ok := t.rules[nt][lookahead]
	return ok && len(prod) == 0
}

func (t *Table) IsNonTerminal(name string) bool {
	_, ok := t.rules[NonTerminal(name)]
	return ok
}

// Lookaheads returns the sorted terminals for which nt has an entry.
func (t *Table) Lookaheads(nt NonTerminal) []Terminal {
	row := t.rules[nt]
	out := make([]Terminal, 0, len(row))
	for la := range row {
		out = append(out, la)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *Table) NonTerminals() []NonTerminal {
	out := make([]NonTerminal, 0, len(t.rules))
	for nt := range t.rules {
		out = append(out, nt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Terminals returns every terminal the table mentions, as a lookahead or on
// a right-hand side, sorted.
func (t *Table) Terminals() []Terminal {
	seen := make(map[Terminal]bool)
	for _, row := range t.rules {
		for la, prod := range row {
			seen[la] = true
			for _, sym := range prod {
				if term, ok := sym.(Terminal); ok {
					seen[term] = true
				}
			}
		}
	}
	out := make([]Terminal, 0, len(seen))
	for term := range seen {
		out = append(out, term)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

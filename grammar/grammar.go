// Package grammar bundles the parse table and the EBNF grammar of the class
// language that llfront parses by default.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/dhamidi/llfront/lang/ll1"
	"golang.org/x/exp/ebnf"
)

const (
	// Start is the start symbol of both the table and the grammar.
	Start = "START"

	TableFile = "class.json"
	EBNFFile  = "class.ebnf"
)

//go:embed class.json
var tableJSON []byte

//go:embed class.ebnf
var grammarEBNF []byte

// Default decodes the embedded parse table.
func Default() (*ll1.Table, error) {
	t, err := ll1.DecodeTable(bytes.NewReader(tableJSON), ll1.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("grammar: %s: %w", TableFile, err)
	}
	return t, nil
}

// EBNF parses the embedded grammar. The result is not verified; see Check.
func EBNF() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(EBNFFile, bytes.NewReader(grammarEBNF))
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	return g, nil
}

// TableJSON returns a copy of the embedded table artifact.
func TableJSON() []byte {
	return bytes.Clone(tableJSON)
}

// Check verifies g from start and cross-checks t against it.
func Check(t *ll1.Table, g ebnf.Grammar, start string) error {
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("grammar: %w", err)
	}
	if err := ll1.VerifyTable(t, g); err != nil {
		return fmt.Errorf("grammar: table does not match grammar: %w", err)
	}
	return nil
}

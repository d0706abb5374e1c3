// Package ll1 provides a table-driven predictive parser with panic-mode error
// recovery.
//
// # Overview
//
// The parser validates the token stream of a scanner.Lexer against a
// precomputed LL(1) parse table. It never stops at the first problem: lexical
// and syntax errors are recorded as diagnostics and parsing resynchronizes, so
// a single run reports as many independent errors as possible. While parsing it
// records the leftmost derivation of the input.
//
// # Architecture
//
//	┌─────────────┐     ┌──────────────────┐     ┌─────────────┐
//	│   Lexer     │────▶│  TerminalStream  │────▶│   Parser    │
//	│  (tokens)   │     │   (terminals)    │     │ (stack PDA) │
//	└─────────────┘     └──────────────────┘     └─────────────┘
//	                            │                       │
//	                            ▼                       ▼
//	                    ┌──────────────┐        ┌──────────────┐
//	                    │  comments    │        │    Table     │
//	                    │  dropped     │        │  (artifact)  │
//	                    └──────────────┘        └──────────────┘
//
// # Parse Table
//
// A Table maps a non-terminal and a lookahead terminal to the right-hand side
// of a production. A missing entry means there is no rule; an entry with an
// empty right-hand side is an epsilon production. Tables are produced by an
// external grammar tool and loaded with LoadTable from JSON, YAML or TOML:
//
//	{
//	  "start": "START",
//	  "productions": {
//	    "START":    { "class": ["class", "id", "INHERITS", "end"] },
//	    "INHERITS": { "inherits": ["inherits", "id"], "end": [] }
//	  }
//	}
//
// Names that are rows of the table are non-terminals, every other name is a
// terminal. The end of input is the terminal "$".
//
// # Error Recovery
//
// On every step the parser inspects the top of its stack and the lookahead:
//
//  1. Lexical error token: report it and read the next terminal.
//  2. Terminal on top that does not match: report it and pop the terminal, as
//     if the missing terminal had been inserted.
//  3. Non-terminal without a table entry: report it, then pop the non-terminal
//     when the lookahead is the end of input or one on which it derives
//     epsilon, otherwise discard the lookahead.
//
// Input left over once the start symbol is fully derived is reported as a
// single syntax error.
//
// A table that is left-recursive for some lookahead would make the parser
// expand forever without reading input. The parser remembers which
// non-terminals it expanded since the last terminal was read and abandons the
// run with a LeftRecursion diagnostic as soon as one repeats over an
// untouched stack prefix. A run therefore always finishes and returns a
// Result; Success is false as soon as a single diagnostic was recorded.
package ll1

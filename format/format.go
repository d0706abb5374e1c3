// Package format renders parse results and token streams into the text and
// JSON artifacts written next to each input.
package format

import (
	"encoding"

	"github.com/dhamidi/llfront/lang/ll1"
)

// Encoder writes one parse result.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res *ll1.Result) error
}

var (
	_ Encoder = (*DerivationEncoder)(nil)
	_ Encoder = (*ErrorsEncoder)(nil)
	_ Encoder = (*JSONEncoder)(nil)
)

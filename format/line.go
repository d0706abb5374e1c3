package format

import (
	"io"
	"strings"

	"github.com/dhamidi/llfront/lang/ll1"
)

// DerivationEncoder writes one sentential form per line.
type DerivationEncoder struct {
	w   io.Writer
	res *ll1.Result
}

func NewDerivationEncoder(w io.Writer) *DerivationEncoder {
	return &DerivationEncoder{w: w}
}

func (e *DerivationEncoder) Encode(res *ll1.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DerivationEncoder) MarshalText() ([]byte, error) {
	return joinLines(e.res.Derivation), nil
}

// ErrorsEncoder writes one rendered diagnostic per line. A successful
// result produces an empty artifact.
type ErrorsEncoder struct {
	w   io.Writer
	res *ll1.Result
}

func NewErrorsEncoder(w io.Writer) *ErrorsEncoder {
	return &ErrorsEncoder{w: w}
}

func (e *ErrorsEncoder) Encode(res *ll1.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ErrorsEncoder) MarshalText() ([]byte, error) {
	return joinLines(e.res.Errors), nil
}

func joinLines(lines []string) []byte {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

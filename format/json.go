package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/llfront/lang/ll1"
)

type JSONEncoder struct {
	w    io.Writer
	file string
	run  string
	res  *ll1.Result
}

// NewJSONEncoder returns an encoder that labels its documents with file.
// An empty file is omitted from the output.
func NewJSONEncoder(w io.Writer, file string) *JSONEncoder {
	return &JSONEncoder{w: w, file: file}
}

// SetRun tags documents with the id of the run that produced them.
func (e *JSONEncoder) SetRun(id string) {
	e.run = id
}

func (e *JSONEncoder) Encode(res *ll1.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildResultData(), "", "  ")
}

type jsonResult struct {
	File        string           `json:"file,omitempty"`
	Run         string           `json:"run,omitempty"`
	Success     bool             `json:"success"`
	Errors      []string         `json:"errors"`
	Derivation  []string         `json:"derivation"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

type jsonDiagnostic struct {
	Kind    string    `json:"kind"`
	Line    int       `json:"line"`
	Token   jsonToken `json:"token"`
	Message string    `json:"message"`
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme,omitempty"`
}

func (e *JSONEncoder) buildResultData() jsonResult {
	r := e.res
	data := jsonResult{
		File:       e.file,
		Run:        e.run,
		Success:    r.Success,
		Errors:     nonNil(r.Errors),
		Derivation: nonNil(r.Derivation),
	}
	for _, d := range r.Diagnostics {
		data.Diagnostics = append(data.Diagnostics, jsonDiagnostic{
			Kind: d.Kind.String(),
			Line: d.Line,
			Token: jsonToken{
				Kind:   d.Token.Kind.String(),
				Lexeme: d.Token.Lexeme,
			},
			Message: d.String(),
		})
	}
	return data
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

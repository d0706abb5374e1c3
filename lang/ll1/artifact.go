package ll1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

var ErrUnknownFormat = errors.New("ll1: unknown parse table format")

// FormatFromPath picks the artifact format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// artifact is the on-disk shape of a parse table.
type artifact struct {
	Start       string                         `json:"start" yaml:"start" toml:"start"`
	Productions map[string]map[string][]string `json:"productions" yaml:"productions" toml:"productions"`
}

// DecodeTable reads a parse table artifact in the given format.
func DecodeTable(r io.Reader, format Format) (*Table, error) {
	var a artifact
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&a); err != nil {
			return nil, fmt.Errorf("decode json table: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&a); err != nil {
			return nil, fmt.Errorf("decode yaml table: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&a); err != nil {
			return nil, fmt.Errorf("decode toml table: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return NewTable(a.Start, a.Productions)
}

// LoadTable reads a parse table artifact from a .json, .yaml/.yml or .toml
// file.
func LoadTable(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	t, err := DecodeTable(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// EncodeTable writes t as an artifact that DecodeTable reads back.
func EncodeTable(w io.Writer, t *Table, format Format) error {
	a := artifact{
		Start:       string(t.start),
		Productions: make(map[string]map[string][]string, len(t.rules)),
	}
	for nt, row := range t.rules {
		out := make(map[string][]string, len(row))
		for la, prod := range row {
			names := make([]string, len(prod))
			for i, sym := range prod {
				names[i] = sym.String()
			}
			out[string(la)] = names
		}
		a.Productions[string(nt)] = out
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(a)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

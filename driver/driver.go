// Package driver runs the front end over source files and writes the
// artifacts of each run next to the input or into an output directory.
//
// For an input prog.src it writes
//
//	prog.outlextokens     token dump, one source line per line
//	prog.outlexerrors     lexical errors
//	prog.outderivation    leftmost derivation
//	prog.outsyntaxerrors  all diagnostics
//	prog.json             the parse result (optional)
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/llfront/config"
	"github.com/dhamidi/llfront/format"
	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/dhamidi/llfront/lang/scanner"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// Artifact extensions.
const (
	ExtTokens       = ".outlextokens"
	ExtLexErrors    = ".outlexerrors"
	ExtDerivation   = ".outderivation"
	ExtSyntaxErrors = ".outsyntaxerrors"
	ExtJSON         = ".json"
)

type Driver struct {
	table *ll1.Table
	cfg   *config.Config
	out   io.Writer
	runID string
	log   commonlog.Logger
}

// New returns a driver that parses with table, takes its output settings
// from cfg and prints one status line per file to out. Each driver gets a
// fresh run id that tags its JSON artifacts and log lines.
func New(table *ll1.Table, cfg *config.Config, out io.Writer) *Driver {
	return &Driver{
		table: table,
		cfg:   cfg,
		out:   out,
		runID: uuid.New().String(),
		log:   commonlog.GetLogger("llfront.driver"),
	}
}

func (d *Driver) RunID() string {
	return d.runID
}

// FileReport is the outcome for one source file.
type FileReport struct {
	Path      string
	Success   bool
	Errors    int
	Artifacts []string
	Result    *ll1.Result
}

type Report struct {
	RunID string
	Files []FileReport
	// Missing lists paths that were neither a file nor a directory.
	Missing []string
}

// Failed returns the number of files with diagnostics.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if !f.Success {
			n++
		}
	}
	return n
}

// Run processes every source file found for paths. Problems with individual
// paths are printed and recorded in the Report; the returned error is
// reserved for failures writing artifacts and for cancellation.
func (d *Driver) Run(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{RunID: d.runID}
	d.log.Infof("run %s: %d path(s)", d.runID, len(paths))

	for _, in := range Discover(paths, d.cfg.HasExtension) {
		if in.Err != nil {
			fmt.Fprintln(d.out, in.Err)
			var notFound *ErrNotFound
			if errors.As(in.Err, &notFound) {
				report.Missing = append(report.Missing, in.Path)
			}
			continue
		}
		if len(in.Files) == 0 {
			fmt.Fprintf(d.out, "No %s files found in directory: %s\n", strings.Join(d.cfg.Parse.Extensions, ", "), in.Path)
			continue
		}

		for _, file := range in.Files {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			fr, err := d.ProcessFile(file)
			if err != nil {
				return report, err
			}
			report.Files = append(report.Files, *fr)
		}
	}

	return report, nil
}

// ProcessFile parses a single file and writes its artifacts.
func (d *Driver) ProcessFile(path string) (*FileReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	tokens := scanner.Tokenize(src)
	res := ll1.New(d.table,
		ll1.WithFile(path),
		ll1.WithStepLimit(d.stepLimit()),
	).Parse(scanner.NewReplay(tokens))

	return d.Record(path, tokens, res)
}

// Record writes the artifacts of a file parsed elsewhere and prints its
// status line.
func (d *Driver) Record(path string, tokens []scanner.Token, res *ll1.Result) (*FileReport, error) {
	fr := &FileReport{
		Path:    path,
		Success: res.Success,
		Errors:  len(res.Errors),
		Result:  res,
	}
	var err error
	fr.Artifacts, err = d.writeArtifacts(path, tokens, res)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if res.Success {
		fmt.Fprintf(d.out, "[OK] Parsed successfully: %s\n", name)
		d.log.Infof("run %s: %s: parsed, %d derivation steps", d.runID, path, len(res.Derivation))
	} else {
		fmt.Fprintf(d.out, "[SYNTAX ERROR] %s\n", name)
		d.log.Infof("run %s: %s: %d diagnostics", d.runID, path, len(res.Errors))
	}
	return fr, nil
}

func (d *Driver) stepLimit() int {
	if d.cfg.Parse.StepLimit > 0 {
		return d.cfg.Parse.StepLimit
	}
	return ll1.DefaultStepLimit
}

// ArtifactBase returns the path of the artifacts of input without their
// extension.
func (d *Driver) ArtifactBase(input string) string {
	dir := d.cfg.Output.Dir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	name := filepath.Base(input)
	return filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name)))
}

func (d *Driver) writeArtifacts(input string, tokens []scanner.Token, res *ll1.Result) ([]string, error) {
	base := d.ArtifactBase(input)
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string
	write := func(ext string, encode func(w io.Writer) error) error {
		path := base + ext
		if sameFile(path, input) {
			d.log.Warningf("%s: artifact would overwrite its input, skipped", path)
			return nil
		}
		if err := writeFile(path, encode); err != nil {
			d.log.Errorf("%s: %s", path, err)
			return err
		}
		d.log.Debugf("wrote %s", path)
		written = append(written, path)
		return nil
	}

	out := d.cfg.Output
	if out.WriteTokens() {
		if err := write(ExtTokens, func(w io.Writer) error {
			return format.NewTokenEncoder(w).Encode(tokens)
		}); err != nil {
			return nil, err
		}
		if err := write(ExtLexErrors, func(w io.Writer) error {
			return format.NewLexErrorEncoder(w).Encode(tokens)
		}); err != nil {
			return nil, err
		}
	}
	if out.WriteDerivation() {
		if err := write(ExtDerivation, func(w io.Writer) error {
			return format.NewDerivationEncoder(w).Encode(res)
		}); err != nil {
			return nil, err
		}
		if err := write(ExtSyntaxErrors, func(w io.Writer) error {
			return format.NewErrorsEncoder(w).Encode(res)
		}); err != nil {
			return nil, err
		}
	}
	if out.JSON {
		if err := write(ExtJSON, func(w io.Writer) error {
			enc := format.NewJSONEncoder(w, filepath.Base(input))
			enc.SetRun(d.runID)
			return enc.Encode(res)
		}); err != nil {
			return nil, err
		}
	}
	return written, nil
}

// sameFile reports whether path names the file input, directly or through
// a link.
func sameFile(path, input string) bool {
	a, errA := filepath.Abs(path)
	b, errB := filepath.Abs(input)
	if errA == nil && errB == nil && a == b {
		return true
	}
	pi, err := os.Stat(path)
	if err != nil {
		return false
	}
	ii, err := os.Stat(input)
	if err != nil {
		return false
	}
	return os.SameFile(pi, ii)
}

func writeFile(path string, encode func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	return f.Close()
}

package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/llfront/config"
	"github.com/dhamidi/llfront/grammar"
	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/google/uuid"
)

func newDriver(t *testing.T, cfg *config.Config) (*Driver, *bytes.Buffer) {
	t.Helper()
	table, err := grammar.Default()
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return New(table, cfg, &out), &out
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.src", "main do end\n")
	bad := writeSource(t, dir, "bad.src", "main do 02 x = 1; @ end\n")

	d, out := newDriver(t, config.Default())
	report, err := d.Run(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}

	wantOut := "[SYNTAX ERROR] bad.src\n[OK] Parsed successfully: good.src\n"
	if out.String() != wantOut {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), wantOut)
	}
	if len(report.Files) != 2 || report.Failed() != 1 || len(report.Missing) != 0 {
		t.Fatalf("report: %+v", report)
	}
	if report.Files[0].Path != bad || report.Files[0].Errors != 2 {
		t.Errorf("bad file: %+v", report.Files[0])
	}

	base := strings.TrimSuffix(good, ".src")
	if got := readFile(t, base+ExtTokens); got != "[main, main, 1] [do, do, 1] [end, end, 1]\n" {
		t.Errorf("tokens: got %q", got)
	}
	if got := readFile(t, base+ExtLexErrors); got != "" {
		t.Errorf("lexical errors: got %q", got)
	}
	if got := readFile(t, base+ExtSyntaxErrors); got != "" {
		t.Errorf("syntax errors: got %q", got)
	}
	derivation := readFile(t, base+ExtDerivation)
	if !strings.HasPrefix(derivation, "START\nPROG\n") || !strings.HasSuffix(derivation, "\nmain do end\n") {
		t.Errorf("derivation: got %q", derivation)
	}
	if _, err := os.Stat(base + ExtJSON); !os.IsNotExist(err) {
		t.Errorf("json artifact written without being enabled: %v", err)
	}

	base = strings.TrimSuffix(bad, ".src")
	wantLex := "Lexical error: invalid number '02' at line 1.\n" +
		"Lexical error: invalid character '@' at line 1.\n"
	if got := readFile(t, base+ExtLexErrors); got != wantLex {
		t.Errorf("lexical errors: got %q", got)
	}
	if got := readFile(t, base+ExtSyntaxErrors); got != wantLex {
		t.Errorf("syntax errors: got %q", got)
	}
	if got := readFile(t, base+ExtDerivation); !strings.HasSuffix(got, ll1.IncompleteDerivation+"\n") {
		t.Errorf("derivation does not end with the incomplete marker: %q", got)
	}
}

func TestRunOutputSettings(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.src", "main do end\n")
	outDir := filepath.Join(dir, "out", "nested")

	no := false
	cfg := config.Default()
	cfg.Output.Dir = outDir
	cfg.Output.Tokens = &no
	cfg.Output.JSON = true

	d, _ := newDriver(t, cfg)
	report, err := d.Run(context.Background(), []string{src})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(outDir, "prog"+ExtDerivation),
		filepath.Join(outDir, "prog"+ExtSyntaxErrors),
		filepath.Join(outDir, "prog"+ExtJSON),
	}
	if !reflect.DeepEqual(report.Files[0].Artifacts, want) {
		t.Errorf("artifacts:\ngot  %v\nwant %v", report.Files[0].Artifacts, want)
	}
	if got := readFile(t, want[2]); !strings.Contains(got, `"file": "prog.src"`) || !strings.Contains(got, `"success": true`) {
		t.Errorf("json: got %s", got)
	}
	if _, err := uuid.Parse(report.RunID); err != nil || report.RunID != d.RunID() {
		t.Errorf("run id %q: %v", report.RunID, err)
	}
	if got := readFile(t, want[2]); !strings.Contains(got, `"run": "`+d.RunID()+`"`) {
		t.Errorf("json artifact is not tagged with the run id: %s", got)
	}
}

func TestRunNeverOverwritesInput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.json", "main do end\n")

	cfg := config.Default()
	cfg.Output.JSON = true

	d, _ := newDriver(t, cfg)
	report, err := d.Run(context.Background(), []string{src})
	if err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, src); got != "main do end\n" {
		t.Errorf("input was overwritten: %q", got)
	}
	want := []string{
		filepath.Join(dir, "prog"+ExtTokens),
		filepath.Join(dir, "prog"+ExtLexErrors),
		filepath.Join(dir, "prog"+ExtDerivation),
		filepath.Join(dir, "prog"+ExtSyntaxErrors),
	}
	if !reflect.DeepEqual(report.Files[0].Artifacts, want) {
		t.Errorf("artifacts:\ngot  %v\nwant %v", report.Files[0].Artifacts, want)
	}
	if !report.Files[0].Success {
		t.Errorf("parse failed: %v", report.Files[0].Result.Errors)
	}
}

func TestRunPathProblems(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, empty, "notes.txt", "not a source file")
	missing := filepath.Join(dir, "missing.src")

	d, out := newDriver(t, config.Default())
	report, err := d.Run(context.Background(), []string{missing, empty})
	if err != nil {
		t.Fatal(err)
	}

	wantOut := "Not a file or directory error: " + missing + "\n" +
		"No .src files found in directory: " + empty + "\n"
	if out.String() != wantOut {
		t.Errorf("output:\ngot  %q\nwant %q", out.String(), wantOut)
	}
	if !reflect.DeepEqual(report.Missing, []string{missing}) || len(report.Files) != 0 {
		t.Errorf("report: %+v", report)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.src", "main do end\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _ := newDriver(t, config.Default())
	if _, err := d.Run(ctx, []string{dir}); err != context.Canceled {
		t.Errorf("got %v", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.src", "")
	writeSource(t, dir, "a.src", "")
	writeSource(t, dir, "sub/c.src", "")
	writeSource(t, dir, "sub/d.txt", "")
	explicit := writeSource(t, dir, "e.txt", "")

	cfg := config.Default()
	inputs := Discover([]string{dir, explicit}, cfg.HasExtension)

	if len(inputs) != 2 {
		t.Fatalf("got %d inputs", len(inputs))
	}
	want := []string{
		filepath.Join(dir, "a.src"),
		filepath.Join(dir, "b.src"),
		filepath.Join(dir, "sub", "c.src"),
	}
	if !reflect.DeepEqual(inputs[0].Files, want) {
		t.Errorf("directory:\ngot  %v\nwant %v", inputs[0].Files, want)
	}
	if !reflect.DeepEqual(inputs[1].Files, []string{explicit}) {
		t.Errorf("explicit file: got %v", inputs[1].Files)
	}
}

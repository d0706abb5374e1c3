package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	if c.Parse.Start != "START" {
		t.Errorf("start: got %q", c.Parse.Start)
	}
	if !reflect.DeepEqual(c.Parse.Extensions, []string{".src"}) {
		t.Errorf("extensions: got %v", c.Parse.Extensions)
	}
	if !c.Output.WriteTokens() || !c.Output.WriteDerivation() || c.Output.JSON {
		t.Errorf("output: got %+v", c.Output)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "llfront.toml",
			content: `
[parse]
table = "class.yaml"
extensions = ["src", ".cls"]
step_limit = 1000

[output]
dir = "out"
tokens = false
json = true

[log]
verbosity = 2
file = "llfront.log"
`,
		},
		{
			name: "yaml",
			file: "llfront.yaml",
			content: `
parse:
  table: class.yaml
  extensions: [src, .cls]
  step_limit: 1000
output:
  dir: out
  tokens: false
  json: true
log:
  verbosity: 2
  file: llfront.log
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			c, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}

			if c.Path != path {
				t.Errorf("path: got %q", c.Path)
			}
			if c.Parse.Table != "class.yaml" || c.Parse.Start != "START" || c.Parse.StepLimit != 1000 {
				t.Errorf("parse: got %+v", c.Parse)
			}
			if !reflect.DeepEqual(c.Parse.Extensions, []string{".src", ".cls"}) {
				t.Errorf("extensions: got %v", c.Parse.Extensions)
			}
			if c.Output.Dir != "out" || c.Output.WriteTokens() || !c.Output.WriteDerivation() || !c.Output.JSON {
				t.Errorf("output: got %+v", c.Output)
			}
			if c.Log.Verbosity != 2 || c.Log.File != "llfront.log" {
				t.Errorf("log: got %+v", c.Log)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"malformed toml", "a.toml", "[parse\n", "parse"},
		{"malformed yaml", "a.yaml", "parse: [\n", "parse"},
		{"unknown key", "a.toml", "[parse]\ntabel = \"x.json\"\n", "unknown key parse.tabel"},
		{"negative step limit", "a.toml", "[parse]\nstep_limit = -1\n", "parse.step_limit"},
		{"empty extension", "a.yaml", "parse:\n  extensions: [\"\"]\n", "parse.extensions"},
		{"terminal start", "a.toml", "[parse]\nstart = \"prog\"\n", "parse.start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFind(t *testing.T) {
	t.Run("search path", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		dir := t.TempDir()
		writeFile(t, dir, "llfront.yaml", "output:\n  json: true\n")

		c, err := Find(dir)
		if err != nil {
			t.Fatal(err)
		}
		if !c.Output.JSON || filepath.Base(c.Path) != "llfront.yaml" {
			t.Errorf("got %+v", c)
		}
	})

	t.Run("toml before yaml", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		dir := t.TempDir()
		writeFile(t, dir, "llfront.yaml", "output:\n  json: true\n")
		writeFile(t, dir, "llfront.toml", "[output]\ndir = \"out\"\n")

		c, err := Find(dir)
		if err != nil {
			t.Fatal(err)
		}
		if c.Output.JSON || c.Output.Dir != "out" {
			t.Errorf("got %+v", c.Output)
		}
	})

	t.Run("environment", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "llfront.toml", "[output]\ndir = \"ignored\"\n")
		path := writeFile(t, t.TempDir(), "custom.toml", "[output]\ndir = \"custom\"\n")
		t.Setenv(EnvConfig, path)

		c, err := Find(dir)
		if err != nil {
			t.Fatal(err)
		}
		if c.Output.Dir != "custom" {
			t.Errorf("got %+v", c.Output)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		c, err := Find(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if c.Path != "" || c.Parse.Start != "START" {
			t.Errorf("got %+v", c)
		}
	})
}

func TestHasExtension(t *testing.T) {
	c := Default()
	c.Parse.Extensions = []string{".src", ".cls"}

	tests := []struct {
		path string
		want bool
	}{
		{"a.src", true},
		{"dir/b.SRC", true},
		{"c.cls", true},
		{"d.outderivation", false},
		{"src", false},
	}
	for _, tt := range tests {
		if got := c.HasExtension(tt.path); got != tt.want {
			t.Errorf("HasExtension(%q): got %v", tt.path, got)
		}
	}
}

// Package config loads llfront settings from a TOML or YAML file.
//
// A configuration file looks like this:
//
//	[parse]
//	table = "grammar/class.json"   # empty: the bundled table
//	start = "START"
//	extensions = [".src"]
//	step_limit = 0                 # 0: ll1.DefaultStepLimit
//
//	[output]
//	dir = "out"                    # empty: next to each input
//	tokens = true
//	derivation = true
//	json = false
//
//	[log]
//	verbosity = 0
//	file = ""
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const EnvConfig = "LLFRONT_CONFIG"

// SearchPaths are tried in order by Find when EnvConfig is unset.
var SearchPaths = []string{"llfront.toml", "llfront.yaml", "llfront.yml"}

type Config struct {
	Parse  Parse  `toml:"parse" yaml:"parse"`
	Output Output `toml:"output" yaml:"output"`
	Log    Log    `toml:"log" yaml:"log"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

type Parse struct {
	Table      string   `toml:"table" yaml:"table"`
	Start      string   `toml:"start" yaml:"start"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
	StepLimit  int      `toml:"step_limit" yaml:"step_limit"`
}

type Output struct {
	Dir        string `toml:"dir" yaml:"dir"`
	Tokens     *bool  `toml:"tokens" yaml:"tokens"`
	Derivation *bool  `toml:"derivation" yaml:"derivation"`
	JSON       bool   `toml:"json" yaml:"json"`
}

// WriteTokens reports whether token artifacts are written. Unset means yes.
func (o Output) WriteTokens() bool {
	return o.Tokens == nil || *o.Tokens
}

// WriteDerivation reports whether derivation artifacts are written. Unset
// means yes.
func (o Output) WriteDerivation() bool {
	return o.Derivation == nil || *o.Derivation
}

type Log struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a configuration file. The format is chosen by extension:
// .yaml and .yml are YAML, everything else is TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := &Config{Path: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown key %s", path, undecoded[0])
		}
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find loads the file named by EnvConfig, or the first of SearchPaths that
// exists in dir. Without either it returns Default.
func Find(dir string) (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}
	for _, name := range SearchPaths {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Parse.Start == "" {
		c.Parse.Start = "START"
	}
	if len(c.Parse.Extensions) == 0 {
		c.Parse.Extensions = []string{".src"}
	}
	for i, ext := range c.Parse.Extensions {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			c.Parse.Extensions[i] = "." + ext
		}
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Parse.StepLimit < 0 {
		errs = append(errs, fmt.Errorf("parse.step_limit must not be negative, got %d", c.Parse.StepLimit))
	}
	for _, ext := range c.Parse.Extensions {
		if ext == "" || ext == "." {
			errs = append(errs, errors.New("parse.extensions must not contain empty extensions"))
			break
		}
	}
	if c.Parse.Start != "" && !unicode.IsUpper([]rune(c.Parse.Start)[0]) {
		errs = append(errs, fmt.Errorf("parse.start must name a non-terminal, got %q", c.Parse.Start))
	}
	return errors.Join(errs...)
}

// HasExtension reports whether path ends in one of the configured source
// extensions.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Parse.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

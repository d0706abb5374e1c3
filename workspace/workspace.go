// Package workspace keeps parsed source documents in memory and serves them
// to the file watcher and the language server.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/dhamidi/llfront/lang/scanner"
	"github.com/tliron/commonlog"
)

// Document is the latest parse of one file.
type Document struct {
	Path    string
	Content []byte
	Tokens  []scanner.Token
	Result  *ll1.Result
}

// Identifiers returns the distinct identifiers of the document, sorted.
func (d *Document) Identifiers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range d.Tokens {
		if tok.Kind == scanner.TokenID && !seen[tok.Lexeme] {
			seen[tok.Lexeme] = true
			out = append(out, tok.Lexeme)
		}
	}
	sort.Strings(out)
	return out
}

type Workspace struct {
	mu       sync.RWMutex
	rootDir  string
	table    *ll1.Table
	isSource func(path string) bool
	opts     []ll1.Option
	docs     map[string]*Document
	log      commonlog.Logger
}

// New returns an empty workspace rooted at rootDir. isSource selects the
// files ScanAll and the watcher pick up; opts are passed to every parser.
func New(rootDir string, table *ll1.Table, isSource func(path string) bool, opts ...ll1.Option) *Workspace {
	return &Workspace{
		rootDir:  rootDir,
		table:    table,
		isSource: isSource,
		opts:     opts,
		docs:     make(map[string]*Document),
		log:      commonlog.GetLogger("llfront.workspace"),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) IsSource(path string) bool {
	return w.isSource(path)
}

// ScanAll parses every source file below the root, skipping hidden
// directories.
func (w *Workspace) ScanAll() error {
	return filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.isSource(path) {
			if _, err := w.ScanFile(path); err != nil {
				w.log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

// ScanFile reads path from disk and parses it.
func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile parses content as the new text of path.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	tokens := scanner.Tokenize(content)
	doc := &Document{
		Path:    path,
		Content: content,
		Tokens:  tokens,
		Result:  w.parser(path).Parse(scanner.NewReplay(tokens)),
	}
	w.log.Debugf("%s: %d diagnostics", path, len(doc.Result.Diagnostics))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	return doc
}

func (w *Workspace) parser(path string) *ll1.Parser {
	opts := make([]ll1.Option, 0, len(w.opts)+1)
	opts = append(opts, ll1.WithFile(path))
	return ll1.New(w.table, append(opts, w.opts...)...)
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Paths returns the paths of all documents, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for path := range w.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

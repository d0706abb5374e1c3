package workspace

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/llfront/lang/ll1"
	"github.com/dhamidi/llfront/lang/scanner"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "llfront"

// LSPServer checks documents as they are edited and publishes the parser's
// diagnostics.
type LSPServer struct {
	workspace *Workspace
	table     *ll1.Table
	isSource  func(string) bool
	opts      []ll1.Option
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(table *ll1.Table, isSource func(string) bool, version string, opts ...ll1.Option) *LSPServer {
	ls := &LSPServer{
		table:    table,
		isSource: isSource,
		opts:     opts,
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir, ls.table, ls.isSource, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return ls.workspace.ScanAll()
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			doc := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, doc)
		}
	}
	return nil
}

// textDocumentDidClose reverts the document to its saved text and clears
// its diagnostics in the client.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if _, err := ls.workspace.ScanFile(path); err != nil {
		ls.workspace.RemoveFile(path)
	}
	ls.publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var doc *Document
	if params.Text != nil {
		doc = ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if doc, err = ls.workspace.ScanFile(path); err != nil {
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, doc)
	return nil
}

// textDocumentCompletion offers the reserved words and the identifiers
// already used in the document.
func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil {
		return nil, nil
	}
	return completionItems(doc), nil
}

func completionItems(doc *Document) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	keyword := protocol.CompletionItemKindKeyword
	for _, word := range scanner.Keywords() {
		items = append(items, protocol.CompletionItem{
			Label: word,
			Kind:  &keyword,
		})
	}
	variable := protocol.CompletionItemKindVariable
	for _, id := range doc.Identifiers() {
		items = append(items, protocol.CompletionItem{
			Label: id,
			Kind:  &variable,
		})
	}
	return items
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *Document) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(doc),
	})
}

// toProtocolDiagnostics converts the parser diagnostics of doc. A
// diagnostic covers the first occurrence of its token on its line, or the
// whole line when the token is not found there. A nil doc yields an empty,
// non-nil slice so that clients clear their diagnostics.
func toProtocolDiagnostics(doc *Document) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	if doc == nil {
		return out
	}

	lines := strings.Split(string(doc.Content), "\n")
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, d := range doc.Result.Diagnostics {
		code := protocol.IntegerOrString{Value: d.Kind.String()}
		out = append(out, protocol.Diagnostic{
			Range:    diagnosticRange(lines, d),
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  d.String(),
		})
	}
	return out
}

func diagnosticRange(lines []string, d ll1.Diagnostic) protocol.Range {
	line := d.Line - 1
	if line < 0 {
		line = 0
	}
	if line >= len(lines) {
		line = len(lines) - 1
	}
	text := strings.TrimSuffix(lines[line], "\r")

	start, end := 0, len(text)
	if lexeme := d.Token.Lexeme; lexeme != "" {
		first, _, _ := strings.Cut(lexeme, "\n")
		if i := strings.Index(text, first); i >= 0 {
			start, end = i, i+len(first)
		}
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Len(text[:start]))},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Len(text[:end]))},
	}
}

// utf16Len counts s in UTF-16 code units, the unit of LSP positions.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/strukt-dev/strukt/pkg/dialect"
	"github.com/strukt-dev/strukt/pkg/gen"
	"github.com/strukt-dev/strukt/pkg/parse"
	"github.com/strukt-dev/strukt/pkg/tree"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	dialect dialect.Map
	content map[lsp.DocumentURI]string
}

func newServer(d dialect.Map) *server {
	return &server{d, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":                  s.initialize,
		"textDocument/didOpen":        s.didOpen,
		"textDocument/didChange":      s.didChange,
		"textDocument/documentSymbol": s.documentSymbol,
		"textDocument/hover":          s.hover,

		"textDocument/didClose": noop,
		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		return fn(ctx, conn, *req.Params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			DocumentSymbolProvider: true,
			HoverProvider:          true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) documentSymbol(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DocumentSymbolParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	root, err := parse.Parse(
		parse.Source{Name: string(params.TextDocument.URI), Code: content},
		s.dialect)
	if err != nil {
		return []lsp.SymbolInformation{}, nil
	}

	syms := []lsp.SymbolInformation{}
	tree.Walk(root, func(n tree.Node) bool {
		fn, ok := n.(*tree.Function)
		if !ok {
			return true
		}
		syms = append(syms, lsp.SymbolInformation{
			Name: functionLabel(fn),
			Kind: lsp.SKFunction,
			Location: lsp.Location{
				URI:   params.TextDocument.URI,
				Range: lineRange(content, fn.Line()),
			},
		})
		return true
	})
	return syms, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	root, err := parse.Parse(
		parse.Source{Name: string(params.TextDocument.URI), Code: content},
		s.dialect)
	if err != nil {
		return lsp.Hover{}, nil
	}

	var found tree.Node
	tree.Walk(root, func(n tree.Node) bool {
		switch n.(type) {
		case *tree.Case, *tree.Insertion, *tree.Empty:
			return true
		}
		if n.Line() == params.Position.Line+1 {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return lsp.Hover{}, nil
	}

	// Show the construct under the cursor in a concrete language, detached
	// from whatever follows it.
	detached := tree.CloneNode(found)
	tree.SetFollow(detached, &tree.Insertion{Follow: &tree.Empty{}})
	code, err := gen.Generate(&tree.Root{Follow: detached}, "python")
	if err != nil {
		return lsp.Hover{}, nil
	}
	rng := lineRange(content, found.Line())
	return lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "python", Value: code}},
		Range:    &rng,
	}, nil
}

func functionLabel(fn *tree.Function) string {
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s(%s)", fn.Text, strings.Join(names, ", "))
}

func (s *server) publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: s.diagnostics(uri, content)})
}

func (s *server) diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	src := parse.Source{Name: string(uri), Code: content}
	diags := []lsp.Diagnostic{}

	if _, err := parse.Parse(src, s.dialect); err != nil {
		var malformed *parse.MalformedConstructError
		if errors.As(err, &malformed) {
			diags = append(diags, lsp.Diagnostic{
				Range:    lineRange(content, malformed.Line),
				Severity: lsp.Error,
				Source:   "parse",
				Message:  err.Error(),
			})
		}
	}
	for _, w := range parse.Check(src, s.dialect) {
		diags = append(diags, lsp.Diagnostic{
			Range:    lineRange(content, w.Line),
			Severity: lsp.Warning,
			Source:   "check",
			Message:  w.Message,
		})
	}
	return diags
}

// lineRange returns the range covering the whole 1-based line num, with
// UTF-16 character offsets as the protocol requires.
func lineRange(s string, num int) lsp.Range {
	start, end := 0, len(s)
	line := 1
	for i, r := range s {
		if line == num && r == '\n' {
			end = i
			break
		}
		if r == '\n' {
			line++
			if line == num {
				start = i + 1
			}
		}
	}
	if line < num {
		start = end
	}
	return lsp.Range{
		Start: lspPositionFromIdx(s, start),
		End:   lspPositionFromIdx(s, end),
	}
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}

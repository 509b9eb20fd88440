package lspserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okurashoichi/serena-vbs/lspext"
	"github.com/okurashoichi/serena-vbs/position"
	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/uri"
)

const serverName = "vbslsp"
const serverVersion = "0.1.0"

// initializeResult extends lsp.InitializeResult with the serverInfo field
// LSP 3.15 added after go-lsp was written; marshaling an embedded struct
// plus an extra field is cheaper than vendoring a newer protocol package
// for one field.
type initializeResult struct {
	lsp.InitializeResult
	ServerInfo serverInfo `json:"serverInfo"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Handle implements jsonrpc2.Handler by wrapping dispatch in panic recovery:
// an internal exception logs ERROR with the triggering request and is
// turned into a CodeInternalError reply rather than crashing the process.
func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result, err := s.dispatch(ctx, conn, req)
	if req.Notif {
		if err != nil {
			s.Log.Info("notification handler returned error", "method", req.Method, "error", err.Error())
		}
		return
	}
	if err != nil {
		if replyErr := conn.ReplyWithError(ctx, req.ID, jsonrpcError(err)); replyErr != nil {
			s.Log.Info("failed to reply with error", "method", req.Method, "error", replyErr.Error())
		}
		return
	}
	if replyErr := conn.Reply(ctx, req.ID, result); replyErr != nil {
		s.Log.Info("failed to reply", "method", req.Method, "error", replyErr.Error())
	}
}

func jsonrpcError(err error) *jsonrpc2.Error {
	if e, ok := err.(*jsonrpc2.Error); ok {
		return e
	}
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
}

func (s *Server) dispatch(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.Log.Info("ERROR: panic in request handler", "method", req.Method, "panic", fmt.Sprintf("%v", r))
			result = nil
			err = fmt.Errorf("internal error handling %s", req.Method)
		}
	}()

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized":
		return nil, nil
	case "textDocument/didOpen":
		return nil, s.handleDidOpen(req)
	case "textDocument/didChange":
		return nil, s.handleDidChange(req)
	case "textDocument/didClose":
		return nil, s.handleDidClose(req)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(req)
	case "textDocument/definition":
		return s.handleDefinition(req)
	case "textDocument/references":
		return s.handleReferences(req)
	case "shutdown":
		return nil, nil
	case "exit":
		return nil, conn.Close()
	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method}
	}
}

func unmarshalParams(req *jsonrpc2.Request, out interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params for " + req.Method}
	}
	if err := json.Unmarshal(*req.Params, out); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *Server) handleInitialize(req *jsonrpc2.Request) (interface{}, error) {
	var params lsp.InitializeParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	if s.WorkspaceRoot == "" && params.RootURI != "" {
		s.WorkspaceRoot = uri.New(string(params.RootURI)).Filename()
	}

	if err := s.ScanWorkspace(); err != nil {
		return nil, fmt.Errorf("workspace scan failed: %w", err)
	}

	return &initializeResult{
		InitializeResult: lsp.InitializeResult{
			Capabilities: lsp.ServerCapabilities{
				TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
					Options: &lsp.TextDocumentSyncOptions{
						OpenClose: true,
						Change:    lsp.TDSKFull,
					},
				},
				DocumentSymbolProvider: true,
				DefinitionProvider:     true,
				ReferencesProvider:     true,
			},
		},
		ServerInfo: serverInfo{Name: serverName, Version: serverVersion},
	}, nil
}

func (s *Server) handleDidOpen(req *jsonrpc2.Request) error {
	var params lsp.DidOpenTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	uri := string(params.TextDocument.URI)
	s.markClientOpened(uri)
	s.openDocument(uri, params.TextDocument.Text)
	return nil
}

func (s *Server) handleDidChange(req *jsonrpc2.Request) error {
	var params lsp.DidChangeTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Full-document sync: the last change event carries the entire new text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.openDocument(string(params.TextDocument.URI), text)
	return nil
}

func (s *Server) handleDidClose(req *jsonrpc2.Request) error {
	var params lsp.DidCloseTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	s.closeDocument(string(params.TextDocument.URI))
	return nil
}

func (s *Server) handleDocumentSymbol(req *jsonrpc2.Request) (interface{}, error) {
	var params lsp.DocumentSymbolParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	uri := string(params.TextDocument.URI)
	content, ok := s.Index.GetDocumentContent(uri)
	if !ok {
		return []lspext.DocumentSymbol{}, nil
	}

	symbols := parseSymbols(uri, content)
	return lspext.FromParsedSymbols(symbols), nil
}

func (s *Server) handleDefinition(req *jsonrpc2.Request) (interface{}, error) {
	var params lsp.TextDocumentPositionParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	uri := string(params.TextDocument.URI)
	content, ok := s.Index.GetDocumentContent(uri)
	if !ok {
		return nil, nil
	}

	word := wordAt(lineAt(content, params.Position.Line), params.Position.Character)
	if word == "" {
		return nil, nil
	}

	// Staged search: the origin document's own declarations shadow any
	// same-named declaration reached through an include.
	defs := s.Index.FindDefinitionsIn(word, []string{uri})
	if len(defs) == 0 {
		defs = s.Index.FindDefinitionsIn(word, s.Graph.TransitiveIncludes(uri))
	}
	if len(defs) == 0 {
		return nil, nil
	}

	locs := make([]lsp.Location, 0, len(defs))
	for _, d := range defs {
		locs = append(locs, toLocation(d.URI, d.SelectionRange))
	}
	if len(locs) == 1 {
		return locs[0], nil
	}
	return locs, nil
}

func (s *Server) handleReferences(req *jsonrpc2.Request) (interface{}, error) {
	var params lsp.ReferenceParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	uri := string(params.TextDocument.URI)
	content, ok := s.Index.GetDocumentContent(uri)
	if !ok {
		return nil, nil
	}

	word := wordAt(lineAt(content, params.Position.Line), params.Position.Character)
	if word == "" {
		return nil, nil
	}

	refs := s.References.FindReferences(word, params.Context.IncludeDeclaration)
	if len(refs) == 0 {
		return nil, nil
	}

	locs := make([]lsp.Location, 0, len(refs))
	for _, r := range refs {
		locs = append(locs, toLocation(r.URI, r.Range))
	}
	return locs, nil
}

func toLocation(uri string, r position.Range) lsp.Location {
	return lsp.Location{
		URI: lsp.DocumentURI(uri),
		Range: lsp.Range{
			Start: lsp.Position{Line: r.Start.Line, Character: r.Start.Character},
			End:   lsp.Position{Line: r.End.Line, Character: r.End.Character},
		},
	}
}

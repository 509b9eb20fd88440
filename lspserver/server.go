// Package lspserver wires the document cache, symbol index, reference
// tracker, and include graph into a jsonrpc2 request dispatcher answering
// the subset of the Language Server Protocol this server supports.
package lspserver

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/okurashoichi/serena-vbs/include"
	"github.com/okurashoichi/serena-vbs/symbolindex"
	"github.com/okurashoichi/serena-vbs/workspace"
)

// Server owns every piece of workspace-wide state. It is built once at
// startup and lives for the process lifetime; all mutation happens on the
// single dispatcher goroutine driving jsonrpc2.Conn's read loop.
type Server struct {
	Log           logr.Logger
	WorkspaceRoot string
	Decoder       workspace.Decoder
	ScanConfig    workspace.Config

	Index      *symbolindex.Index
	References *symbolindex.ReferenceTracker
	Graph      *include.Graph

	// mu guards the document cache against the dispatcher's own re-entrant
	// lazy-include loads (openDocument calling back into itself while
	// loading include targets); it is not required by any concurrent writer,
	// since there is exactly one.
	mu    sync.Mutex
	cache map[string]string

	// scannedFromWorkspace holds every URI discovered by ScanWorkspace or
	// reached lazily through an include. clientOpened holds every URI a
	// client has sent textDocument/didOpen for. closeDocument evicts a URI
	// only when it is clientOpened and not scannedFromWorkspace: a document
	// the workspace scan would rediscover anyway always stays indexed, even
	// if a client also has it open.
	scannedFromWorkspace map[string]struct{}
	clientOpened         map[string]struct{}
}

// New constructs a Server with empty state. The workspace scan runs when
// the client's initialize request is handled (see handleInitialize).
func New(log logr.Logger, workspaceRoot string, dec workspace.Decoder) *Server {
	return &Server{
		Log:                  log,
		WorkspaceRoot:        workspaceRoot,
		Decoder:              dec,
		Index:                symbolindex.New(),
		References:           symbolindex.NewReferenceTracker(),
		Graph:                include.New(log),
		cache:                make(map[string]string),
		scannedFromWorkspace: make(map[string]struct{}),
		clientOpened:         make(map[string]struct{}),
	}
}

// ScanWorkspace runs the synchronous recursive scan described for workspace
// startup, loading every .vbs/.asp/.inc file under s.WorkspaceRoot through
// the same pipeline a client's didOpen would use. Every URI it finds is
// marked scanned so closeDocument never evicts it.
func (s *Server) ScanWorkspace() error {
	return workspace.ScanWithConfig(s.WorkspaceRoot, s.Decoder, s.Log, s.ScanConfig, func(uri, content string) {
		s.markScanned(uri)
		s.openDocument(uri, content)
	})
}

// markScanned records docURI as discovered by the workspace scan or reached
// lazily through an include, rather than opened directly by a client.
func (s *Server) markScanned(docURI string) {
	s.mu.Lock()
	s.scannedFromWorkspace[docURI] = struct{}{}
	s.mu.Unlock()
}

// markClientOpened records docURI as having an open client buffer.
func (s *Server) markClientOpened(docURI string) {
	s.mu.Lock()
	s.clientOpened[docURI] = struct{}{}
	s.mu.Unlock()
}

package lspserver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/okurashoichi/serena-vbs/aspscript"
	"github.com/okurashoichi/serena-vbs/include"
	"github.com/okurashoichi/serena-vbs/vbscript"
	"go.lsp.dev/uri"
)

// openDocument runs the shared open/change pipeline: cache the text, parse
// it into symbols, update the index, update this document's include edges
// (lazily loading any newly-reachable document that isn't cached yet), and
// rescan every cached document's references against the current name set.
func (s *Server) openDocument(docURI, content string) {
	s.mu.Lock()
	s.cache[docURI] = content
	s.mu.Unlock()

	symbols := parseSymbols(docURI, content)
	s.Index.Update(docURI, content, symbols)

	directives := include.ParseDirectives(content, docURI, s.WorkspaceRoot)
	for _, d := range directives {
		if !d.IsValid {
			s.Log.Info("unresolved include directive", "uri", docURI, "rawPath", d.RawPath, "error", d.ErrorMessage)
		}
	}
	changed := s.Graph.Update(docURI, directives)

	for _, target := range changed {
		if target == docURI {
			continue
		}
		s.lazyLoad(target)
	}

	s.rescanAllReferences()
}

// closeDocument evicts cache/index/reference/include state for a document
// the client opened directly, as long as the workspace scan (or a lazy
// include load) didn't also discover it: a document the scan would
// rediscover on its own stays indexed even after the client's buffer closes,
// since another still-open document may depend on it.
func (s *Server) closeDocument(docURI string) {
	s.mu.Lock()
	_, scanned := s.scannedFromWorkspace[docURI]
	_, clientOpened := s.clientOpened[docURI]
	s.mu.Unlock()
	if scanned || !clientOpened {
		return
	}

	s.mu.Lock()
	delete(s.cache, docURI)
	delete(s.clientOpened, docURI)
	s.mu.Unlock()

	s.Index.Remove(docURI)
	s.References.Remove(docURI)
	s.Graph.Remove(docURI)

	s.rescanAllReferences()
}

func (s *Server) lazyLoad(docURI string) {
	s.mu.Lock()
	_, loaded := s.cache[docURI]
	s.mu.Unlock()
	if loaded {
		return
	}

	path := uri.New(docURI).Filename()
	raw, err := os.ReadFile(path)
	if err != nil {
		s.Log.Info("failed to lazily load include target", "uri", docURI, "path", path, "error", err.Error())
		return
	}

	s.markScanned(docURI)
	s.openDocument(docURI, s.Decoder.Decode(raw))
}

func (s *Server) rescanAllReferences() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.cache))
	for u := range s.cache {
		uris = append(uris, u)
	}
	s.mu.Unlock()

	for _, u := range uris {
		content, ok := s.Index.GetDocumentContent(u)
		if !ok {
			continue
		}
		s.References.Update(s.Index, u, content)
	}
}

// parseSymbols dispatches on file suffix: .asp content is first split into
// server-script fragments (each carrying its own offset into the file),
// while .vbs/.inc content is parsed as a single fragment at offset zero.
func parseSymbols(docURI, content string) []*vbscript.ParsedSymbol {
	if !strings.EqualFold(filepath.Ext(stripURIQuery(docURI)), ".asp") {
		return vbscript.Parse(content)
	}

	var all []*vbscript.ParsedSymbol
	for _, block := range aspscript.Extract(content) {
		if block.Inline {
			continue
		}
		all = append(all, vbscript.Offset(vbscript.Parse(block.Code), block.Start)...)
	}
	return all
}

func stripURIQuery(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}

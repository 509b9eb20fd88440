// Package symbolindex holds the workspace-wide symbol table: documents'
// flattened declarations, their raw text, and (in references.go) every
// identifier occurrence that resolves to a known declaration. Both halves
// are owned by the dispatcher goroutine and mutated only on document
// lifecycle events; see lspserver for the single-writer wiring.
package symbolindex

import (
	"strings"

	"github.com/okurashoichi/serena-vbs/position"
	"github.com/okurashoichi/serena-vbs/vbscript"
)

// IndexedSymbol is the flat form of a vbscript.ParsedSymbol: container
// nesting is recorded as a name rather than as a tree edge, so lookups by
// name don't need to walk a hierarchy.
type IndexedSymbol struct {
	URI            string
	Name           string
	Kind           vbscript.SymbolKind
	ContainerName  string // empty for top-level declarations
	Range          position.Range
	SelectionRange position.Range
}

// Index is the workspace symbol table. Zero value is not usable; use New.
type Index struct {
	byURI   map[string][]IndexedSymbol
	byName  map[string][]IndexedSymbol
	content map[string]string
}

func New() *Index {
	return &Index{
		byURI:   make(map[string][]IndexedSymbol),
		byName:  make(map[string][]IndexedSymbol),
		content: make(map[string]string),
	}
}

// Update atomically replaces uri's entries in every map, flattening the
// parsed tree (already offset into document coordinates by the caller)
// into IndexedSymbol records.
func (idx *Index) Update(uri, content string, parsed []*vbscript.ParsedSymbol) {
	idx.Remove(uri)

	var flat []IndexedSymbol
	var walk func(syms []*vbscript.ParsedSymbol, container string)
	walk = func(syms []*vbscript.ParsedSymbol, container string) {
		for _, s := range syms {
			flat = append(flat, IndexedSymbol{
				URI:            uri,
				Name:           s.Name,
				Kind:           s.Kind,
				ContainerName:  container,
				Range:          s.Range,
				SelectionRange: s.SelectionRange,
			})
			walk(s.Children, s.Name)
		}
	}
	walk(parsed, "")

	idx.byURI[uri] = flat
	idx.content[uri] = content
	for _, s := range flat {
		key := strings.ToLower(s.Name)
		idx.byName[key] = append(idx.byName[key], s)
	}
}

// Remove deletes uri's entries from every map.
func (idx *Index) Remove(uri string) {
	for _, s := range idx.byURI[uri] {
		key := strings.ToLower(s.Name)
		idx.byName[key] = removeSymbolsForURI(idx.byName[key], uri)
		if len(idx.byName[key]) == 0 {
			delete(idx.byName, key)
		}
	}
	delete(idx.byURI, uri)
	delete(idx.content, uri)
}

func removeSymbolsForURI(syms []IndexedSymbol, uri string) []IndexedSymbol {
	out := syms[:0]
	for _, s := range syms {
		if s.URI != uri {
			out = append(out, s)
		}
	}
	return out
}

// FindDefinitions returns every IndexedSymbol whose name case-folds to name.
func (idx *Index) FindDefinitions(name string) []IndexedSymbol {
	return append([]IndexedSymbol(nil), idx.byName[strings.ToLower(name)]...)
}

// FindDefinitionsIn restricts FindDefinitions to symbols declared in one of
// the given URIs, preserving the order of uris.
func (idx *Index) FindDefinitionsIn(name string, uris []string) []IndexedSymbol {
	all := idx.byName[strings.ToLower(name)]
	if len(all) == 0 {
		return nil
	}
	var out []IndexedSymbol
	for _, u := range uris {
		for _, s := range all {
			if s.URI == u {
				out = append(out, s)
			}
		}
	}
	return out
}

// GetDocumentContent returns uri's stored text and whether it is present.
func (idx *Index) GetDocumentContent(uri string) (string, bool) {
	c, ok := idx.content[uri]
	return c, ok
}

// GetSymbolsInDocument returns uri's flattened declarations in declaration
// order, suitable for reconstructing a documentSymbol response.
func (idx *Index) GetSymbolsInDocument(uri string) []IndexedSymbol {
	return append([]IndexedSymbol(nil), idx.byURI[uri]...)
}

// Names returns every case-folded name currently present in the index, the
// target set the reference tracker rescans documents against.
func (idx *Index) Names() []string {
	out := make([]string, 0, len(idx.byName))
	for n := range idx.byName {
		out = append(out, n)
	}
	return out
}

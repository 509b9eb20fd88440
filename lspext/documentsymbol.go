// Package lspext adds the hierarchical DocumentSymbol shape (LSP 3.16) that
// github.com/sourcegraph/go-lsp predates, since its SymbolInformation is
// flat. FromParsedSymbols builds this tree directly from a
// vbscript.ParsedSymbol tree, and Flatten is a fallback for callers that
// only understand SymbolInformation.
package lspext

import (
	"github.com/okurashoichi/serena-vbs/position"
	"github.com/okurashoichi/serena-vbs/vbscript"
	"github.com/sourcegraph/go-lsp"
)

// DocumentSymbol is the hierarchical symbol shape.
type DocumentSymbol struct {
	Name           string           `json:"name"`
	Kind           lsp.SymbolKind   `json:"kind"`
	Range          lsp.Range        `json:"range"`
	SelectionRange lsp.Range        `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

func symbolKind(k vbscript.SymbolKind) lsp.SymbolKind {
	switch k {
	case vbscript.ClassKind:
		return lsp.SKClass
	case vbscript.PropertyKind:
		return lsp.SKProperty
	default:
		return lsp.SKFunction
	}
}

func toLSPRange(r position.Range) lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   lsp.Position{Line: r.End.Line, Character: r.End.Character},
	}
}

// FromParsedSymbols converts a vbscript parse tree (already offset into
// document coordinates) into the hierarchical wire shape.
func FromParsedSymbols(symbols []*vbscript.ParsedSymbol) []DocumentSymbol {
	out := make([]DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, DocumentSymbol{
			Name:           s.Name,
			Kind:           symbolKind(s.Kind),
			Range:          toLSPRange(s.Range),
			SelectionRange: toLSPRange(s.SelectionRange),
			Children:       FromParsedSymbols(s.Children),
		})
	}
	return out
}

// Flatten converts a DocumentSymbol tree into the older flat
// SymbolInformation shape, recording each node's parent name as
// ContainerName, for clients that don't support hierarchical symbols.
func Flatten(uri lsp.DocumentURI, symbols []DocumentSymbol) []lsp.SymbolInformation {
	var out []lsp.SymbolInformation
	var walk func(syms []DocumentSymbol, container string)
	walk = func(syms []DocumentSymbol, container string) {
		for _, s := range syms {
			out = append(out, lsp.SymbolInformation{
				Name:          s.Name,
				Kind:          s.Kind,
				Location:      lsp.Location{URI: uri, Range: s.Range},
				ContainerName: container,
			})
			walk(s.Children, s.Name)
		}
	}
	walk(symbols, "")
	return out
}

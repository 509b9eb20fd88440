package symbolindex

import (
	"sort"
	"strings"

	"github.com/okurashoichi/serena-vbs/position"
	"github.com/okurashoichi/serena-vbs/vbscript"
)

// Reference is one textual occurrence of a name, found by the scanner and
// linked back to a declaration when its range coincides with one.
type Reference struct {
	URI          string
	Name         string
	Range        position.Range
	IsDefinition bool
}

// ReferenceTracker is the workspace-wide reference table.
type ReferenceTracker struct {
	byURI  map[string][]Reference
	byName map[string][]Reference
}

func NewReferenceTracker() *ReferenceTracker {
	return &ReferenceTracker{
		byURI:  make(map[string][]Reference),
		byName: make(map[string][]Reference),
	}
}

// Update rescans content for every name currently known to idx, replacing
// uri's entries. Occurrences are cross-checked against idx's own-document
// declarations to set IsDefinition; declarations living in another document
// (found via an include) are references, not definitions, in this document.
func (t *ReferenceTracker) Update(idx *Index, uri, content string) {
	t.Remove(uri)

	targets := make(map[string]struct{}, len(idx.byName))
	for _, n := range idx.Names() {
		targets[n] = struct{}{}
	}
	if len(targets) == 0 {
		return
	}

	declHere := make(map[string][]position.Range)
	for _, s := range idx.byURI[uri] {
		key := strings.ToLower(s.Name)
		declHere[key] = append(declHere[key], s.SelectionRange)
	}

	var refs []Reference
	for _, tok := range vbscript.Identifiers(content) {
		key := strings.ToLower(tok.Name)
		if _, ok := targets[key]; !ok {
			continue
		}
		isDef := false
		for _, r := range declHere[key] {
			if r == tok.Range {
				isDef = true
				break
			}
		}
		refs = append(refs, Reference{
			URI:          uri,
			Name:         tok.Name,
			Range:        tok.Range,
			IsDefinition: isDef,
		})
	}

	if len(refs) == 0 {
		return
	}
	t.byURI[uri] = refs
	for _, r := range refs {
		key := strings.ToLower(r.Name)
		t.byName[key] = append(t.byName[key], r)
	}
}

// Remove drops uri's entries from every map.
func (t *ReferenceTracker) Remove(uri string) {
	for _, r := range t.byURI[uri] {
		key := strings.ToLower(r.Name)
		t.byName[key] = removeReferencesForURI(t.byName[key], uri)
		if len(t.byName[key]) == 0 {
			delete(t.byName, key)
		}
	}
	delete(t.byURI, uri)
}

func removeReferencesForURI(refs []Reference, uri string) []Reference {
	out := refs[:0]
	for _, r := range refs {
		if r.URI != uri {
			out = append(out, r)
		}
	}
	return out
}

// FindReferences returns every Reference matching casefold(name),
// workspace-wide, deduplicated by (uri, range) and ordered by uri then
// start position. When includeDeclaration is false, occurrences with
// IsDefinition set are filtered out.
func (t *ReferenceTracker) FindReferences(name string, includeDeclaration bool) []Reference {
	all := t.byName[strings.ToLower(name)]

	type key struct {
		uri   string
		start position.Position
		end   position.Position
	}
	seen := make(map[key]struct{})

	var out []Reference
	for _, r := range all {
		if !includeDeclaration && r.IsDefinition {
			continue
		}
		k := key{uri: r.URI, start: r.Range.Start, end: r.Range.End}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].URI != out[j].URI {
			return out[i].URI < out[j].URI
		}
		return out[i].Range.Start.Less(out[j].Range.Start)
	})

	return out
}

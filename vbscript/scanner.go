package vbscript

import (
	"regexp"

	"github.com/okurashoichi/serena-vbs/position"
)

// IdentifierToken is one maximal identifier run found in Code state.
type IdentifierToken struct {
	Name  string
	Range position.Range
}

var identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Identifiers extracts every identifier token from text's Code spans,
// ignoring tokens that fall inside a string literal or a comment. Positions
// are relative to the start of text; the reference tracker passes whole
// documents, so its positions are already in document coordinates.
func Identifiers(text string) []IdentifierToken {
	spans := Classify(text)

	var out []IdentifierToken
	for _, s := range spans {
		if s.State != Code {
			continue
		}
		for _, m := range identifierRe.FindAllStringIndex(text[s.Start:s.End], -1) {
			start := s.Start + m[0]
			end := s.Start + m[1]
			out = append(out, IdentifierToken{
				Name: text[start:end],
				Range: position.Range{
					Start: position.OffsetToPosition(text, start),
					End:   position.OffsetToPosition(text, end),
				},
			})
		}
	}
	return out
}

// Package aspscript lifts server-side VBScript fragments out of mixed
// HTML/VBScript Classic ASP content, preserving the exact line/column
// offset of every fragment back into the original file.
package aspscript

import (
	"regexp"
	"strings"

	"github.com/okurashoichi/serena-vbs/position"
)

// Block is a maximal VBScript region inside an ASP file, with the position
// of its first content byte in the original file's coordinate system.
type Block struct {
	Code  string
	Start position.Position
	// Inline is true for <%= ... %> output expressions, whose contents are
	// not passed to the symbol parser.
	Inline bool
}

var serverScriptTagOpen = regexp.MustCompile(`(?is)<script\b[^>]*>`)
var runatServerAttr = regexp.MustCompile(`(?is)runat\s*=\s*(["'])server\1`)

// Extract scans raw ASP file content and returns its script blocks in
// document order. Delimited <% ... %> blocks, <%= ... %> output
// expressions, and <script runat="server"> tags are all recognized.
// Overlap and nesting are not supported, matching Classic ASP semantics: a
// "%>" found while scanning (even inside what would be a string literal in
// the embedded VBScript) ends the block, since the extractor works purely
// on the HTML/VBScript boundary, not VBScript syntax.
func Extract(content string) []Block {
	var blocks []Block

	i := 0
	for i < len(content) {
		ltIdx := strings.Index(content[i:], "<")
		if ltIdx < 0 {
			break
		}
		tagStart := i + ltIdx

		switch {
		case strings.HasPrefix(content[tagStart:], "<%"):
			block, next := extractPercentBlock(content, tagStart)
			blocks = append(blocks, block)
			i = next

		case isServerScriptTagAt(content, tagStart):
			block, next, ok := extractScriptTag(content, tagStart)
			if ok {
				blocks = append(blocks, block)
				i = next
			} else {
				i = tagStart + 1
			}

		default:
			i = tagStart + 1
		}
	}

	return blocks
}

// extractPercentBlock handles both "<% ... %>" and "<%= ... %>" starting at
// content[start:]. An unterminated block is tolerantly extended to EOF.
func extractPercentBlock(content string, start int) (Block, int) {
	inline := strings.HasPrefix(content[start:], "<%=")
	contentStart := start + 2
	if inline {
		contentStart = start + 3
	}

	closeIdx := strings.Index(content[contentStart:], "%>")
	var body string
	var next int
	if closeIdx < 0 {
		body = content[contentStart:]
		next = len(content)
	} else {
		body = content[contentStart : contentStart+closeIdx]
		next = contentStart + closeIdx + 2
	}

	return Block{
		Code:   body,
		Start:  position.OffsetToPosition(content, contentStart),
		Inline: inline,
	}, next
}

func isServerScriptTagAt(content string, idx int) bool {
	loc := serverScriptTagOpen.FindStringIndex(content[idx:])
	if loc == nil || loc[0] != 0 {
		return false
	}
	tag := content[idx : idx+loc[1]]
	return runatServerAttr.MatchString(tag)
}

// extractScriptTag handles a <script ... runat="server"> ... </script>
// region. An unterminated tag extends tolerantly to EOF.
func extractScriptTag(content string, start int) (Block, int, bool) {
	openLoc := serverScriptTagOpen.FindStringIndex(content[start:])
	if openLoc == nil {
		return Block{}, 0, false
	}
	contentStart := start + openLoc[1]

	closeRe := regexp.MustCompile(`(?is)</script\s*>`)
	closeLoc := closeRe.FindStringIndex(content[contentStart:])

	var body string
	var next int
	if closeLoc == nil {
		body = content[contentStart:]
		next = len(content)
	} else {
		body = content[contentStart : contentStart+closeLoc[0]]
		next = contentStart + closeLoc[1]
	}

	return Block{
		Code:   body,
		Start:  position.OffsetToPosition(content, contentStart),
		Inline: false,
	}, next, true
}

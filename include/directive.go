// Package include implements the Classic ASP include-directive parser and
// the workspace-wide include graph built from the directives it finds.
package include

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/okurashoichi/serena-vbs/position"
	"go.lsp.dev/uri"
)

// Kind distinguishes the two include directive forms.
type Kind int

const (
	File Kind = iota
	Virtual
)

// Directive is an immutable record of one
// <!--#include file="..."--> / <!--#include virtual="..."--> occurrence.
type Directive struct {
	Kind         Kind
	RawPath      string
	ResolvedURI  string // empty when !IsValid
	Range        position.Range
	IsValid      bool
	ErrorMessage string
}

var directiveRe = regexp.MustCompile(`(?is)<!--\s*#include\s+(file|virtual)\s*=\s*("([^"]*)"|'([^']*)')\s*-->`)

// ParseDirectives scans content (the raw bytes of an .asp file, already
// decoded to text) for include directives and resolves each one against
// sourceURI's directory (for file=) or workspaceRoot (for virtual=).
// Resolution never touches the filesystem; existence is checked later by
// the graph or on lazy load.
func ParseDirectives(content, sourceURI, workspaceRoot string) []Directive {
	var out []Directive

	matches := directiveRe.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		kindStr := strings.ToLower(content[m[2]:m[3]])
		var rawPath string
		if m[6] >= 0 {
			rawPath = content[m[6]:m[7]]
		} else {
			rawPath = content[m[8]:m[9]]
		}

		kind := File
		if kindStr == "virtual" {
			kind = Virtual
		}

		d := Directive{
			Kind:    kind,
			RawPath: rawPath,
			Range: position.Range{
				Start: position.OffsetToPosition(content, m[0]),
				End:   position.OffsetToPosition(content, m[1]),
			},
		}

		resolved, err := resolve(kind, rawPath, sourceURI, workspaceRoot)
		if err != nil {
			d.IsValid = false
			d.ErrorMessage = err.Error()
		} else {
			d.IsValid = true
			d.ResolvedURI = resolved
		}

		out = append(out, d)
	}

	return out
}

func resolve(kind Kind, rawPath, sourceURI, workspaceRoot string) (string, error) {
	switch kind {
	case File:
		srcPath := uri.New(sourceURI).Filename()
		dir := filepath.Dir(srcPath)
		joined := filepath.Join(dir, filepath.FromSlash(rawPath))
		return string(uri.File(joined)), nil

	case Virtual:
		if workspaceRoot == "" {
			return "", fmt.Errorf("cannot resolve virtual path %q: no workspace root configured", rawPath)
		}
		rootPath := uri.New(workspaceRoot).Filename()
		trimmed := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rawPath)), "/")
		joined := filepath.Join(rootPath, filepath.FromSlash(trimmed))
		return string(uri.File(joined)), nil
	}

	return "", fmt.Errorf("unknown include kind")
}

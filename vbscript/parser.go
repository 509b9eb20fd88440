package vbscript

import (
	"regexp"
	"strings"

	"github.com/okurashoichi/serena-vbs/position"
)

// SymbolKind distinguishes the declaration forms produced by the parser.
type SymbolKind int

const (
	FunctionKind SymbolKind = iota
	ClassKind
	PropertyKind
)

// ParsedSymbol is one declaration found by Parse, with its children (Class
// members only; Function/Sub/Property never have children).
type ParsedSymbol struct {
	Name           string
	Kind           SymbolKind
	Range          position.Range
	SelectionRange position.Range
	Children       []*ParsedSymbol
}

var (
	functionOpen = regexp.MustCompile(`(?i)^(?:public\s+|private\s+)?function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	subOpen      = regexp.MustCompile(`(?i)^(?:public\s+|private\s+)?sub\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	classOpen    = regexp.MustCompile(`(?i)^(?:public\s+|private\s+)?class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	propertyOpen = regexp.MustCompile(`(?i)^(?:public\s+|private\s+)?property\s+(get|let|set)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

	functionEnd = regexp.MustCompile(`(?i)^end\s+function\b`)
	subEnd      = regexp.MustCompile(`(?i)^end\s+sub\b`)
	classEnd    = regexp.MustCompile(`(?i)^end\s+class\b`)
	propertyEnd = regexp.MustCompile(`(?i)^end\s+property\b`)
)

// family identifies which terminator keyword closes a frame; distinct from
// SymbolKind because Function and Sub share FunctionKind but close with
// different terminators.
type family int

const (
	familyFunction family = iota
	familySub
	familyClass
	familyProperty
)

type openFrame struct {
	fam    family
	symbol *ParsedSymbol
}

// Parse extracts the declaration tree from text, a single fragment (a whole
// .vbs/.inc file, or one ASP ScriptBlock) whose own first character is
// position {0,0}. Callers lift the result into the enclosing document's
// coordinate system with Offset.
func Parse(text string) []*ParsedSymbol {
	spans := Classify(text)

	var root []*ParsedSymbol
	var containerStack []*ParsedSymbol
	var openStack []openFrame

	lineStart := 0
	for lineStart <= len(text) {
		nl := strings.IndexByte(text[lineStart:], '\n')
		var line string
		var lineEnd int
		if nl < 0 {
			line = text[lineStart:]
			lineEnd = len(text)
		} else {
			line = text[lineStart : lineStart+nl]
			lineEnd = lineStart + nl
		}

		trimmed := strings.TrimLeft(line, " \t\r")
		leadLen := len(line) - len(trimmed)
		trimmedOffset := lineStart + leadLen

		if StateAt(spans, trimmedOffset) == Code {
			parseLine(text, trimmed, trimmedOffset, lineEnd, &root, &containerStack, &openStack)
		}

		if nl < 0 {
			break
		}
		lineStart += nl + 1
	}

	eof := position.OffsetToPosition(text, len(text))
	for _, f := range openStack {
		f.symbol.Range.End = eof
	}

	return root
}

func parseLine(text, trimmed string, trimmedOffset, lineEnd int, root *[]*ParsedSymbol, containerStack *[]*ParsedSymbol, openStack *[]openFrame) {
	switch {
	case functionEnd.MatchString(trimmed):
		closeFamily(familyFunction, lineEnd, text, containerStack, openStack)
		return
	case subEnd.MatchString(trimmed):
		closeFamily(familySub, lineEnd, text, containerStack, openStack)
		return
	case classEnd.MatchString(trimmed):
		closeFamily(familyClass, lineEnd, text, containerStack, openStack)
		return
	case propertyEnd.MatchString(trimmed):
		closeFamily(familyProperty, lineEnd, text, containerStack, openStack)
		return
	}

	if m := classOpen.FindStringSubmatchIndex(trimmed); m != nil {
		open(familyClass, ClassKind, trimmed, m[2], m[3], trimmedOffset, text, root, containerStack, openStack, true)
		return
	}
	if m := functionOpen.FindStringSubmatchIndex(trimmed); m != nil {
		open(familyFunction, FunctionKind, trimmed, m[2], m[3], trimmedOffset, text, root, containerStack, openStack, false)
		return
	}
	if m := subOpen.FindStringSubmatchIndex(trimmed); m != nil {
		open(familySub, FunctionKind, trimmed, m[2], m[3], trimmedOffset, text, root, containerStack, openStack, false)
		return
	}
	if m := propertyOpen.FindStringSubmatchIndex(trimmed); m != nil {
		open(familyProperty, PropertyKind, trimmed, m[4], m[5], trimmedOffset, text, root, containerStack, openStack, false)
		return
	}
}

func open(fam family, kind SymbolKind, trimmed string, nameStart, nameEnd, trimmedOffset int, text string, root *[]*ParsedSymbol, containerStack *[]*ParsedSymbol, openStack *[]openFrame, isContainer bool) {
	name := trimmed[nameStart:nameEnd]

	declStart := position.OffsetToPosition(text, trimmedOffset)
	selStart := position.OffsetToPosition(text, trimmedOffset+nameStart)
	selEnd := position.OffsetToPosition(text, trimmedOffset+nameEnd)

	sym := &ParsedSymbol{
		Name: name,
		Kind: kind,
		Range: position.Range{
			Start: declStart,
			End:   declStart,
		},
		SelectionRange: position.Range{Start: selStart, End: selEnd},
	}

	if len(*containerStack) > 0 {
		top := (*containerStack)[len(*containerStack)-1]
		top.Children = append(top.Children, sym)
	} else {
		*root = append(*root, sym)
	}

	*openStack = append(*openStack, openFrame{fam: fam, symbol: sym})
	if isContainer {
		*containerStack = append(*containerStack, sym)
	}
}

func closeFamily(fam family, lineEnd int, text string, containerStack *[]*ParsedSymbol, openStack *[]openFrame) {
	idx := -1
	for i := len(*openStack) - 1; i >= 0; i-- {
		if (*openStack)[i].fam == fam {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	endPos := position.OffsetToPosition(text, lineEnd)
	for i := len(*openStack) - 1; i >= idx; i-- {
		(*openStack)[i].symbol.Range.End = endPos
		if (*openStack)[i].fam == familyClass && len(*containerStack) > 0 {
			*containerStack = (*containerStack)[:len(*containerStack)-1]
		}
	}

	*openStack = (*openStack)[:idx]
}

// Offset shifts every Range and SelectionRange in symbols (recursively) by
// origin, translating a fragment-local parse tree into the enclosing
// document's coordinate system. Call with origin {0,0} for whole-file
// parses, where it is a no-op.
func Offset(symbols []*ParsedSymbol, origin position.Position) []*ParsedSymbol {
	for _, s := range symbols {
		s.Range = position.AddOffsetRange(origin, s.Range)
		s.SelectionRange = position.AddOffsetRange(origin, s.SelectionRange)
		s.Children = Offset(s.Children, origin)
	}
	return symbols
}

package vbscript

import (
	"testing"

	"github.com/okurashoichi/serena-vbs/position"
	"github.com/stretchr/testify/require"
)

func TestParseFunctionRangeAndSelection(t *testing.T) {
	text := "Public Function AddNumbers(a, b)\n    AddNumbers = a + b\nEnd Function\n"
	syms := Parse(text)
	require.Len(t, syms, 1)

	f := syms[0]
	require.Equal(t, "AddNumbers", f.Name)
	require.Equal(t, FunctionKind, f.Kind)
	require.Equal(t, position.Position{Line: 0, Character: 0}, f.Range.Start)
	require.Equal(t, 2, f.Range.End.Line)
	require.Equal(t, position.Position{Line: 0, Character: 16}, f.SelectionRange.Start)
	require.Equal(t, position.Position{Line: 0, Character: 26}, f.SelectionRange.End)
}

func TestParseClassWithNestedSub(t *testing.T) {
	text := "Class Calculator\n  Public Sub Add(v)\n    m_R = m_R + v\n  End Sub\nEnd Class\n"
	syms := Parse(text)
	require.Len(t, syms, 1)

	c := syms[0]
	require.Equal(t, "Calculator", c.Name)
	require.Equal(t, ClassKind, c.Kind)
	require.Equal(t, 0, c.Range.Start.Line)
	require.Equal(t, 4, c.Range.End.Line)

	require.Len(t, c.Children, 1)
	add := c.Children[0]
	require.Equal(t, "Add", add.Name)
	require.Equal(t, FunctionKind, add.Kind)
	require.Equal(t, 1, add.Range.Start.Line)
	require.Equal(t, 3, add.Range.End.Line)
}

func TestParseUnclosedOpenerExtendsToEOF(t *testing.T) {
	text := "Function Leaked()\n  x = 1\n"
	syms := Parse(text)
	require.Len(t, syms, 1)
	require.Equal(t, position.EndOfText(text), syms[0].Range.End)
}

func TestParseIgnoresOpenerInsideComment(t *testing.T) {
	text := "' Function Fake()\nFunction Real()\nEnd Function\n"
	syms := Parse(text)
	require.Len(t, syms, 1)
	require.Equal(t, "Real", syms[0].Name)
}

func TestParseIgnoresOpenerInsideString(t *testing.T) {
	text := "x = \"Function Fake()\"\nFunction Real()\nEnd Function\n"
	syms := Parse(text)
	require.Len(t, syms, 1)
	require.Equal(t, "Real", syms[0].Name)
}

func TestParseDuplicateNamesPreserved(t *testing.T) {
	text := "Function F()\nEnd Function\nFunction F()\nEnd Function\n"
	syms := Parse(text)
	require.Len(t, syms, 2)
	require.Equal(t, "F", syms[0].Name)
	require.Equal(t, "F", syms[1].Name)
}

func TestParsePropertyGetLetSet(t *testing.T) {
	text := "Class C\n  Public Property Get Value()\n  End Property\n  Public Property Let Value(v)\n  End Property\nEnd Class\n"
	syms := Parse(text)
	require.Len(t, syms, 1)
	require.Len(t, syms[0].Children, 2)
	require.Equal(t, PropertyKind, syms[0].Children[0].Kind)
	require.Equal(t, "Value", syms[0].Children[0].Name)
	require.Equal(t, "Value", syms[0].Children[1].Name)
}

func TestOffsetLiftsFragmentIntoDocumentCoordinates(t *testing.T) {
	text := "Function Greet()\nEnd Function\n"
	syms := Parse(text)
	origin := position.Position{Line: 2, Character: 0}
	lifted := Offset(syms, origin)

	require.Equal(t, 2, lifted[0].SelectionRange.Start.Line)
	require.Equal(t, 9, lifted[0].SelectionRange.Start.Character)
}

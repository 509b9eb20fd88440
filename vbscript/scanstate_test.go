package vbscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyLineComment(t *testing.T) {
	text := "x = 1 ' trailing comment\ny = 2\n"
	spans := Classify(text)

	commentStart := len("x = 1 ")
	require.Equal(t, InLineComment, StateAt(spans, commentStart))
	require.Equal(t, Code, StateAt(spans, len("x = 1 ' trailing comment\n")))
}

func TestClassifyStringWithEmbeddedQuote(t *testing.T) {
	text := `x = "a""b"` + "\ny = 1\n"
	strStart := len("x = ")
	spans := Classify(text)
	require.Equal(t, InString, StateAt(spans, strStart))
	require.Equal(t, InString, StateAt(spans, strStart+4)) // just past the "" escape
	afterString := len(`x = "a""b"`)
	require.Equal(t, Code, StateAt(spans, afterString))
}

func TestClassifyUnterminatedStringExtendsPastNewline(t *testing.T) {
	text := "x = \"never closes\ny = 1\n"
	spans := Classify(text)
	require.Equal(t, InString, StateAt(spans, len(text)-1))
}

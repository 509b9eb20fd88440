package include

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFileDirective(t *testing.T) {
	content := `<!--#include file="lib.inc"-->`
	source := "file:///ws/pages/a.asp"
	ds := ParseDirectives(content, source, "file:///ws")
	require.Len(t, ds, 1)
	require.Equal(t, File, ds[0].Kind)
	require.True(t, ds[0].IsValid)
	require.Contains(t, ds[0].ResolvedURI, "pages/lib.inc")
}

func TestParseVirtualDirective(t *testing.T) {
	content := `<!--#include virtual="/shared/header.inc"-->`
	ds := ParseDirectives(content, "file:///ws/pages/a.asp", "file:///ws")
	require.Len(t, ds, 1)
	require.Equal(t, Virtual, ds[0].Kind)
	require.True(t, ds[0].IsValid)
	require.Contains(t, ds[0].ResolvedURI, "shared/header.inc")
}

func TestParseVirtualDirectiveWithoutWorkspaceRootIsInvalid(t *testing.T) {
	content := `<!--#include virtual="/shared/header.inc"-->`
	ds := ParseDirectives(content, "file:///ws/pages/a.asp", "")
	require.Len(t, ds, 1)
	require.False(t, ds[0].IsValid)
	require.NotEmpty(t, ds[0].ErrorMessage)
}

func TestParseDirectiveCaseInsensitive(t *testing.T) {
	content := `<!-- #INCLUDE FILE = "lib.inc" -->`
	ds := ParseDirectives(content, "file:///ws/a.asp", "file:///ws")
	require.Len(t, ds, 1)
	require.True(t, ds[0].IsValid)
}

func TestParseDirectiveSingleQuotes(t *testing.T) {
	content := `<!--#include file='lib.inc'-->`
	ds := ParseDirectives(content, "file:///ws/a.asp", "file:///ws")
	require.Len(t, ds, 1)
	require.Equal(t, "lib.inc", ds[0].RawPath)
}

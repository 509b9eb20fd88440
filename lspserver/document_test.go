package lspserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/okurashoichi/serena-vbs/workspace"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(logr.Discard(), t.TempDir(), workspace.UTF8Decoder())
}

func TestOpenDocumentIndexesSymbols(t *testing.T) {
	s := newTestServer(t)
	s.openDocument("file:///m.vbs", "Function Helper()\nEnd Function\n")

	defs := s.Index.FindDefinitions("Helper")
	require.Len(t, defs, 1)
}

func TestOpenDocumentLazilyLoadsIncludeTarget(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.inc")
	require.NoError(t, os.WriteFile(libPath, []byte("Function Helper()\nEnd Function\n"), 0o644))

	s := New(logr.Discard(), dir, workspace.UTF8Decoder())
	aURI := workspace.FileURI(filepath.Join(dir, "a.asp"))
	s.openDocument(aURI, `<!--#include file="lib.inc"-->`)

	libURI := workspace.FileURI(libPath)
	_, cached := s.Index.GetDocumentContent(libURI)
	require.True(t, cached)
	require.Len(t, s.Index.FindDefinitions("Helper"), 1)
}

func TestOpenDocumentParsesASPFragmentsWithOffset(t *testing.T) {
	s := newTestServer(t)
	content := "<%@ Language=\"VBScript\" %>\n<html><%\nFunction Greet()\nEnd Function\n%></html>"
	s.openDocument("file:///page.asp", content)

	syms := s.Index.GetSymbolsInDocument("file:///page.asp")
	require.Len(t, syms, 1)
	require.Equal(t, 2, syms[0].SelectionRange.Start.Line)
}

func TestCloseDocumentDoesNotEvict(t *testing.T) {
	s := newTestServer(t)
	s.openDocument("file:///m.vbs", "Function Helper()\nEnd Function\n")
	s.closeDocument("file:///m.vbs")

	require.Len(t, s.Index.FindDefinitions("Helper"), 1)
}

func TestCloseDocumentEvictsClientOnlyDocument(t *testing.T) {
	s := newTestServer(t)
	s.markClientOpened("file:///scratch.vbs")
	s.openDocument("file:///scratch.vbs", "Function Helper()\nEnd Function\n")
	s.closeDocument("file:///scratch.vbs")

	require.Empty(t, s.Index.FindDefinitions("Helper"))
	_, cached := s.Index.GetDocumentContent("file:///scratch.vbs")
	require.False(t, cached)
}

func TestCloseDocumentKeepsScannedDocumentEvenIfClientOpened(t *testing.T) {
	s := newTestServer(t)
	s.markScanned("file:///m.vbs")
	s.markClientOpened("file:///m.vbs")
	s.openDocument("file:///m.vbs", "Function Helper()\nEnd Function\n")
	s.closeDocument("file:///m.vbs")

	require.Len(t, s.Index.FindDefinitions("Helper"), 1)
}

func TestParseSymbolsSkipsInlineExpressionBlocks(t *testing.T) {
	s := newTestServer(t)
	content := "<%= Function Ignored()\nEnd Function %>\n<% Function Greet()\nEnd Function %>"
	s.openDocument("file:///page.asp", content)

	syms := s.Index.GetSymbolsInDocument("file:///page.asp")
	require.Len(t, syms, 1)
	require.Equal(t, "Greet", syms[0].Name)
}

package workspace

import (
	"os"

	"go.lsp.dev/uri"
)

func fsReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileURI converts a filesystem path to the document URI form used
// throughout the index, graph, and reference tracker.
func FileURI(path string) string {
	return string(uri.File(path))
}

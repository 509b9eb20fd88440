// Package workspace performs the initial recursive scan of a project root,
// loading every Classic ASP source file into the symbol index and reference
// tracker before the server starts answering requests. The walk shape is
// adapted from the file searcher's excluded-directory skip in
// filepath.WalkDir.
package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

var defaultExcludedDirs = map[string]struct{}{
	"node_modules": {},
	"Backup":       {},
	"bin":          {},
	"obj":          {},
}

var sourceSuffixes = map[string]struct{}{
	".vbs": {},
	".asp": {},
	".inc": {},
}

// WarnFileCountThreshold is the file count above which Scan logs an
// additional warning alongside "Found N source files".
const WarnFileCountThreshold = 1000

// OpenFunc is invoked for every source file found during the scan, with its
// URI and decoded text, to run the same pipeline as a client didOpen.
type OpenFunc func(uri, content string)

// Scan walks root recursively, skipping dot-directories and
// defaultExcludedDirs, and calls open for every regular file whose suffix
// is .vbs, .asp, or .inc (case-insensitive). It is synchronous: the caller
// must finish this before serving requests.
func Scan(root string, dec Decoder, log logr.Logger, open OpenFunc) error {
	return scan(root, dec, log, open, nil, WarnFileCountThreshold)
}

// ScanWithConfig is Scan extended with a config file's excludeDirs (added to
// the built-in exclude set) and scanThreshold (replacing
// WarnFileCountThreshold when positive).
func ScanWithConfig(root string, dec Decoder, log logr.Logger, cfg Config, open OpenFunc) error {
	extra := make(map[string]struct{}, len(cfg.ExcludeDirs))
	for _, d := range cfg.ExcludeDirs {
		extra[d] = struct{}{}
	}
	threshold := WarnFileCountThreshold
	if cfg.ScanThreshold > 0 {
		threshold = cfg.ScanThreshold
	}
	return scan(root, dec, log, open, extra, threshold)
}

func scan(root string, dec Decoder, log logr.Logger, open OpenFunc, extraExcluded map[string]struct{}, threshold int) error {
	count := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("workspace root %q: %w", root, err)
			}
			log.V(0).Info("skipping path after walk error", "path", path, "error", err.Error())
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || isExcludedDir(name, extraExcluded)) {
				return fs.SkipDir
			}
			return nil
		}
		if !hasSourceSuffix(path) {
			return nil
		}

		raw, readErr := fsReadFile(path)
		if readErr != nil {
			log.Info("failed to read source file, skipping", "path", path, "error", readErr.Error())
			return nil
		}

		content := dec.Decode(raw)
		uri := FileURI(path)
		open(uri, content)
		count++
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Found N source files", "count", count)
	if count > threshold {
		log.Info("workspace file count exceeds warning threshold", "count", count, "threshold", threshold)
	}

	return nil
}

func isExcludedDir(name string, extra map[string]struct{}) bool {
	if _, ok := defaultExcludedDirs[name]; ok {
		return true
	}
	_, ok := extra[name]
	return ok
}

func hasSourceSuffix(path string) bool {
	_, ok := sourceSuffixes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// File: pkg/combine/helpers.go
package combine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"repodoc/pkg/filter"
)

// sortEntries orders entries directories first, then case-insensitively by
// name, falling back to the exact name so the order is total.
func sortEntries(entries []os.FileInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		li, lj := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if li != lj {
			return li < lj
		}
		return entries[i].Name() < entries[j].Name()
	})
}

// relativePath returns path relative to root in the slash form patterns match against.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filter.NormalizePath(rel)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

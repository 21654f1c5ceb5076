// File: pkg/combine/traversal.go
package combine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"repodoc/pkg/filter"
)

// Walk lists every file under root, directories first and then lexically at
// each level, so repeated walks of an unchanged tree yield the same order.
// Unreadable directories and broken symlinks are skipped with a warning;
// symlinked directories are not followed.
func Walk(fsys afero.Fs, root string, logger *zap.Logger) ([]FileEntry, error) {
	logger = orNop(logger)

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access walk root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walk root %s is not a directory", root)
	}

	var files []FileEntry
	walkDir(fsys, root, root, &files, logger)
	logger.Debug("Completed file traversal", zap.String("root", root), zap.Int("files", len(files)))
	return files, nil
}

func walkDir(fsys afero.Fs, root, dir string, files *[]FileEntry, logger *zap.Logger) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		logger.Warn("Skipping unreadable directory", zap.String("directory", dir), zap.Error(err))
		return
	}
	sortEntries(entries)

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := fsys.Stat(path)
			if err != nil {
				logger.Warn("Skipping broken symlink", zap.String("path", path), zap.Error(err))
				continue
			}
			if target.IsDir() {
				logger.Debug("Not following symlinked directory", zap.String("path", path))
				continue
			}
		}

		if entry.IsDir() {
			walkDir(fsys, root, path, files, logger)
			continue
		}
		if !entry.Mode().IsRegular() && entry.Mode()&os.ModeSymlink == 0 {
			logger.Debug("Skipping non-regular file", zap.String("path", path), zap.Stringer("mode", entry.Mode()))
			continue
		}

		*files = append(*files, FileEntry{Path: path, RelPath: relativePath(root, path)})
	}
}

// Collect walks root and keeps the files allowed by patterns, in walk order.
func Collect(fsys afero.Fs, root string, patterns filter.PatternSet, logger *zap.Logger) ([]FileEntry, error) {
	logger = orNop(logger)

	all, err := Walk(fsys, root, logger)
	if err != nil {
		return nil, err
	}

	accepted := make([]FileEntry, 0, len(all))
	for _, f := range all {
		if patterns.Allows(f.RelPath) {
			accepted = append(accepted, f)
			continue
		}
		if pattern, denied := patterns.MatchedBy(f.RelPath); denied {
			logger.Debug("File denied", zap.String("file", f.RelPath), zap.String("pattern", pattern))
		} else {
			logger.Debug("File not allowed", zap.String("file", f.RelPath))
		}
	}

	logger.Info("Found files to process",
		zap.Int("walked", len(all)),
		zap.Int("accepted", len(accepted)))
	return accepted, nil
}

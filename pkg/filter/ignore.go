package filter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"repodoc/pkg/errors"
)

// IgnoreFileName is a per-repository deny list read from the input root.
const IgnoreFileName = ".repodocignore"

// LoadIgnoreFile reads the ignore file at the top of root and returns its
// patterns. A missing file yields no patterns. Negated lines ("!pattern")
// are not supported since nothing may override a deny, and are skipped.
func LoadIgnoreFile(fsys afero.Fs, root string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	path := filepath.Join(root, IgnoreFileName)
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Ignore file does not exist and will be skipped", zap.String("file", path))
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrProfileInvalid, "failed to read ignore file %s", path)
	}

	var patterns []string
	for _, p := range ParsePatterns(string(content)) {
		if strings.HasPrefix(p, "!") {
			logger.Warn("Negated ignore pattern is not supported, skipping", zap.String("file", path), zap.String("pattern", p))
			continue
		}
		patterns = append(patterns, p)
	}
	logger.Info("Loaded ignore file", zap.String("file", path), zap.Int("patterns", len(patterns)))
	return patterns, nil
}

// WithDeny returns a copy of ps with extra deny patterns appended.
func (ps PatternSet) WithDeny(extra []string) (PatternSet, error) {
	deny := append(ps.Deny(), extra...)
	return NewPatternSet(ps.allow, deny)
}

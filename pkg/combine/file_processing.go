package combine

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrBinaryFile marks a file skipped because it looks binary.
	ErrBinaryFile = errors.New("file looks binary")
	// ErrFileTooLarge marks a file skipped because of the size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)

type readOptions struct {
	maxBytes   int64
	skipBinary bool
}

func (r *Run) readOptions() readOptions {
	return readOptions{
		maxBytes:   int64(r.MaxFileSizeKB) * 1024,
		skipBinary: r.SkipBinary,
	}
}

// processFile reads entry and returns its normalized section. Any
// error means the file is to be skipped; the run itself continues.
func processFile(fsys afero.Fs, entry FileEntry, opts readOptions, logger *zap.Logger) (Section, error) {
	logger.Debug("Processing file", zap.String("filePath", entry.Path))

	if opts.maxBytes > 0 {
		info, err := fsys.Stat(entry.Path)
		if err != nil {
			return Section{}, fmt.Errorf("error reading file %s: %w", entry.RelPath, err)
		}
		if info.Size() > opts.maxBytes {
			return Section{}, fmt.Errorf("%s is %d bytes: %w", entry.RelPath, info.Size(), ErrFileTooLarge)
		}
	}

	data, err := afero.ReadFile(fsys, entry.Path)
	if err != nil {
		return Section{}, fmt.Errorf("error reading file %s: %w", entry.RelPath, err)
	}
	if opts.skipBinary && looksBinary(data) {
		return Section{}, fmt.Errorf("%s: %w", entry.RelPath, ErrBinaryFile)
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", entry.Path),
		zap.Int("contentSizeBytes", len(data)))

	return Section{
		RelPath: entry.RelPath,
		Body:    Normalize(string(data), filepath.Ext(entry.Path), logger.With(zap.String("file", entry.RelPath))),
	}, nil
}

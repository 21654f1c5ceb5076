package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"repodoc/pkg/errors"
)

// artifacts tracks where each chunk is written and that it is written once.
type artifacts struct {
	fs        afero.Fs
	base      string
	format    Format
	chunks    int
	finalized []bool
}

func newArtifacts(fsys afero.Fs, base string, format Format, chunks int) *artifacts {
	return &artifacts{
		fs:        fsys,
		base:      base,
		format:    format,
		chunks:    chunks,
		finalized: make([]bool, chunks),
	}
}

func (a *artifacts) Chunks() int { return a.chunks }

func (a *artifacts) check(chunk int) error {
	if chunk < 0 || chunk >= a.chunks {
		return fmt.Errorf("chunk %d out of range [0, %d)", chunk, a.chunks)
	}
	if a.finalized[chunk] {
		return fmt.Errorf("chunk %d already finalized", chunk)
	}
	return nil
}

// write creates (or truncates) the artifact of chunk and streams it through fn.
func (a *artifacts) write(chunk int, fn func(w io.Writer) error) (string, error) {
	if err := a.check(chunk); err != nil {
		return "", err
	}
	path := ArtifactPath(a.base, a.format, chunk, a.chunks)
	if dir := filepath.Dir(path); dir != "" {
		if err := a.fs.MkdirAll(dir, os.ModePerm); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileWrite, "creating output directory %s", dir)
		}
	}

	f, err := a.fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "creating %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return "", errors.Wrapf(err, errors.ErrRender, "writing %s", path)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "closing %s", path)
	}
	a.finalized[chunk] = true
	return path, nil
}

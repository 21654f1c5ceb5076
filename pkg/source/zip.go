package source

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"repodoc/pkg/errors"
)

func extractArchive(ctx context.Context, archive string, opts Options) (Input, error) {
	f, err := opts.Fs.Open(archive)
	if err != nil {
		if os.IsNotExist(err) {
			return Input{}, errors.Wrapf(err, errors.ErrSourceNotFound, "archive %s not found", archive)
		}
		return Input{}, errors.Wrapf(err, errors.ErrArchiveInvalid, "opening archive %s", archive)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Input{}, errors.Wrapf(err, errors.ErrArchiveInvalid, "reading archive %s", archive)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return Input{}, errors.Wrapf(err, errors.ErrArchiveInvalid, "reading archive %s", archive)
	}

	dest, err := afero.TempDir(opts.Fs, opts.TempDir, "repodoc-archive-")
	if err != nil {
		return Input{}, errors.Wrap(err, errors.ErrFileWrite, "creating extraction directory")
	}
	in := Input{Kind: KindArchive, Root: dest, Temporary: true, Display: archive, fs: opts.Fs}

	opts.Logger.Info("Extracting archive", zap.String("archive", archive), zap.String("destination", dest))
	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			_ = in.Cleanup(opts.Logger)
			return Input{}, err
		}
		if err := extractFile(opts.Fs, zf, dest); err != nil {
			_ = in.Cleanup(opts.Logger)
			return Input{}, errors.Wrapf(err, errors.ErrArchiveInvalid, "extracting %s", zf.Name)
		}
	}
	return in, nil
}

func extractFile(fsys afero.Fs, zf *zip.File, dest string) error {
	target, err := safeJoin(dest, zf.Name)
	if err != nil {
		return err
	}

	mode := zf.Mode()
	switch {
	case mode.IsDir():
		return fsys.MkdirAll(target, 0o755)
	case mode&os.ModeSymlink != 0:
		// Links could point outside the extraction root; they are dropped.
		return nil
	}

	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := fsys.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin joins an archive entry name onto dest, rejecting names that
// would land outside dest.
func safeJoin(dest, name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, dest+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes the extraction directory", name)
	}
	return target, nil
}

// Package source turns an input specifier (a directory, a zip archive or a
// git URL) into a local directory that can be walked.
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"repodoc/pkg/errors"
)

// Kind is the type of input source.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindArchive   Kind = "archive"
	KindGit       Kind = "git"
)

// Input is a materialized source tree.
type Input struct {
	Kind      Kind
	Root      string // Local directory to walk.
	Temporary bool   // Root was created for this run and must be removed.
	Display   string // How the source should be shown to users.

	fs afero.Fs
}

// Options configures Materialize.
type Options struct {
	Fs       afero.Fs // Filesystem for directories and archives; defaults to the OS.
	TempDir  string   // Parent for temporary roots; defaults to os.TempDir().
	GitDepth int      // Clone depth; 0 clones full history.
	Logger   *zap.Logger

	// clone is replaced in tests.
	clone cloneFunc
}

// Detect classifies spec: a ".zip" suffix is an archive, an "http" or
// "git@" prefix is a git remote, anything else a directory.
func Detect(spec string) Kind {
	switch {
	case strings.HasSuffix(strings.ToLower(spec), ".zip"):
		return KindArchive
	case strings.HasPrefix(spec, "http") || strings.HasPrefix(spec, "git@"):
		return KindGit
	default:
		return KindDirectory
	}
}

// Materialize prepares spec for walking. Temporary roots are owned by the
// caller, who must call Cleanup once the run has finished.
func Materialize(ctx context.Context, spec string, opts Options) (Input, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.clone == nil {
		opts.clone = gitClone
	}
	if strings.TrimSpace(spec) == "" {
		return Input{}, errors.New(errors.ErrInvalidInput, "input path is empty")
	}

	switch Detect(spec) {
	case KindArchive:
		return extractArchive(ctx, spec, opts)
	case KindGit:
		return cloneRepository(ctx, spec, opts)
	default:
		return localDirectory(spec, opts)
	}
}

func localDirectory(spec string, opts Options) (Input, error) {
	root, err := filepath.Abs(spec)
	if err != nil {
		return Input{}, errors.Wrapf(err, errors.ErrInvalidInput, "resolving %s", spec)
	}
	info, err := opts.Fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Input{}, errors.Wrapf(err, errors.ErrSourceNotFound, "input directory %s not found", root)
		}
		return Input{}, errors.Wrapf(err, errors.ErrSourceNotFound, "cannot access %s", root)
	}
	if !info.IsDir() {
		return Input{}, errors.Newf(errors.ErrInvalidInput, "input %s is neither a directory nor a .zip archive", root)
	}
	return Input{Kind: KindDirectory, Root: root, Display: root, fs: opts.Fs}, nil
}

// Cleanup removes a temporary root. It is a no-op for caller-owned directories.
func (in Input) Cleanup(logger *zap.Logger) error {
	if !in.Temporary || in.Root == "" {
		return nil
	}
	fsys := in.fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if err := fsys.RemoveAll(in.Root); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "removing temporary directory %s", in.Root)
	}
	if logger != nil {
		logger.Info("Temporary files cleaned up", zap.String("path", in.Root))
	}
	return nil
}

package source

import (
	"context"
	"os"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"repodoc/pkg/errors"
)

type cloneFunc func(ctx context.Context, url, dir string, depth int) error

func gitClone(ctx context.Context, url, dir string, depth int) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        depth,
		SingleBranch: true,
	})
	return err
}

func cloneRepository(ctx context.Context, url string, opts Options) (Input, error) {
	dir, err := os.MkdirTemp(opts.TempDir, "repodoc-repo-")
	if err != nil {
		return Input{}, errors.Wrap(err, errors.ErrFileWrite, "creating clone directory")
	}
	in := Input{Kind: KindGit, Root: dir, Temporary: true, Display: url}

	opts.Logger.Info("Cloning repository", zap.String("url", url), zap.String("destination", dir), zap.Int("depth", opts.GitDepth))
	if err := opts.clone(ctx, url, dir, opts.GitDepth); err != nil {
		_ = in.Cleanup(opts.Logger)
		return Input{}, errors.Wrapf(err, errors.ErrSourceFetch, "cloning %s", url)
	}
	return in, nil
}

package combine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repodoc/pkg/filter"
)

func relPaths(entries []FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelPath)
	}
	return out
}

func TestWalkOrder(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/repo/b.txt":       "b",
		"/repo/A.txt":       "a",
		"/repo/z/1.txt":     "1",
		"/repo/a/2.txt":     "2",
		"/repo/a/deep/3.go": "3",
		"/repo/.hidden":     "h",
	})

	files, err := Walk(fs, "/repo", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/deep/3.go", "a/2.txt", "z/1.txt", ".hidden", "A.txt", "b.txt"}, relPaths(files))
	assert.Equal(t, "/repo/a/deep/3.go", files[0].Path)

	again, err := Walk(fs, "/repo", nil)
	require.NoError(t, err)
	assert.Equal(t, files, again, "walk order is stable")
}

func TestWalkSkipsUnreadableDirectory(t *testing.T) {
	base := newTestFs(t, map[string]string{
		"/repo/locked/secret.txt": "x",
		"/repo/open/ok.txt":       "ok",
		"/repo/top.txt":           "top",
	})
	fs := &failingFs{Fs: base, fail: map[string]error{"/repo/locked": os.ErrPermission}}
	logger, logs := observedLogger()

	files, err := Walk(fs, "/repo", logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"open/ok.txt", "top.txt"}, relPaths(files))
	assert.Equal(t, 1, logs.FilterMessage("Skipping unreadable directory").Len())
}

func TestWalkRootErrors(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/repo/file.txt": "x"})

	_, err := Walk(fs, "/missing", nil)
	assert.Error(t, err)

	_, err = Walk(fs, "/repo/file.txt", nil)
	assert.Error(t, err)
}

func TestWalkSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.txt"), []byte("real"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "inner.txt"), []byte("inner"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "loop")))

	logger, logs := observedLogger()
	files, err := Walk(afero.NewOsFs(), dir, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/inner.txt", "link.txt", "real.txt"}, relPaths(files))
	assert.Equal(t, 1, logs.FilterMessage("Skipping broken symlink").Len())
}

func TestCollectFiltersScenario(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/repo/a.txt":      "a",
		"/repo/secret.txt": "s",
		"/repo/b.md":       "b",
	})
	ps, err := filter.NewPatternSet([]string{"*.txt"}, []string{"secret.txt"})
	require.NoError(t, err)

	files, err := Collect(fs, "/repo", ps, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relPaths(files))
}

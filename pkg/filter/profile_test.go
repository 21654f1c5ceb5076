package filter

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repodoc/pkg/errors"
)

func writeProfile(t *testing.T, fs afero.Fs, dir, name, allow, deny string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, name), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name, allowFileName), []byte(allow), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name, denyFileName), []byte(deny), 0o644))
}

func TestParsePatterns(t *testing.T) {
	content := "*.go\n\n  # comment\n  docs/**  \r\n\\#literal\n"
	assert.Equal(t, []string{"*.go", "docs/**", "#literal"}, ParsePatterns(content))
}

func TestLoaderUnionsProfiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeProfile(t, fs, "/cfg", "web", "*.js\n*.md\n", "dist/**\n")
	writeProfile(t, fs, "/cfg", "docs", "*.md\n*.rst\n", "dist/**\ndrafts/**\n")

	ps, err := NewLoader(fs, "/cfg", nil).LoadPatternSet([]string{"web", "docs"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"*.js", "*.md", "*.rst"}, ps.Allow())
	assert.ElementsMatch(t, []string{"dist/**", "drafts/**"}, ps.Deny())
}

func TestLoaderFallsBackToBuiltin(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := NewLoader(fs, "/missing", nil).Load("default")
	require.NoError(t, err)
	assert.Equal(t, "builtin", p.Source)
	assert.Contains(t, p.Allow, "**/*.go")
	assert.Contains(t, p.Deny, "**/.git/**")
}

func TestLoaderDiskOverridesBuiltin(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeProfile(t, fs, "/cfg", "default", "*.txt\n", "secret.txt\n")

	p, err := NewLoader(fs, "/cfg", nil).Load("default")
	require.NoError(t, err)
	assert.Equal(t, []string{"*.txt"}, p.Allow)
	assert.Equal(t, []string{"secret.txt"}, p.Deny)
}

func TestLoaderErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/cfg/half", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/cfg/half/whitelist.txt", []byte("*.go"), 0o644))
	writeProfile(t, fs, "/cfg", "broken", "[oops\n", "")
	l := NewLoader(fs, "/cfg", nil)

	_, err := l.Load("nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))

	_, err = l.Load("half")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileInvalid))

	_, err = l.Load("../etc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileInvalid))

	_, err = l.LoadPatternSet([]string{"broken"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileInvalid))

	_, err = l.LoadPatternSet(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestBuiltinProfiles(t *testing.T) {
	assert.Equal(t, []string{"default", "go", "node", "python"}, BuiltinProfiles())
}

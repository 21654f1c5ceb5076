package filter

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"repodoc/pkg/errors"
)

func TestLoadIgnoreFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/.repodocignore", []byte("# local\n**/*.log\n!keep.log\n/tmp/**\n"), 0o644))
	core, logs := observer.New(zapcore.InfoLevel)

	patterns, err := LoadIgnoreFile(fs, "/repo", zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.log", "/tmp/**"}, patterns)
	assert.Equal(t, 1, logs.FilterMessage("Negated ignore pattern is not supported, skipping").Len())
}

func TestLoadIgnoreFileMissing(t *testing.T) {
	patterns, err := LoadIgnoreFile(afero.NewMemMapFs(), "/repo", nil)
	require.NoError(t, err)
	assert.Nil(t, patterns)
}

func TestWithDeny(t *testing.T) {
	ps, err := NewPatternSet([]string{"**/*.txt"}, []string{"secret.txt"})
	require.NoError(t, err)

	extended, err := ps.WithDeny([]string{"tmp/**", "secret.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"secret.txt", "tmp/**"}, extended.Deny())
	assert.False(t, extended.Allows("tmp/a.txt"))
	assert.True(t, ps.Allows("tmp/a.txt"), "the original set is unchanged")

	_, err = ps.WithDeny([]string{"[bad"})
	var invalid *InvalidPatternError
	assert.ErrorAs(t, err, &invalid)
	assert.False(t, errors.IsErrorCode(err, errors.ErrProfileInvalid))
}

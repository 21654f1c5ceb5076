package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		allow []string
		deny  []string
		want  bool
	}{
		{"allow match", "a.txt", []string{"*.txt"}, nil, true},
		{"no allow match", "b.md", []string{"*.txt"}, nil, false},
		{"empty allow fails closed", "a.txt", nil, nil, false},
		{"deny beats allow", "secret.txt", []string{"*.txt"}, []string{"secret.txt"}, false},
		{"deny beats identical allow", "x.go", []string{"x.go"}, []string{"x.go"}, false},
		{"star stays in segment", "src/a.txt", []string{"*.txt"}, nil, false},
		{"double star crosses segments", "src/deep/a.txt", []string{"**/*.txt"}, nil, true},
		{"double star matches root level", "a.txt", []string{"**/*.txt"}, nil, true},
		{"question mark", "a1.go", []string{"a?.go"}, nil, true},
		{"bracket class", "b.go", []string{"[ab].go"}, nil, true},
		{"bracket class miss", "c.go", []string{"[ab].go"}, nil, false},
		{"dotfile matched", ".env", []string{"*"}, nil, true},
		{"dot directory matched", ".github/workflows/ci.yml", []string{"**/*.yml"}, nil, true},
		{"denied directory", "node_modules/x/index.js", []string{"**/*.js"}, []string{"**/node_modules/**"}, false},
		{"anchored pattern", "build/out.txt", []string{"/build/*.txt"}, nil, true},
		{"anchored pattern does not float", "src/build/out.txt", []string{"/build/*.txt"}, nil, false},
		{"dot slash prefix normalized", "./a.txt", []string{"*.txt"}, nil, true},
		{"malformed pattern never matches", "a.txt", []string{"[a-"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(tt.path, tt.allow, tt.deny))
		})
	}
}

func TestDenyPrecedence(t *testing.T) {
	deny := []string{"**/secret*", "tmp/**"}
	allows := [][]string{
		{"**"},
		{"**/*"},
		{"*", "**/*.txt", "secret.txt"},
	}
	paths := []string{"secret.txt", "a/secret.key", "tmp/x", "tmp/a/b/c.txt"}
	for _, allow := range allows {
		for _, p := range paths {
			assert.False(t, IsAllowed(p, allow, deny), "path %s allow %v", p, allow)
		}
	}
}

func TestNotDeniedEqualsAllowMatch(t *testing.T) {
	allow := []string{"**/*.go", "README.md"}
	deny := []string{"vendor/**"}
	cases := map[string]bool{
		"main.go":           true,
		"pkg/x/y.go":        true,
		"README.md":         true,
		"docs/README.md":    false,
		"go.mod":            false,
		"vendor/lib/lib.go": false,
	}
	for p, want := range cases {
		assert.Equal(t, want, IsAllowed(p, allow, deny), p)
	}
}

func TestPatternSetScenario(t *testing.T) {
	ps, err := NewPatternSet([]string{"*.txt"}, []string{"secret.txt"})
	require.NoError(t, err)

	var accepted []string
	for _, f := range []string{"a.txt", "secret.txt", "b.md"} {
		if ps.Allows(f) {
			accepted = append(accepted, f)
		}
	}
	assert.Equal(t, []string{"a.txt"}, accepted)
}

func TestNewPatternSetDeduplicates(t *testing.T) {
	ps, err := NewPatternSet([]string{"*.go", " *.go ", "", "*.md"}, []string{"x", "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"*.go", "*.md"}, ps.Allow())
	assert.Equal(t, []string{"x"}, ps.Deny())
}

func TestNewPatternSetRejectsInvalid(t *testing.T) {
	_, err := NewPatternSet([]string{"[a-"}, nil)
	var invalid *InvalidPatternError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "[a-", invalid.Pattern)
}

func TestMatchedBy(t *testing.T) {
	ps, err := NewPatternSet([]string{"**/*.txt"}, []string{"secret.txt"})
	require.NoError(t, err)

	p, denied := ps.MatchedBy("secret.txt")
	assert.Equal(t, "secret.txt", p)
	assert.True(t, denied)

	p, denied = ps.MatchedBy("docs/a.txt")
	assert.Equal(t, "**/*.txt", p)
	assert.False(t, denied)

	p, _ = ps.MatchedBy("b.md")
	assert.Empty(t, p)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a/b.txt", NormalizePath("./a/b.txt"))
	assert.Equal(t, "a/b.txt", NormalizePath("/a/b.txt"))
	assert.Equal(t, "a.txt", NormalizePath("././a.txt"))
}

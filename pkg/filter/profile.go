package filter

import (
	"embed"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"repodoc/pkg/errors"
)

const (
	allowFileName = "whitelist.txt"
	denyFileName  = "blacklist.txt"
)

//go:embed profiles
var builtinProfiles embed.FS

// Profile is one named pair of allow/deny pattern lists.
type Profile struct {
	Name   string
	Allow  []string
	Deny   []string
	Source string // directory the profile was read from, or "builtin"
}

// Loader reads profiles from a directory on fsys, falling back to the
// profiles compiled into the binary.
type Loader struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// NewLoader returns a Loader for profiles under dir. A nil logger is replaced
// with a no-op logger.
func NewLoader(fsys afero.Fs, dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fs: fsys, dir: dir, logger: logger}
}

// LoadPatternSet loads every named profile and unions their lists into one
// deduplicated PatternSet. Any missing or invalid profile is fatal.
func (l *Loader) LoadPatternSet(names []string) (PatternSet, error) {
	if len(names) == 0 {
		return PatternSet{}, errors.New(errors.ErrProfileNotFound, "no profiles selected")
	}

	var allow, deny []string
	for _, name := range names {
		p, err := l.Load(name)
		if err != nil {
			return PatternSet{}, err
		}
		allow = append(allow, p.Allow...)
		deny = append(deny, p.Deny...)
		l.logger.Info("Loaded patterns for profile",
			zap.String("profile", p.Name),
			zap.String("source", p.Source),
			zap.Int("allow", len(p.Allow)),
			zap.Int("deny", len(p.Deny)))
	}

	ps, err := NewPatternSet(allow, deny)
	if err != nil {
		return PatternSet{}, errors.Wrap(err, errors.ErrProfileInvalid, "invalid pattern in profile")
	}
	l.logger.Info("Final pattern set",
		zap.Strings("allow", ps.allow),
		zap.Strings("deny", ps.deny))
	return ps, nil
}

// Load reads a single profile. The on-disk directory takes precedence over
// the builtin copy of the same name.
func (l *Loader) Load(name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return Profile{}, errors.Newf(errors.ErrProfileInvalid, "invalid profile name %q", name)
	}

	if l.dir != "" {
		dir := filepath.Join(l.dir, name)
		if ok, _ := afero.DirExists(l.fs, dir); ok {
			allow, err := l.readDiskPatterns(filepath.Join(dir, allowFileName))
			if err != nil {
				return Profile{}, errors.Wrapf(err, errors.ErrProfileInvalid, "reading allow list of profile %q", name)
			}
			deny, err := l.readDiskPatterns(filepath.Join(dir, denyFileName))
			if err != nil {
				return Profile{}, errors.Wrapf(err, errors.ErrProfileInvalid, "reading deny list of profile %q", name)
			}
			return Profile{Name: name, Allow: allow, Deny: deny, Source: dir}, nil
		}
		l.logger.Debug("Profile not found on disk, trying builtin",
			zap.String("profile", name), zap.String("dir", l.dir))
	}

	base := path.Join("profiles", name)
	if _, err := fs.Stat(builtinProfiles, base); err != nil {
		return Profile{}, errors.Newf(errors.ErrProfileNotFound, "profile %q not found", name).
			WithDetail("dir", l.dir)
	}
	allow, err := readBuiltinPatterns(path.Join(base, allowFileName))
	if err != nil {
		return Profile{}, errors.Wrapf(err, errors.ErrProfileInvalid, "reading builtin profile %q", name)
	}
	deny, err := readBuiltinPatterns(path.Join(base, denyFileName))
	if err != nil {
		return Profile{}, errors.Wrapf(err, errors.ErrProfileInvalid, "reading builtin profile %q", name)
	}
	return Profile{Name: name, Allow: allow, Deny: deny, Source: "builtin"}, nil
}

// BuiltinProfiles lists the names of the profiles compiled into the binary.
func BuiltinProfiles() []string {
	entries, err := builtinProfiles.ReadDir("profiles")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ParsePatterns splits pattern file content into patterns, skipping blank
// lines and "#" comments. A leading "\#" escapes a literal "#".
func ParsePatterns(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		p := strings.TrimSpace(line)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		if strings.HasPrefix(p, `\#`) {
			p = p[1:]
		}
		patterns = append(patterns, p)
	}
	return patterns
}

func (l *Loader) readDiskPatterns(name string) ([]string, error) {
	data, err := afero.ReadFile(l.fs, name)
	if err != nil {
		return nil, err
	}
	return ParsePatterns(string(data)), nil
}

func readBuiltinPatterns(name string) ([]string, error) {
	data, err := fs.ReadFile(builtinProfiles, name)
	if err != nil {
		return nil, err
	}
	return ParsePatterns(string(data)), nil
}

// OSLoader is a convenience for loading profiles from the real filesystem.
func OSLoader(dir string, logger *zap.Logger) *Loader {
	return NewLoader(afero.NewOsFs(), dir, logger)
}

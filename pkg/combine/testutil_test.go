package combine

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// failingFs returns an error from Open for selected paths, standing in for
// permission problems without depending on the test user.
type failingFs struct {
	afero.Fs
	fail map[string]error
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if err, ok := f.fail[name]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err, ok := f.fail[name]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

type recordedSection struct {
	heading string
	body    string
}

type memChunk struct {
	preambles []recordedSection
	sections  []recordedSection
	finalized int
}

// memSink records everything appended to it. Each chunk is touched only by
// its own writer, matching the Sink contract.
type memSink struct {
	chunks    []memChunk
	failOn    string
	finalErr  map[int]error
	mu        sync.Mutex
	finalizes []int
}

func newMemSink(n int) *memSink {
	return &memSink{chunks: make([]memChunk, n)}
}

func (s *memSink) Chunks() int { return len(s.chunks) }

func (s *memSink) AppendPreamble(chunk int, title, body string) error {
	s.chunks[chunk].preambles = append(s.chunks[chunk].preambles, recordedSection{title, body})
	return nil
}

func (s *memSink) AppendSection(chunk int, heading, body string) error {
	if heading == s.failOn {
		return os.ErrClosed
	}
	s.chunks[chunk].sections = append(s.chunks[chunk].sections, recordedSection{heading, body})
	return nil
}

func (s *memSink) Finalize(chunk int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.finalErr[chunk]; err != nil {
		return "", err
	}
	s.chunks[chunk].finalized++
	s.finalizes = append(s.finalizes, chunk)
	return filepath.Join("/out", "chunk", string(rune('1'+chunk))), nil
}

func (s *memSink) headings(chunk int) []string {
	var out []string
	for _, sec := range s.chunks[chunk].sections {
		out = append(out, sec.heading)
	}
	return out
}

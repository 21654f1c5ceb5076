package render

import (
	"fmt"
	"io"
	"strings"
)

// textBackend writes plain text: the preamble, then one
// "File: <path>" block per section.
type textBackend struct {
	*artifacts
	preambles []strings.Builder
	sections  []strings.Builder
}

func newTextBackend(a *artifacts) *textBackend {
	return &textBackend{
		artifacts: a,
		preambles: make([]strings.Builder, a.chunks),
		sections:  make([]strings.Builder, a.chunks),
	}
}

func (b *textBackend) AppendPreamble(chunk int, title, body string) error {
	if err := b.check(chunk); err != nil {
		return err
	}
	fmt.Fprintf(&b.preambles[chunk], "%s\n\n%s\n\n", title, body)
	return nil
}

func (b *textBackend) AppendSection(chunk int, heading, body string) error {
	if err := b.check(chunk); err != nil {
		return err
	}
	fmt.Fprintf(&b.sections[chunk], "File: %s\n\n%s\n\n", heading, body)
	return nil
}

func (b *textBackend) Finalize(chunk int) (string, error) {
	return b.write(chunk, func(w io.Writer) error {
		if _, err := io.WriteString(w, b.preambles[chunk].String()); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.sections[chunk].String())
		return err
	})
}

package render

import (
	"io"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

// Font sizes in points.
const (
	docxPreambleSize = 16
	docxSectionSize  = 14
	docxBodySize     = 9

	docxMonoFont = "Courier New"
)

// docxBlock is one heading plus body, laid out when the chunk is finalized.
type docxBlock struct {
	heading string
	size    uint64
	body    string
}

// docxBackend writes one Word document per chunk: each block is a bold,
// underlined heading followed by one monospace paragraph per body line, with
// a page break between blocks.
type docxBackend struct {
	*artifacts
	preambles [][]docxBlock
	sections  [][]docxBlock
}

func newDocxBackend(a *artifacts) *docxBackend {
	return &docxBackend{
		artifacts: a,
		preambles: make([][]docxBlock, a.chunks),
		sections:  make([][]docxBlock, a.chunks),
	}
}

func (b *docxBackend) AppendPreamble(chunk int, title, body string) error {
	if err := b.check(chunk); err != nil {
		return err
	}
	b.preambles[chunk] = append(b.preambles[chunk], docxBlock{title, docxPreambleSize, body})
	return nil
}

func (b *docxBackend) AppendSection(chunk int, heading, body string) error {
	if err := b.check(chunk); err != nil {
		return err
	}
	b.sections[chunk] = append(b.sections[chunk], docxBlock{heading, docxSectionSize, body})
	return nil
}

func (b *docxBackend) Finalize(chunk int) (string, error) {
	return b.write(chunk, func(w io.Writer) error {
		doc, err := godocx.NewDocument()
		if err != nil {
			return err
		}
		blocks := append(append([]docxBlock(nil), b.preambles[chunk]...), b.sections[chunk]...)
		for i, blk := range blocks {
			if i > 0 {
				doc.AddPageBreak()
			}
			addDocxBlock(doc, blk)
		}
		return doc.Write(w)
	})
}

func addDocxBlock(doc *docx.RootDoc, blk docxBlock) {
	doc.AddEmptyParagraph().
		AddText(docxText(blk.heading)).
		Bold(true).
		Underline(stypes.UnderlineSingle).
		Size(blk.size)

	body := strings.ReplaceAll(blk.body, "\r\n", "\n")
	for _, line := range strings.Split(body, "\n") {
		p := doc.AddEmptyParagraph()
		p.AddText(docxText(line)).Size(docxBodySize)

		ct := p.GetCT()
		ct.Children[len(ct.Children)-1].Run.Property.Fonts = &ctypes.RunFonts{
			Ascii: docxMonoFont,
			HAnsi: docxMonoFont,
			CS:    docxMonoFont,
		}
	}
}

// docxText expands tabs and drops carriage returns, neither of which renders
// inside a w:t element.
func docxText(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", ""), "\t", "    ")
}

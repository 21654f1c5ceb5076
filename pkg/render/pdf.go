package render

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfHeadingFont = "Helvetica"
	pdfBodyFont    = "Courier"
	pdfBodySize    = 10
	pdfLineHeight  = 4.5
)

// The core PDF fonts only cover Windows-1252, which has no box-drawing
// characters, so tree connectors are drawn with ASCII.
var pdfASCIITree = strings.NewReplacer(
	"├── ", "|-- ",
	"└── ", "`-- ",
	"│   ", "|   ",
	"\t", "    ",
	"\r", "",
)

// pdfBackend keeps one fpdf document per chunk. Every section starts on a new page.
type pdfBackend struct {
	*artifacts
	docs []*fpdf.Fpdf
	tr   []func(string) string
}

func newPDFBackend(a *artifacts) *pdfBackend {
	b := &pdfBackend{
		artifacts: a,
		docs:      make([]*fpdf.Fpdf, a.chunks),
		tr:        make([]func(string) string, a.chunks),
	}
	for i := range b.docs {
		doc := fpdf.New("P", "mm", "A4", "")
		doc.SetCreator("repodoc", false)
		doc.SetAutoPageBreak(true, 15)
		b.docs[i] = doc
		b.tr[i] = doc.UnicodeTranslatorFromDescriptor("")
	}
	return b
}

func (b *pdfBackend) AppendPreamble(chunk int, title, body string) error {
	return b.appendBlock(chunk, title, 16, body)
}

func (b *pdfBackend) AppendSection(chunk int, heading, body string) error {
	return b.appendBlock(chunk, heading, 14, body)
}

func (b *pdfBackend) appendBlock(chunk int, heading string, headingSize float64, body string) error {
	if err := b.check(chunk); err != nil {
		return err
	}
	doc, tr := b.docs[chunk], b.tr[chunk]

	doc.AddPage()
	doc.SetFont(pdfHeadingFont, "U", headingSize)
	doc.MultiCell(0, headingSize/2, tr(heading), "", "L", false)
	doc.Ln(2)
	doc.SetFont(pdfBodyFont, "", pdfBodySize)
	doc.MultiCell(0, pdfLineHeight, tr(pdfASCIITree.Replace(body)), "", "L", false)
	return doc.Error()
}

func (b *pdfBackend) Finalize(chunk int) (string, error) {
	return b.write(chunk, func(w io.Writer) error {
		return b.docs[chunk].Output(w)
	})
}

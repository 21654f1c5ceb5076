// Package render turns aggregated chunks into output documents. Each Backend
// keeps one independent slot per chunk, so different chunks may be written
// from different goroutines; a single chunk must have a single writer.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"repodoc/pkg/errors"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatTXT, FormatDOCX}

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigValid, "invalid output format %q: must be 'pdf', 'txt', or 'docx'", s)
}

// Ext returns the file extension of the format, without the dot.
func (f Format) Ext() string { return string(f) }

// Backend is an output sink with one document per chunk.
type Backend interface {
	// Chunks returns the number of chunks the backend was created for.
	Chunks() int
	// AppendPreamble places a titled block ahead of every section of chunk.
	AppendPreamble(chunk int, title, body string) error
	// AppendSection adds one file section to chunk.
	AppendSection(chunk int, heading, body string) error
	// Finalize writes chunk's artifact and returns its path. It may be called
	// once per chunk; existing files are overwritten.
	Finalize(chunk int) (string, error)
}

// New returns the backend for format writing artifacts derived from base.
func New(format Format, fsys afero.Fs, base string, chunks int) (Backend, error) {
	if chunks < 1 {
		return nil, errors.Newf(errors.ErrConfigValid, "chunk count must be at least 1, got %d", chunks)
	}
	out := newArtifacts(fsys, base, format, chunks)
	switch format {
	case FormatTXT:
		return newTextBackend(out), nil
	case FormatPDF:
		return newPDFBackend(out), nil
	case FormatDOCX:
		return newDocxBackend(out), nil
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "invalid output format %q", format)
	}
}

// ArtifactPath returns "<base>.<ext>" when there is a single chunk and
// "<base>_<chunk+1>.<ext>" otherwise. A trailing ".<ext>" on base is dropped.
func ArtifactPath(base string, format Format, chunk, chunks int) string {
	base = TrimFormatExt(base, format)
	if chunks > 1 {
		return fmt.Sprintf("%s_%d.%s", base, chunk+1, format.Ext())
	}
	return base + "." + format.Ext()
}

// TrimFormatExt removes a trailing ".<ext>" matching format from base.
func TrimFormatExt(base string, format Format) string {
	if strings.EqualFold(filepath.Ext(base), "."+format.Ext()) {
		return base[:len(base)-len(format.Ext())-1]
	}
	return base
}

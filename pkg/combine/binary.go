// File: pkg/combine/binary.go
package combine

import (
	"bytes"
)

// sniffLen is how much of a file is inspected for binary content.
const sniffLen = 512

// looksBinary reports whether data is likely binary: a NUL byte in the first
// sniffLen bytes, or more than 30% ASCII control bytes there. Bytes >= 0x80
// are not counted so UTF-8 text is not mistaken for binary.
func looksBinary(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if len(head) == 0 {
		return false
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range head {
		if !isPrintable(b) && b < 0x80 {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(head)) > 0.3
}

// isPrintable checks if a byte represents a printable ASCII character
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}

package combine

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// trademarkArtifacts are the forms a "™" takes after UTF-8 bytes were decoded
// as Windows-1252, plus the glyph itself.
var trademarkArtifacts = strings.NewReplacer(
	"\u00e2\u201e\u00a2", "",
	"\u2122", "",
)

var (
	xmlGapPattern = regexp.MustCompile(`>\s+<`)
	xmlTagPattern = regexp.MustCompile(`(<[^>]+>)`)
)

// Normalize cleans raw file content for embedding. It always removes
// trademark artifacts and every byte outside printable ASCII except newline,
// carriage return and tab. JSON is then re-indented with two spaces (key
// order preserved) and XML is reflowed one tag per line. Malformed input
// degrades to the stripped text.
func Normalize(raw, ext string, logger *zap.Logger) string {
	content := StripNonPrintable(trademarkArtifacts.Replace(raw))

	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "json":
		return prettyJSON(content, orNop(logger))
	case "xml":
		return reflowXML(content)
	default:
		return content
	}
}

// StripNonPrintable keeps only bytes 0x20-0x7E, '\n', '\r' and '\t'.
func StripNonPrintable(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if isPrintable(s[i]) {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// prettyJSON re-indents valid JSON without decoding it: duplicate keys are
// all kept and number literals keep their spelling (1.0 and 1e2 stay as
// written).
func prettyJSON(content string, logger *zap.Logger) string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(content)); err != nil {
		logger.Warn("Failed to parse JSON, using original content", zap.Error(err))
		return content
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		logger.Warn("Failed to indent JSON, using original content", zap.Error(err))
		return content
	}
	return out.String()
}

func reflowXML(content string) string {
	content = xmlGapPattern.ReplaceAllString(content, "><")
	return xmlTagPattern.ReplaceAllString(content, "\n$1")
}

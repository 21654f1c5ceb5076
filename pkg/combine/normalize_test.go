package combine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsArtifacts(t *testing.T) {
	raw := "Acmeâ„¢ Widget™\x00\x01é\n\tok\r\n"
	assert.Equal(t, "Acme Widget\n\tok\r\n", Normalize(raw, ".txt", nil))
}

func TestNormalizeJSONScenario(t *testing.T) {
	raw := "  {\"b\":1,    \"a\":2}  \n"
	got := Normalize(raw, ".json", nil)

	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": 2\n}", got)
	assert.True(t, json.Valid([]byte(got)))
}

func TestNormalizeJSONRemovesTrademark(t *testing.T) {
	raw := "{\"name\":\"Acmeâ„¢\",\"tags\":[\"x™\"]}"
	assert.Equal(t, "{\n  \"name\": \"Acme\",\n  \"tags\": [\n    \"x\"\n  ]\n}", Normalize(raw, ".json", nil))
}

func TestNormalizeJSONIdempotent(t *testing.T) {
	inputs := []string{
		`{"b":1,"a":{"c":[1,2,{"d":null}]},"e":"text"}`,
		`[]`,
		`{}`,
		`[1.50, "x", true]`,
	}
	for _, in := range inputs {
		once := Normalize(in, ".json", nil)
		assert.Equal(t, once, Normalize(once, ".json", nil), in)
	}
}

func TestNormalizeInvalidJSONKeepsStrippedText(t *testing.T) {
	logger, logs := observedLogger()
	got := Normalize("{bad™ json", ".json", logger)

	assert.Equal(t, "{bad json", got)
	require.Equal(t, 1, logs.FilterMessage("Failed to parse JSON, using original content").Len())
}

func TestNormalizeXML(t *testing.T) {
	raw := "<a>\n  <b>text</b>\n</a>"
	assert.Equal(t, "\n<a>\n<b>text\n</b>\n</a>", Normalize(raw, ".xml", nil))
}

func TestNormalizeMalformedXML(t *testing.T) {
	assert.Equal(t, "\n<a>unclosed <b", Normalize("<a>unclosed <b", ".xml", nil))
}

func TestNormalizeExtensionHandling(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", Normalize(`{"a":1}`, ".JSON", nil))
	assert.Equal(t, "{\n  \"a\": 1\n}", Normalize(`{"a":1}`, "json", nil))
	assert.Equal(t, `{"a":1}`, Normalize(`{"a":1}`, ".go", nil))
	assert.Equal(t, "<a> <b>", Normalize("<a> <b>", "", nil))
}

func TestStripNonPrintable(t *testing.T) {
	var all []byte
	for b := 0; b < 256; b++ {
		all = append(all, byte(b))
	}
	got := StripNonPrintable(string(all))
	for i := 0; i < len(got); i++ {
		assert.True(t, isPrintable(got[i]), "byte %#x kept", got[i])
	}
	assert.Len(t, got, 95+3)
}

func TestNormalizeJSONKeepsLiterals(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1,\n  \"a\": 2\n}", Normalize(`{"a":1,"a":2}`, ".JSON", nil))
	assert.Equal(t, "[\n  1.0,\n  1e2\n]", Normalize(`[1.0, 1e2]`, "json", nil))
}

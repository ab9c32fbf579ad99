package xml

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleDoc(t *testing.T) *Document {
	t.Helper()
	b := NewDOMBuilder()
	require.Nil(t, b.StartDocument())
	require.Nil(t, b.StartElement(Name{Local: "library"}, nil))
	require.Nil(t, b.StartElement(Name{Local: "book"}, []Attribute{
		{Name: Name{Local: "id"}, Value: "1&2"},
	}))
	require.Nil(t, b.Characters("Go <101>"))
	require.Nil(t, b.EndElement(Name{Local: "book"}))
	require.Nil(t, b.StartElement(Name{Local: "empty"}, nil))
	require.Nil(t, b.EndElement(Name{Local: "empty"}))
	require.Nil(t, b.EndElement(Name{Local: "library"}))
	require.Nil(t, b.EndDocument())
	return b.Document()
}

func TestEncoder_EncodeDocument_EscapesAndSelfCloses(t *testing.T) {
	doc := buildSimpleDoc(t)

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.Nil(t, enc.EncodeDocument(doc))

	out := buf.String()
	assert.Contains(t, out, `id="1&amp;2"`)
	assert.Contains(t, out, "Go &lt;101&gt;")
	assert.Contains(t, out, "<empty/>")
	assert.Contains(t, out, "<library>")
	assert.Contains(t, out, "</library>")
}

func TestEncoder_Pretty_IndentsNestedElements(t *testing.T) {
	doc := buildSimpleDoc(t)

	var buf bytes.Buffer
	enc := NewEncoder(&buf, Pretty(true), WithIndent("  "))
	require.Nil(t, enc.EncodeDocument(doc))

	out := buf.String()
	assert.Contains(t, out, "\n  <book")
	assert.Contains(t, out, "\n  <empty/>")
}

func TestEncoder_EncodeDocument_WritesDoctype(t *testing.T) {
	b := NewDOMBuilder()
	require.Nil(t, b.StartDocument())
	require.Nil(t, b.StartDTD("library", "", ""))
	require.Nil(t, b.StartElement(Name{Local: "library"}, nil))
	require.Nil(t, b.EndElement(Name{Local: "library"}))
	require.Nil(t, b.EndDocument())
	doc := b.Document()

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.Nil(t, enc.EncodeDocument(doc))

	assert.Contains(t, buf.String(), "<!DOCTYPE library>")
}

func TestEncodingHandler_StreamsEventsAndSkipsUnspecifiedAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewEncodingHandler(&buf)

	require.Nil(t, h.StartElement(Name{Local: "book"}, []Attribute{
		{Name: Name{Local: "id"}, Value: "1", Specified: true},
		{Name: Name{Local: "lang"}, Value: "en", Specified: false},
	}))
	require.Nil(t, h.Characters("text & more"))
	require.Nil(t, h.Comment("note"))
	require.Nil(t, h.ProcessingInstruction("pi-target", "pi-data"))
	require.Nil(t, h.EndElement(Name{Local: "book"}))
	require.Nil(t, h.EndDocument())

	out := buf.String()
	assert.Contains(t, out, `id="1"`)
	assert.NotContains(t, out, "lang=")
	assert.Contains(t, out, "text &amp; more")
	assert.Contains(t, out, "<!--note-->")
	assert.Contains(t, out, "<?pi-target pi-data?>")
	assert.Contains(t, out, "</book>")
}

var _ ContentHandler = (*EncodingHandler)(nil)

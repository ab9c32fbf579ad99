package rng

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xmlcore "github.com/arborxml/xmlcore/xml"
)

const simpleElementSchema = `<?xml version="1.0"?>
<element name="book" xmlns="http://relaxng.org/ns/structure/1.0">
  <attribute name="id"/>
  <element name="title"><text/></element>
  <element name="author"><text/></element>
</element>
`

func TestParse_PlainElementRoot(t *testing.T) {
	g, err := Parse(strings.NewReader(simpleElementSchema))
	require.NoError(t, err)

	book := xmlcore.Name{Local: "book"}
	require.Contains(t, g.Elements, book)
	assert.Contains(t, g.Elements, xmlcore.Name{Local: "title"})
	assert.Contains(t, g.Elements, xmlcore.Name{Local: "author"})

	bookPat := g.Elements[book]
	require.Len(t, bookPat.Attrs, 1)
	assert.Equal(t, "id", bookPat.Attrs[0].Name.Local)
	assert.True(t, bookPat.Attrs[0].Required)
}

func TestParse_AttributeDefaultAnnotation(t *testing.T) {
	src := `<?xml version="1.0"?>
<element name="book" xmlns="http://relaxng.org/ns/structure/1.0"
          xmlns:a="http://relaxng.org/ns/compatibility/annotations/1.0">
  <attribute name="lang" a:defaultValue="en"/>
</element>
`
	g, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	book := g.Elements[xmlcore.Name{Local: "book"}]
	require.Len(t, book.Attrs, 1)
	assert.False(t, book.Attrs[0].Required)
	assert.True(t, book.Attrs[0].HasDefault)
	assert.Equal(t, "en", book.Attrs[0].Default)
}

func TestParse_GrammarStartAndDefineRef(t *testing.T) {
	src := `<?xml version="1.0"?>
<grammar xmlns="http://relaxng.org/ns/structure/1.0">
  <start>
    <ref name="book"/>
  </start>
  <define name="book">
    <element name="book">
      <ref name="title"/>
    </element>
  </define>
  <define name="title">
    <element name="title"><text/></element>
  </define>
</grammar>
`
	g, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	book := xmlcore.Name{Local: "book"}
	require.Contains(t, g.Elements, book)
	assert.Contains(t, g.Elements, xmlcore.Name{Local: "title"})
}

func TestParse_ChoiceOfElements(t *testing.T) {
	src := `<?xml version="1.0"?>
<element name="doc" xmlns="http://relaxng.org/ns/structure/1.0">
  <choice>
    <element name="a"><empty/></element>
    <element name="b"><empty/></element>
  </choice>
</element>
`
	g, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	doc := xmlcore.Name{Local: "doc"}
	require.Contains(t, g.Elements, doc)
	content := g.Elements[doc].Content
	require.NotNil(t, content)

	a := xmlcore.Name{Local: "a"}
	b := xmlcore.Name{Local: "b"}
	d := DerivativeElement(content, a)
	require.NotNil(t, d)
	assert.True(t, Nullable(d))

	d = DerivativeElement(content, b)
	require.NotNil(t, d)
	assert.True(t, Nullable(d))
}

func TestParse_MissingRootElementIsAnError(t *testing.T) {
	_, err := Parse(strings.NewReader(``))
	assert.Error(t, err)
}

package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOMBuilder_BuildsTree(t *testing.T) {
	b := NewDOMBuilder()
	require.Nil(t, b.StartDocument())
	require.Nil(t, b.StartDTD("library", "", ""))
	require.Nil(t, b.StartElement(Name{Local: "library"}, nil))
	require.Nil(t, b.StartElement(Name{Local: "book"}, []Attribute{{Name: Name{Local: "id"}, Value: "1"}}))
	require.Nil(t, b.Characters("Go 101"))
	require.Nil(t, b.EndElement(Name{Local: "book"}))
	require.Nil(t, b.Comment("a note"))
	require.Nil(t, b.EndElement(Name{Local: "library"}))
	require.Nil(t, b.EndDocument())

	doc := b.Document()
	require.NotNil(t, doc.Root)
	assert.Equal(t, "library", doc.DOCTYPE)
	assert.Equal(t, "library", doc.Root.Name.Local)
	require.Len(t, doc.Root.Children, 2)

	book := doc.Root.Children[0]
	assert.Equal(t, ElementNode, book.Kind)
	assert.Equal(t, "1", book.Attrs.Get("id"))
	require.Len(t, book.Children, 1)
	assert.Equal(t, "Go 101", book.Children[0].Text)

	comment := doc.Root.Children[1]
	assert.Equal(t, CommentNode, comment.Kind)
	assert.Equal(t, "a note", comment.Text)
}

func TestDOMBuilder_ParentLinks(t *testing.T) {
	b := NewDOMBuilder()
	require.Nil(t, b.StartDocument())
	require.Nil(t, b.StartElement(Name{Local: "root"}, nil))
	require.Nil(t, b.StartElement(Name{Local: "child"}, nil))
	require.Nil(t, b.EndElement(Name{Local: "child"}))
	require.Nil(t, b.EndElement(Name{Local: "root"}))
	require.Nil(t, b.EndDocument())

	doc := b.Document()
	child := doc.Root.Children[0]
	assert.Same(t, doc.Root, child.Parent)
}

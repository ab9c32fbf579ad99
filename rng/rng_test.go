package rng

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborxml/xmlcore/grammar"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

func TestGrammar_Kind(t *testing.T) {
	g := New()
	assert.Equal(t, grammar.KindRNG, g.Kind())
}

func TestGrammar_ResolveEntity_AlwaysUnresolved(t *testing.T) {
	g := New()
	_, _, ok := g.ResolveEntity("amp")
	assert.False(t, ok)
}

func TestGrammar_GetElementAttributes(t *testing.T) {
	g := New()
	g.Elements[rngName("book")] = &ElementPattern{
		Name: rngName("book"),
		Attrs: []AttributePattern{
			{Name: rngName("id"), Required: true},
			{Name: rngName("lang"), HasDefault: true, Default: "en"},
		},
	}

	decls, ok := g.GetElementAttributes(rngName("book"))
	require.True(t, ok)
	require.Len(t, decls, 2)
	assert.True(t, decls[0].Required)
	assert.True(t, decls[1].HasDefault)
	assert.Equal(t, "en", decls[1].Default)

	_, ok = g.GetElementAttributes(rngName("unknown"))
	assert.False(t, ok)
}

func TestGrammar_ValidateAttributes_RequiredAndFacets(t *testing.T) {
	g := New()
	g.Elements[rngName("book")] = &ElementPattern{
		Name: rngName("book"),
		Attrs: []AttributePattern{
			{Name: rngName("id"), Required: true, Facets: &grammar.SimpleTypeFacets{
				Patterns: []*regexp.Regexp{regexp.MustCompile(`^[0-9]+$`)},
			}},
		},
	}

	errs := g.ValidateAttributes(rngName("book"), nil)
	require.Len(t, errs, 1)

	errs = g.ValidateAttributes(rngName("book"), []xmlcore.Attribute{
		{Name: rngName("id"), Value: "abc"},
	})
	require.Len(t, errs, 1)

	errs = g.ValidateAttributes(rngName("book"), []xmlcore.Attribute{
		{Name: rngName("id"), Value: "123"},
	})
	assert.Empty(t, errs)
}

func TestGrammar_ValidateElement_SequenceViaDerivatives(t *testing.T) {
	g := New()
	content := Group(ElementPat(rngName("title"), Empty()), ElementPat(rngName("author"), Empty()))
	g.Elements[rngName("book")] = &ElementPattern{Name: rngName("book"), Content: content}

	err := g.ValidateElement(rngName("book"), []xmlcore.Name{rngName("title"), rngName("author")}, false)
	assert.Nil(t, err)

	err = g.ValidateElement(rngName("book"), []xmlcore.Name{rngName("author"), rngName("title")}, false)
	assert.NotNil(t, err)
	assert.Equal(t, xmlcore.ValidationErr, err.Kind)
}

func TestGrammar_ValidateElement_RejectsUnexpectedChild(t *testing.T) {
	g := New()
	g.Elements[rngName("book")] = &ElementPattern{
		Name: rngName("book"), Content: ElementPat(rngName("title"), Empty()),
	}

	err := g.ValidateElement(rngName("book"), []xmlcore.Name{rngName("bogus")}, false)
	require.NotNil(t, err)
}

func TestGrammar_ValidateElement_TextContent(t *testing.T) {
	g := New()
	g.Elements[rngName("title")] = &ElementPattern{Name: rngName("title"), Content: TextPattern()}

	assert.Nil(t, g.ValidateElement(rngName("title"), nil, true))
}

func TestGrammar_ValidateElement_TextRejectedWhenNotPermitted(t *testing.T) {
	g := New()
	g.Elements[rngName("empty")] = &ElementPattern{Name: rngName("empty"), Content: Empty()}

	err := g.ValidateElement(rngName("empty"), nil, true)
	assert.NotNil(t, err)
}

func TestGrammar_ValidateElement_UndeclaredElementSkipped(t *testing.T) {
	g := New()
	assert.Nil(t, g.ValidateElement(rngName("unknown"), nil, false))
}

package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapEntitySource map[string]string

func (m mapEntitySource) ResolveEntity(name string) (string, bool, bool) {
	v, ok := m[name]
	return v, false, ok
}

type externalEntitySource struct{}

func (externalEntitySource) ResolveEntity(name string) (string, bool, bool) {
	return "", true, true
}

func TestEntityExpander_Predefined(t *testing.T) {
	ex := newEntityExpander(nil, "1.0")
	out, err := ex.expand("a &lt;b&gt; &amp; &apos;c&apos; &quot;", map[string]bool{})
	require.Nil(t, err)
	assert.Equal(t, `a <b> & 'c' "`, out)
}

func TestEntityExpander_CharRefs(t *testing.T) {
	ex := newEntityExpander(nil, "1.0")
	out, err := ex.expand("&#65;&#x42;", map[string]bool{})
	require.Nil(t, err)
	assert.Equal(t, "AB", out)
}

func TestEntityExpander_GeneralEntity(t *testing.T) {
	ex := newEntityExpander(mapEntitySource{"copy": "(c)"}, "1.0")
	out, err := ex.expand("&copy;", map[string]bool{})
	require.Nil(t, err)
	assert.Equal(t, "(c)", out)
}

func TestEntityExpander_Recursive(t *testing.T) {
	ex := newEntityExpander(mapEntitySource{"a": "&b;", "b": "&a;"}, "1.0")
	_, err := ex.expand("&a;", map[string]bool{})
	require.NotNil(t, err)
	assert.Equal(t, WellFormednessErr, err.Kind)
}

func TestEntityExpander_Undeclared(t *testing.T) {
	ex := newEntityExpander(mapEntitySource{}, "1.0")
	_, err := ex.expand("&nope;", map[string]bool{})
	require.NotNil(t, err)
	assert.Equal(t, WellFormednessErr, err.Kind)
}

func TestEntityExpander_ExternalRejected(t *testing.T) {
	ex := newEntityExpander(externalEntitySource{}, "1.0")
	_, err := ex.expand("&ext;", map[string]bool{})
	require.NotNil(t, err)
	assert.Equal(t, GrammarErr, err.Kind)
}

func TestEntityExpander_MarkupRejectedExceptSingleConstruct(t *testing.T) {
	ex := newEntityExpander(mapEntitySource{
		"ok":  "&amp;",
		"bad": "<b>bold</b>",
	}, "1.0")

	out, err := ex.expand("&ok;", map[string]bool{})
	require.Nil(t, err)
	assert.Equal(t, "&", out)

	_, err = ex.expand("&bad;", map[string]bool{})
	require.NotNil(t, err)
	assert.Equal(t, GrammarErr, err.Kind)
}

func TestDecodeCharRef(t *testing.T) {
	r, ok, err := decodeCharRef("&#x41;")
	require.Nil(t, err)
	require.True(t, ok)
	assert.Equal(t, 'A', r)

	_, ok, err = decodeCharRef("&amp;")
	require.Nil(t, err)
	assert.False(t, ok)

	_, ok, err = decodeCharRef("&#xFFFFFFFF;")
	assert.True(t, ok)
	require.NotNil(t, err)
}

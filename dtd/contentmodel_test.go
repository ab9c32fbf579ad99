package dtd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborxml/xmlcore/particle"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

func TestParseContentModel_Empty(t *testing.T) {
	p, isEmpty, isAny, err := ParseContentModel("EMPTY")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.True(t, isEmpty)
	assert.False(t, isAny)
}

func TestParseContentModel_Any(t *testing.T) {
	p, isEmpty, isAny, err := ParseContentModel("ANY")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.False(t, isEmpty)
	assert.True(t, isAny)
}

func TestParseContentModel_PureMixed(t *testing.T) {
	p, isEmpty, isAny, err := ParseContentModel("(#PCDATA)")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.False(t, isEmpty)
	assert.False(t, isAny)
}

func TestParseContentModel_MixedWithElements(t *testing.T) {
	p, _, _, err := ParseContentModel("(#PCDATA|b|i)*")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Mixed)

	err2 := particle.Validate(p, nil, true, nil)
	assert.Nil(t, err2)
	err2 = particle.Validate(p, []xmlcore.Name{{Local: "b"}, {Local: "i"}}, true, nil)
	assert.Nil(t, err2)
	err2 = particle.Validate(p, []xmlcore.Name{{Local: "u"}}, false, nil)
	assert.NotNil(t, err2)
}

func TestParseContentModel_SimpleSequence(t *testing.T) {
	p, _, _, err := ParseContentModel("(title,author)")
	require.NoError(t, err)

	assert.Nil(t, particle.Validate(p, []xmlcore.Name{{Local: "title"}, {Local: "author"}}, false, nil))
	assert.NotNil(t, particle.Validate(p, []xmlcore.Name{{Local: "author"}, {Local: "title"}}, false, nil))
}

func TestParseContentModel_Choice(t *testing.T) {
	p, _, _, err := ParseContentModel("(a|b)")
	require.NoError(t, err)

	assert.Nil(t, particle.Validate(p, []xmlcore.Name{{Local: "a"}}, false, nil))
	assert.Nil(t, particle.Validate(p, []xmlcore.Name{{Local: "b"}}, false, nil))
	assert.NotNil(t, particle.Validate(p, []xmlcore.Name{{Local: "c"}}, false, nil))
}

func TestParseContentModel_OccurrenceIndicators(t *testing.T) {
	p, _, _, err := ParseContentModel("(title,chapter+,appendix?)")
	require.NoError(t, err)

	ok := []xmlcore.Name{{Local: "title"}, {Local: "chapter"}, {Local: "chapter"}}
	assert.Nil(t, particle.Validate(p, ok, false, nil))

	missingRequired := []xmlcore.Name{{Local: "title"}}
	assert.NotNil(t, particle.Validate(p, missingRequired, false, nil))

	withOptional := []xmlcore.Name{{Local: "title"}, {Local: "chapter"}, {Local: "appendix"}}
	assert.Nil(t, particle.Validate(p, withOptional, false, nil))
}

func TestParseContentModel_NestedGroups(t *testing.T) {
	p, _, _, err := ParseContentModel("((a,b)|c)")
	require.NoError(t, err)

	assert.Nil(t, particle.Validate(p, []xmlcore.Name{{Local: "a"}, {Local: "b"}}, false, nil))
	assert.Nil(t, particle.Validate(p, []xmlcore.Name{{Local: "c"}}, false, nil))
	assert.NotNil(t, particle.Validate(p, []xmlcore.Name{{Local: "a"}}, false, nil))
}

package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	n := ParseName("h:table")
	assert.Equal(t, "h", n.Prefix)
	assert.Equal(t, "table", n.Local)

	n = ParseName("table")
	assert.Equal(t, "", n.Prefix)
	assert.Equal(t, "table", n.Local)
}

func TestName_String(t *testing.T) {
	assert.Equal(t, "h:table", Name{Prefix: "h", Local: "table"}.String())
	assert.Equal(t, "table", Name{Local: "table"}.String())
}

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", normalizeLineEndings("a\r\nb\rc"))
	assert.Equal(t, "no crs here", normalizeLineEndings("no crs here"))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a\tb\n\nc  "))
	assert.Equal(t, "", collapseWhitespace("   "))
}

func TestIsCDATAType(t *testing.T) {
	assert.True(t, isCDATAType(AttrCDATA))
	assert.False(t, isCDATAType(AttrTyped))
	assert.False(t, isCDATAType(AttrID))
}

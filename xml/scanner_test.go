package xml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidName(t *testing.T) {
	tcs := map[string]struct {
		name string
		want bool
	}{
		"simple":       {"book", true},
		"with prefix":  {"h:table", true},
		"two colons":   {"a:b:c", false},
		"leading dash": {"-book", false},
		"empty":        {"", false},
		"underscore":   {"_id", true},
		"digits ok mid": {"a1", true},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, isValidName(tc.name))
		})
	}
}

func TestIsNCName(t *testing.T) {
	assert.True(t, isNCName("local"))
	assert.False(t, isNCName("pre:local"))
}

func TestScanner_ScanName(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("book-title/>"))
	s := newScanner(cs)

	name, ok := s.scanName()
	require.True(t, ok)
	assert.Equal(t, "book-title", name)
}

func TestScanner_ScanQuotedLiteral(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader(`"hello world" rest`))
	s := newScanner(cs)

	v, err := s.scanQuotedLiteral()
	require.Nil(t, err)
	assert.Equal(t, "hello world", v)
}

func TestScanner_ScanQuotedLiteralUnterminated(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader(`"unterminated`))
	s := newScanner(cs)

	_, err := s.scanQuotedLiteral()
	require.NotNil(t, err)
	assert.Equal(t, WellFormednessErr, err.Kind)
}

func TestScanner_ConsumeLiteral(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("<![CDATA["))
	s := newScanner(cs)

	err := s.consumeLiteral("<![CDATA[")
	assert.Nil(t, err)
}

func TestScanner_ConsumeLiteralMismatch(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("<?xml"))
	s := newScanner(cs)

	err := s.consumeLiteral("<!--")
	require.NotNil(t, err)
	assert.Equal(t, WellFormednessErr, err.Kind)
}

func TestScanner_ScanUntil(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("a comment -->"))
	s := newScanner(cs)

	body, err := s.scanUntil("-->")
	require.Nil(t, err)
	assert.Equal(t, "a comment ", body)
}

func TestScanner_SkipWhitespace(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("   \t\nrest"))
	s := newScanner(cs)

	assert.True(t, s.skipWhitespace())
	r, _ := cs.codePointAt()
	assert.Equal(t, 'r', r)
}

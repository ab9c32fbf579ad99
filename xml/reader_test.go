package xml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterStream_CodePointAt(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("héllo"))

	r, ok := cs.codePointAt()
	require.True(t, ok)
	assert.Equal(t, 'h', r)

	cs.advance(1)
	r, ok = cs.codePointAt()
	require.True(t, ok)
	assert.Equal(t, 'é', r)
}

func TestCharacterStream_PeekAtDoesNotAdvance(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("abc"))

	r, ok := cs.peekAt(2)
	require.True(t, ok)
	assert.Equal(t, 'c', r)

	r, ok = cs.codePointAt()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
}

func TestCharacterStream_LookingAt(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("<?xml version"))

	assert.True(t, cs.lookingAt("<?xml"))
	assert.False(t, cs.lookingAt("<!--"))
}

func TestCharacterStream_AdvanceTracksLineColumn(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("ab\ncd"))

	cs.advance(3)
	line, col := cs.position()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	cs.advance(2)
	line, col = cs.position()
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
}

func TestCharacterStream_AtEOF(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader("x"))
	assert.False(t, cs.atEOF())
	cs.advance(1)
	assert.True(t, cs.atEOF())
}

func TestCharacterStream_PositionNeverDecreases(t *testing.T) {
	cs := NewCharacterStream(strings.NewReader(strings.Repeat("a", minBufferSize*2)))

	last := cs.pos
	for i := 0; i < 100; i++ {
		cs.advance(1)
		assert.GreaterOrEqual(t, cs.pos, last)
		last = cs.pos
	}
}
